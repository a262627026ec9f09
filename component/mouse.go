package component

import "github.com/vdobler/gridplot"

// MouseEvent is a pointer event in root coordinates.
type MouseEvent struct {
	Point  gridplot.Point
	Button int
}

// MouseHandler handles a MouseEvent.
type MouseHandler func(e MouseEvent)

// Mouse dispatches pointer events fed by the host to subscribers.
type Mouse struct {
	move, down, up gridplot.CallbackSet[MouseHandler]
}

// OnMove subscribes h to pointer moves.
func (m *Mouse) OnMove(h MouseHandler) gridplot.Subscription { return m.move.Add(h) }

// OffMove unsubscribes from pointer moves.
func (m *Mouse) OffMove(s gridplot.Subscription) { m.move.Remove(s) }

// OnDown subscribes h to button presses.
func (m *Mouse) OnDown(h MouseHandler) gridplot.Subscription { return m.down.Add(h) }

// OffDown unsubscribes from button presses.
func (m *Mouse) OffDown(s gridplot.Subscription) { m.down.Remove(s) }

// OnUp subscribes h to button releases.
func (m *Mouse) OnUp(h MouseHandler) gridplot.Subscription { return m.up.Add(h) }

// OffUp unsubscribes from button releases.
func (m *Mouse) OffUp(s gridplot.Subscription) { m.up.Remove(s) }

// DispatchMove delivers a pointer move to p.
func (m *Mouse) DispatchMove(p gridplot.Point) {
	e := MouseEvent{Point: p}
	m.move.Each(func(h MouseHandler) { h(e) })
}

// DispatchDown delivers a press of button at p.
func (m *Mouse) DispatchDown(p gridplot.Point, button int) {
	e := MouseEvent{Point: p, Button: button}
	m.down.Each(func(h MouseHandler) { h(e) })
}

// DispatchUp delivers a release of button at p.
func (m *Mouse) DispatchUp(p gridplot.Point, button int) {
	e := MouseEvent{Point: p, Button: button}
	m.up.Each(func(h MouseHandler) { h(e) })
}

// Clear drops all subscriptions.
func (m *Mouse) Clear() {
	m.move.Clear()
	m.down.Clear()
	m.up.Clear()
}
