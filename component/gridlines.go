package component

import (
	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/scale"
	"github.com/vdobler/gridplot/surface"
)

// Gridlines draws lines across its area at the ticks of an x and a y
// scale. Either scale may be nil.
type Gridlines struct {
	Base

	x, y       *scale.Quantitative
	xSub, ySub gridplot.Subscription
	minor      bool
}

// NewGridlines returns gridlines for the given scales.
func NewGridlines(x, y *scale.Quantitative) *Gridlines {
	g := &Gridlines{x: x, y: y}
	g.Init(g, "gridlines")
	render := func(scale.Scale) { g.Render() }
	if x != nil {
		g.xSub = x.OnUpdate(render)
	}
	if y != nil {
		g.ySub = y.OnUpdate(render)
	}
	return g
}

// SetShowMinor switches the lines at minor ticks on or off.
func (g *Gridlines) SetShowMinor(show bool) {
	g.minor = show
	g.Render()
}

// Destroy implements Component.
func (g *Gridlines) Destroy() {
	if g.x != nil {
		g.x.OffUpdate(g.xSub)
	}
	if g.y != nil {
		g.y.OffUpdate(g.ySub)
	}
	g.Base.Destroy()
}

// RenderImmediately implements Component.
func (g *Gridlines) RenderImmediately() error {
	g.node.Clear()
	st := g.style()
	if g.x != nil {
		for _, t := range g.x.Ticks() {
			if t.IsMinor() && !g.minor {
				continue
			}
			line := st.Grid.Major
			if t.IsMinor() {
				line = st.Grid.Minor
			}
			x := g.x.Scale(t.Value)
			if !gridplot.InRange(x, 0, g.width) {
				continue
			}
			g.node.Add(surface.Path{Points: []gridplot.Point{{X: x, Y: 0}, {X: x, Y: g.height}}, Line: line})
		}
	}
	if g.y != nil {
		for _, t := range g.y.Ticks() {
			if t.IsMinor() && !g.minor {
				continue
			}
			line := st.Grid.Major
			if t.IsMinor() {
				line = st.Grid.Minor
			}
			y := g.y.Scale(t.Value)
			if !gridplot.InRange(y, 0, g.height) {
				continue
			}
			g.node.Add(surface.Path{Points: []gridplot.Point{{X: 0, Y: y}, {X: g.width, Y: y}}, Line: line})
		}
	}
	return nil
}
