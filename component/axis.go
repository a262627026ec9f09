package component

import (
	"strings"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/scale"
	"github.com/vdobler/gridplot/surface"
	"gonum.org/v1/plot/vg/draw"
)

// Side is the edge of the plot area an axis is attached to.
type Side int

const (
	AxisBottom Side = iota
	AxisTop
	AxisLeft
	AxisRight
)

func (s Side) String() string {
	switch s {
	case AxisBottom:
		return "bottom"
	case AxisTop:
		return "top"
	case AxisLeft:
		return "left"
	case AxisRight:
		return "right"
	}
	return "unknown"
}

// ParseSide parses "bottom", "top", "left" or "right".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "bottom":
		return AxisBottom, nil
	case "top":
		return AxisTop, nil
	case "left":
		return AxisLeft, nil
	case "right":
		return AxisRight, nil
	}
	return AxisBottom, gridplot.Invalidf("component: unsupported axis side %q", s)
}

func (s Side) horizontal() bool { return s == AxisBottom || s == AxisTop }

// A tickMark is one tick of an axis.
type tickMark struct {
	value any
	pos   float64
	label string
	minor bool
}

// An Axis draws the ticks and tick labels of a scale along one side of a
// plot. Horizontal axes have a fixed height, vertical ones a fixed width.
type Axis struct {
	Base

	side  Side
	sc    scale.Scale
	marks func() []tickMark
	sub   gridplot.Subscription

	tickLength        float64
	endTickLength     float64
	tickLabelPadding  float64
	gutter            float64
	showEndTickLabels bool
	formatter         gridplot.Formatter
}

func newAxis(sc scale.Scale, side Side, name string) *Axis {
	a := &Axis{
		side:             side,
		sc:               sc,
		tickLength:       5,
		endTickLength:    5,
		tickLabelPadding: 10,
		gutter:           15,
	}
	a.Init(a, name)
	a.SetFixedSize(!side.horizontal(), side.horizontal())
	a.sub = sc.OnUpdate(a.rescale)
	return a
}

// NewNumericAxis returns an axis for a quantitative scale.
func NewNumericAxis(q *scale.Quantitative, side Side) *Axis {
	a := newAxis(q, side, "numeric-axis")
	a.marks = func() []tickMark { return a.quantitativeMarks(q) }
	return a
}

// NewTimeAxis returns an axis for a time scale. Labels are formatted by
// the scale's time ticker unless a formatter is set.
func NewTimeAxis(q *scale.Quantitative, side Side) *Axis {
	a := newAxis(q, side, "time-axis")
	a.marks = func() []tickMark { return a.quantitativeMarks(q) }
	return a
}

// NewCategoryAxis returns an axis labelling the bands of a category scale.
func NewCategoryAxis(c *scale.Category, side Side) *Axis {
	a := newAxis(c, side, "category-axis")
	a.tickLabelPadding = 5
	a.marks = func() []tickMark {
		var marks []tickMark
		for _, cat := range c.Domain() {
			marks = append(marks, tickMark{value: cat, pos: c.Scale(cat), label: a.format(cat, cat)})
		}
		return marks
	}
	return a
}

func (a *Axis) quantitativeMarks(q *scale.Quantitative) []tickMark {
	ticks := q.Ticks()
	marks := make([]tickMark, 0, len(ticks))
	for _, t := range ticks {
		m := tickMark{value: t.Value, pos: q.Scale(t.Value), minor: t.IsMinor()}
		if !m.minor {
			m.label = a.format(t.Value, t.Label)
		}
		marks = append(marks, m)
	}
	return marks
}

func (a *Axis) format(v any, def string) string {
	if a.formatter != nil {
		return a.formatter(v)
	}
	return def
}

// Side returns the side of a.
func (a *Axis) Side() Side { return a.side }

// Scale returns the scale of a.
func (a *Axis) Scale() scale.Scale { return a.sc }

// SetFormatter sets the tick label formatter. Nil restores the default.
func (a *Axis) SetFormatter(f gridplot.Formatter) {
	a.formatter = f
	a.Redraw()
}

func nonNegative(what string, v float64) error {
	if !(v >= 0) {
		return gridplot.Invalidf("component: %s %v must be >= 0", what, v)
	}
	return nil
}

// SetTickLength sets the length of inner ticks.
func (a *Axis) SetTickLength(l float64) error {
	if err := nonNegative("tick length", l); err != nil {
		return err
	}
	a.tickLength = l
	a.Redraw()
	return nil
}

// SetEndTickLength sets the length of the ticks at both ends.
func (a *Axis) SetEndTickLength(l float64) error {
	if err := nonNegative("end tick length", l); err != nil {
		return err
	}
	a.endTickLength = l
	a.Redraw()
	return nil
}

// SetTickLabelPadding sets the space between ticks and labels.
func (a *Axis) SetTickLabelPadding(p float64) error {
	if err := nonNegative("tick label padding", p); err != nil {
		return err
	}
	a.tickLabelPadding = p
	a.Redraw()
	return nil
}

// SetGutter sets the space behind the tick labels.
func (a *Axis) SetGutter(g float64) error {
	if err := nonNegative("gutter", g); err != nil {
		return err
	}
	a.gutter = g
	a.Redraw()
	return nil
}

// SetShowEndTickLabels controls whether labels which would stick out of
// the axis are shown.
func (a *Axis) SetShowEndTickLabels(show bool) {
	a.showEndTickLabels = show
	a.Redraw()
}

func (a *Axis) maxLabelTickLength() float64 {
	if a.showEndTickLabels {
		return max(a.tickLength, a.endTickLength)
	}
	return a.tickLength
}

// RequestedSpace implements Component.
func (a *Axis) RequestedSpace(w, h float64) gridplot.SpaceRequest {
	m, sty := a.measurer(), a.style().Axis.TickLabel
	var maxW, maxH float64
	for _, mark := range a.marks() {
		if mark.minor || mark.label == "" {
			continue
		}
		size := m.Measure(mark.label, sty)
		maxW, maxH = max(maxW, size.Width), max(maxH, size.Height)
	}
	depth := a.maxLabelTickLength() + a.tickLabelPadding + a.gutter
	if a.side.horizontal() {
		return gridplot.SpaceRequest{MinHeight: depth + maxH}
	}
	return gridplot.SpaceRequest{MinWidth: depth + maxW}
}

// ComputeLayout implements Component. The range of the scale follows the
// length of the axis.
func (a *Axis) ComputeLayout(origin gridplot.Point, w, h float64) {
	Place(a, origin, w, h)
	r, ok := a.sc.(scale.Ranger)
	if !ok {
		return
	}
	if a.side.horizontal() {
		r.SetRange(0, a.width)
	} else {
		r.SetRange(a.height, 0)
	}
}

// rescale reacts on scale updates. A full layout is only needed if the
// labels no longer fit.
func (a *Axis) rescale(scale.Scale) {
	if !a.IsAnchored() {
		return
	}
	req := a.RequestedSpace(a.width, a.height)
	if a.side.horizontal() && req.MinHeight > a.height+0.5 || !a.side.horizontal() && req.MinWidth > a.width+0.5 {
		a.Redraw()
		return
	}
	a.Render()
}

// Destroy implements Component.
func (a *Axis) Destroy() {
	a.sc.OffUpdate(a.sub)
	a.Base.Destroy()
}

// at maps a position along the axis and a distance from the base line
// into node coordinates.
func (a *Axis) at(pos, dist float64) gridplot.Point {
	switch a.side {
	case AxisTop:
		return gridplot.Point{X: pos, Y: a.height - dist}
	case AxisLeft:
		return gridplot.Point{X: a.width - dist, Y: pos}
	case AxisRight:
		return gridplot.Point{X: dist, Y: pos}
	}
	return gridplot.Point{X: pos, Y: dist}
}

func (a *Axis) length() float64 {
	if a.side.horizontal() {
		return a.width
	}
	return a.height
}

// RenderImmediately implements Component.
func (a *Axis) RenderImmediately() error {
	a.node.Clear()
	st := a.style()
	length := a.length()

	a.node.Add(surface.Path{Points: []gridplot.Point{a.at(0, 0), a.at(length, 0)}, Line: st.Axis.Line})
	for _, pos := range []float64{0, length} {
		a.node.Add(surface.Path{Points: []gridplot.Point{a.at(pos, 0), a.at(pos, a.endTickLength)}, Line: st.Axis.Tick})
	}

	sty := st.Axis.TickLabel
	switch a.side {
	case AxisBottom:
		sty.XAlign, sty.YAlign = draw.XCenter, draw.YTop
	case AxisTop:
		sty.XAlign, sty.YAlign = draw.XCenter, draw.YBottom
	case AxisLeft:
		sty.XAlign, sty.YAlign = draw.XRight, draw.YCenter
	case AxisRight:
		sty.XAlign, sty.YAlign = draw.XLeft, draw.YCenter
	}
	m := a.measurer()
	for _, mark := range a.marks() {
		if !gridplot.InRange(mark.pos, -0.5, length+0.5) {
			continue
		}
		tl, line := a.tickLength, st.Axis.Tick
		if mark.minor {
			tl, line = a.tickLength/2, st.Axis.MinorTick
		}
		a.node.Add(surface.Path{Points: []gridplot.Point{a.at(mark.pos, 0), a.at(mark.pos, tl)}, Line: line})
		if mark.minor || mark.label == "" {
			continue
		}
		if !a.showEndTickLabels {
			size := m.Measure(mark.label, sty)
			half := size.Width / 2
			if !a.side.horizontal() {
				half = size.Height / 2
			}
			if mark.pos-half < 0 || mark.pos+half > length {
				continue
			}
		}
		a.node.Add(surface.Text{
			At:    a.at(mark.pos, a.tickLength+a.tickLabelPadding),
			Text:  mark.label,
			Style: sty,
		})
	}
	return nil
}

// TickLabels returns the labels of the visible major ticks.
func (a *Axis) TickLabels() []string {
	if a.node == nil {
		return nil
	}
	var labels []string
	for _, op := range a.node.Ops() {
		if t, ok := op.(surface.Text); ok {
			labels = append(labels, t.Text)
		}
	}
	return labels
}
