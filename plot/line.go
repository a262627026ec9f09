package plot

import (
	"math"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/drawer"
	"github.com/vdobler/gridplot/scale"
)

// Line connects the data of each dataset in order. Data with an invalid
// position are skipped. Besides "x" and "y" it uses "stroke" and
// "stroke-width" of the first datum.
type Line struct {
	XY
}

// NewLine returns a line plot over the scales x and y.
func NewLine(x, y scale.Scale) *Line {
	l := &Line{}
	l.initXY(l, "line", x, y)
	return l
}

// NewDrawer implements Kind.
func (l *Line) NewDrawer(key string) drawer.Drawer { return drawer.NewLine(key) }

// DrawSteps implements Kind. Animated lines rise from the y baseline.
func (l *Line) DrawSteps() []drawer.DrawStep {
	return l.xyDrawSteps(l.Projectors(), "y")
}

// xyDrawSteps prepends a step projecting the named attributes to the
// baseline if the plot animates.
func (p *XY) xyDrawSteps(attrs drawer.AttrToProjector, flatten ...string) []drawer.DrawStep {
	if !p.animating() {
		return []drawer.DrawStep{{Attrs: attrs, Animator: p.Animator("main")}}
	}
	reset := make(drawer.AttrToProjector, len(attrs))
	for k, v := range attrs {
		reset[k] = v
	}
	base := p.yBaselinePixel()
	for _, name := range flatten {
		reset[name] = func(any, int, gridplot.Context) any { return base }
	}
	return []drawer.DrawStep{
		{Attrs: reset, Animator: p.Animator("reset")},
		{Attrs: attrs, Animator: p.Animator("main")},
	}
}

// yBaselinePixel is the pixel of 0 clamped to the y domain.
func (p *XY) yBaselinePixel() float64 {
	q, ok := p.y.(*scale.Quantitative)
	if !ok {
		lo, hi := 0.0, 0.0
		if r, ok := p.y.(scale.Ranger); ok {
			lo, hi = r.Range()
		}
		return max(lo, hi)
	}
	lo, hi := q.Domain()
	return q.Scale(gridplot.Clamp(0, min(lo, hi), max(lo, hi)))
}

func (l *Line) distance(query gridplot.Point, e Entry) [2]float64 { return xDominant(query, e) }

// xDominant ranks by horizontal distance and breaks ties vertically.
func xDominant(query gridplot.Point, e Entry) [2]float64 {
	return [2]float64{math.Abs(query.X - e.Pixel.X), math.Abs(query.Y - e.Pixel.Y)}
}
