package plot

import (
	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/drawer"
	"github.com/vdobler/gridplot/scale"
)

// Scatter draws a symbol per datum. Besides "x" and "y" it uses the
// attributes "size" (diameter in pixels), "fill" and "symbol".
type Scatter struct {
	XY
}

// NewScatter returns a scatter plot over the scales x and y.
func NewScatter(x, y scale.Scale) *Scatter {
	s := &Scatter{}
	s.initXY(s, "scatter", x, y)
	s.Attr("size", gridplot.Constant(6.0), nil)
	return s
}

// NewDrawer implements Kind.
func (s *Scatter) NewDrawer(key string) drawer.Drawer { return drawer.NewSymbol(key) }

// DrawSteps implements Kind. Animated symbols grow from nothing.
func (s *Scatter) DrawSteps() []drawer.DrawStep {
	attrs := s.Projectors()
	if !s.animating() {
		return []drawer.DrawStep{{Attrs: attrs, Animator: s.Animator("main")}}
	}
	reset := make(drawer.AttrToProjector, len(attrs))
	for k, v := range attrs {
		reset[k] = v
	}
	reset["size"] = func(any, int, gridplot.Context) any { return 0.0 }
	return []drawer.DrawStep{
		{Attrs: reset, Animator: s.Animator("reset")},
		{Attrs: attrs, Animator: s.Animator("main")},
	}
}
