package drawer

import (
	"image/color"
	"time"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Symbol draws a glyph per datum at "x"/"y". The "size" attribute is the
// diameter, "fill" the color and "symbol" an index into the glyph shapes
// of plotutil.
type Symbol struct {
	base

	// Fill and Size are used if the attribute is not projected.
	Fill color.Color
	Size float64
}

// NewSymbol returns a symbol drawer.
func NewSymbol(key string) *Symbol {
	return &Symbol{base: base{key: key}, Fill: plotutil.Color(0), Size: 6}
}

// Draw implements Drawer.
func (s *Symbol) Draw(data []any, steps []AppliedDrawStep) time.Duration {
	final, start, total := s.prepare(steps, len(data))
	s.visible = make([]bool, len(data))
	for i, d := range data {
		center, ok := point(final, d, i)
		size := final.FloatOr("size", d, i, s.Size)
		if !ok || !gridplot.IsValidNumber(size) || size <= 0 {
			continue
		}
		var shape draw.GlyphDrawer = draw.CircleGlyph{}
		if idx := final.FloatOr("symbol", d, i, -1); idx >= 0 {
			shape = plotutil.Shape(int(idx))
		}
		s.visible[i] = true
		s.add(surface.Glyph{
			Center: center,
			Style: draw.GlyphStyle{
				Color:  final.Color("fill", d, i, s.Fill),
				Radius: vg.Length(size / 2),
				Shape:  shape,
			},
			Start: start + final.Animator.ElementDelay(i, len(data)),
		})
	}
	return total
}

// PixelPoint implements Drawer.
func (s *Symbol) PixelPoint(datum any, index int) gridplot.Point {
	p, _ := point(s.last, datum, index)
	return p
}
