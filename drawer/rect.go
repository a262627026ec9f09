package drawer

import (
	"image/color"
	"time"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Rect draws one rectangle per datum from the attributes "x", "y",
// "width", "height", "fill", "stroke" and "stroke-width". Rectangles
// with negative width or height are normalized and clipped to the node.
type Rect struct {
	base
	vertical bool

	// Fill is used if no "fill" attribute is projected.
	Fill color.Color
}

// NewRect returns a rectangle drawer. Vertical rectangles grow along y.
func NewRect(key string, vertical bool) *Rect {
	return &Rect{base: base{key: key}, vertical: vertical, Fill: color.Gray{Y: 0x55}}
}

// canonicRect returns the rectangle at (x, y) of size w x h with
// non-negative extent.
func canonicRect(x, y, w, h float64) vg.Rectangle {
	r := vg.Rectangle{
		Min: vg.Point{X: vg.Length(x), Y: vg.Length(y)},
		Max: vg.Point{X: vg.Length(x + w), Y: vg.Length(y + h)},
	}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// clipRect clips the canonical rect to limit.
func clipRect(rect, limit vg.Rectangle) (vg.Rectangle, bool) {
	rect.Min.X = max(rect.Min.X, limit.Min.X)
	rect.Min.Y = max(rect.Min.Y, limit.Min.Y)
	rect.Max.X = min(rect.Max.X, limit.Max.X)
	rect.Max.Y = min(rect.Max.Y, limit.Max.Y)
	return rect, rect.Min.X <= rect.Max.X && rect.Min.Y <= rect.Max.Y
}

// Draw implements Drawer.
func (r *Rect) Draw(data []any, steps []AppliedDrawStep) time.Duration {
	final, start, total := r.prepare(steps, len(data))
	r.visible = make([]bool, len(data))
	var limit vg.Rectangle
	if r.node != nil {
		limit.Max = vg.Point{X: vg.Length(r.node.Width), Y: vg.Length(r.node.Height)}
	}
	for i, d := range data {
		x, y := final.Float("x", d, i), final.Float("y", d, i)
		w, h := final.Float("width", d, i), final.Float("height", d, i)
		if !gridplot.IsValidNumber(x + y + w + h) {
			continue
		}
		rect := canonicRect(x, y, w, h)
		if r.node != nil {
			var ok bool
			if rect, ok = clipRect(rect, limit); !ok {
				continue
			}
		}
		r.visible[i] = true
		op := surface.Rect{
			Min:    gridplot.Point{X: float64(rect.Min.X), Y: float64(rect.Min.Y)},
			Width:  float64(rect.Max.X - rect.Min.X),
			Height: float64(rect.Max.Y - rect.Min.Y),
			Fill:   final.Color("fill", d, i, r.Fill),
			Start:  start + final.Animator.ElementDelay(i, len(data)),
		}
		if stroke := final.Color("stroke", d, i, nil); stroke != nil {
			op.Line = draw.LineStyle{Color: stroke, Width: vg.Length(final.FloatOr("stroke-width", d, i, 1))}
		}
		r.add(op)
	}
	return total
}

// PixelPoint implements Drawer: the center of the top edge of vertical
// rectangles and the center of the right edge of horizontal ones.
func (r *Rect) PixelPoint(datum any, index int) gridplot.Point {
	s := r.last
	x, y := s.Float("x", datum, index), s.Float("y", datum, index)
	w, h := s.Float("width", datum, index), s.Float("height", datum, index)
	if r.vertical {
		return gridplot.Point{X: x + w/2, Y: y}
	}
	return gridplot.Point{X: x + w, Y: y + h/2}
}
