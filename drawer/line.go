package drawer

import (
	"image/color"
	"time"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Line draws one path through the "x"/"y" attributes of all data in
// order. Data with an invalid position are left out. The path uses the
// "stroke" and "stroke-width" attributes of the first datum.
type Line struct {
	base

	// Stroke is used if no "stroke" attribute is projected.
	Stroke color.Color
}

// NewLine returns a line drawer.
func NewLine(key string) *Line {
	return &Line{base: base{key: key}, Stroke: color.Black}
}

// linePoints returns the valid points of data under s and marks them
// visible.
func (b *base) linePoints(s AppliedDrawStep, data []any) plotter.XYs {
	b.visible = make([]bool, len(data))
	xys := make(plotter.XYs, 0, len(data))
	for i, d := range data {
		p, ok := point(s, d, i)
		if !ok {
			continue
		}
		b.visible[i] = true
		xys = append(xys, plotter.XY{X: p.X, Y: p.Y})
	}
	return xys
}

func toPoints(xys plotter.XYs) []gridplot.Point {
	pts := make([]gridplot.Point, len(xys))
	for i, xy := range xys {
		pts[i] = gridplot.Point{X: xy.X, Y: xy.Y}
	}
	return pts
}

func lineStyle(s AppliedDrawStep, data []any, def color.Color) draw.LineStyle {
	var first any
	if len(data) > 0 {
		first = data[0]
	}
	return draw.LineStyle{
		Color: s.Color("stroke", first, 0, def),
		Width: vg.Length(s.FloatOr("stroke-width", first, 0, 2)),
	}
}

// Draw implements Drawer. A line animates as a single element.
func (l *Line) Draw(data []any, steps []AppliedDrawStep) time.Duration {
	final, start, total := l.prepare(steps, 1)
	xys := l.linePoints(final, data)
	if len(xys) > 0 {
		l.add(surface.Path{
			Points: toPoints(xys),
			Line:   lineStyle(final, data, l.Stroke),
			Start:  start + final.Animator.ElementDelay(0, 1),
		})
	}
	return total
}

// PixelPoint implements Drawer.
func (l *Line) PixelPoint(datum any, index int) gridplot.Point {
	p, _ := point(l.last, datum, index)
	return p
}

// Area fills the region between the "y" and "y0" attributes along "x"
// and optionally draws the "y" line on top.
type Area struct {
	Line

	drawLine bool

	// Fill is used if no "fill" attribute is projected.
	Fill color.Color
}

// NewArea returns an area drawer which draws its upper line.
func NewArea(key string) *Area {
	return &Area{
		Line:     Line{base: base{key: key}, Stroke: color.Black},
		drawLine: true,
		Fill:     color.Gray{Y: 0xaa},
	}
}

// SetDrawLine controls whether the upper line is drawn.
func (a *Area) SetDrawLine(draw bool) { a.drawLine = draw }

// Draw implements Drawer.
func (a *Area) Draw(data []any, steps []AppliedDrawStep) time.Duration {
	final, start, total := a.prepare(steps, 1)
	upper := a.linePoints(final, data)
	if len(upper) == 0 {
		return total
	}
	var lower plotter.XYs
	for i, d := range data {
		if !a.visible[i] {
			continue
		}
		y0 := final.FloatOr("y0", d, i, 0)
		if !gridplot.IsValidNumber(y0) {
			continue
		}
		lower = append(lower, plotter.XY{X: final.Float("x", d, i), Y: y0})
	}
	polygon := toPoints(upper)
	for i := len(lower) - 1; i >= 0; i-- {
		polygon = append(polygon, gridplot.Point{X: lower[i].X, Y: lower[i].Y})
	}
	var first any = data[0]
	at := start + final.Animator.ElementDelay(0, 1)
	a.add(surface.Polygon{
		Points: polygon,
		Fill:   final.Color("fill", first, 0, a.Fill),
		Start:  at,
	})
	if a.drawLine {
		a.add(surface.Path{
			Points: toPoints(upper),
			Line:   lineStyle(final, data, a.Stroke),
			Start:  at,
		})
	}
	return total
}
