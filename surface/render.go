package surface

import (
	"io"

	"github.com/pkg/errors"
	"github.com/vdobler/gridplot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Draw paints the visible part of the tree rooted at n onto c. The root
// node's top-left corner is placed at the top-left corner of c; one pixel
// is one vg.Point.
func (n *Node) Draw(c draw.Canvas) {
	top := c.Max.Y
	n.Walk(func(m *Node, origin gridplot.Point) bool {
		if m.Hidden {
			return false
		}
		tr := func(p gridplot.Point) gridplot.Point {
			return gridplot.Point{X: float64(c.Min.X) + origin.X + p.X, Y: float64(top) - origin.Y - p.Y}
		}
		for _, op := range m.ops {
			op.paint(c, tr)
		}
		return true
	})
}

func vgPoint(p gridplot.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(p.Y)}
}

func vgPoints(pts []gridplot.Point, tr func(gridplot.Point) gridplot.Point) []vg.Point {
	out := make([]vg.Point, 0, len(pts))
	for _, p := range pts {
		if !gridplot.IsValidNumber(p.X) || !gridplot.IsValidNumber(p.Y) {
			continue
		}
		out = append(out, vgPoint(tr(p)))
	}
	return out
}

func (r Rect) paint(c draw.Canvas, tr func(gridplot.Point) gridplot.Point) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	a := tr(r.Min)
	b := tr(gridplot.Point{X: r.Min.X + r.Width, Y: r.Min.Y + r.Height})
	rect := vg.Rectangle{
		Min: vg.Point{X: vg.Length(a.X), Y: vg.Length(b.Y)},
		Max: vg.Point{X: vg.Length(b.X), Y: vg.Length(a.Y)},
	}
	if r.Fill != nil {
		c.SetColor(r.Fill)
		c.Fill(rect.Path())
	}
	if r.Line.Color != nil && r.Line.Width > 0 {
		c.SetLineStyle(r.Line)
		c.Stroke(rect.Path())
	}
}

func (p Path) paint(c draw.Canvas, tr func(gridplot.Point) gridplot.Point) {
	if p.Line.Color == nil || p.Line.Width <= 0 {
		return
	}
	pts := vgPoints(p.Points, tr)
	if len(pts) < 2 {
		return
	}
	c.StrokeLines(p.Line, pts)
}

func (p Polygon) paint(c draw.Canvas, tr func(gridplot.Point) gridplot.Point) {
	if p.Fill == nil {
		return
	}
	pts := vgPoints(p.Points, tr)
	if len(pts) < 3 {
		return
	}
	c.FillPolygon(p.Fill, pts)
}

func (g Glyph) paint(c draw.Canvas, tr func(gridplot.Point) gridplot.Point) {
	if g.Style.Shape == nil || g.Style.Color == nil {
		return
	}
	c.DrawGlyph(g.Style, vgPoint(tr(g.Center)))
}

func (t Text) paint(c draw.Canvas, tr func(gridplot.Point) gridplot.Point) {
	if t.Text == "" || t.Style.Color == nil {
		return
	}
	c.FillText(t.Style, vgPoint(tr(t.At)), t.Text)
}

// WriteSVG renders the tree rooted at n as SVG to w.
func WriteSVG(w io.Writer, n *Node) error {
	canvas := vgsvg.New(vg.Length(n.Width), vg.Length(n.Height))
	root := *n
	root.Origin = gridplot.Point{}
	root.Draw(draw.New(canvas))
	_, err := canvas.WriteTo(w)
	return errors.Wrap(err, "surface: writing svg")
}

// WritePNG renders the tree rooted at n as PNG to w.
func WritePNG(w io.Writer, n *Node) error {
	canvas := vgimg.New(vg.Length(n.Width), vg.Length(n.Height))
	root := *n
	root.Origin = gridplot.Point{}
	root.Draw(draw.New(canvas))
	png := vgimg.PngCanvas{Canvas: canvas}
	_, err := png.WriteTo(w)
	return errors.Wrap(err, "surface: writing png")
}
