package component

import (
	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/scale"
	"github.com/vdobler/gridplot/surface"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Legend shows one entry (symbol and text) per domain value of a color
// scale. Entries fill rows left to right.
type Legend struct {
	Base

	sc               *scale.Color
	sub              gridplot.Subscription
	maxEntriesPerRow int
	formatter        gridplot.Formatter
}

// NewLegend returns a vertical legend for c.
func NewLegend(c *scale.Color) *Legend {
	l := &Legend{sc: c, maxEntriesPerRow: 1, formatter: gridplot.IdentityFormatter}
	l.Init(l, "legend")
	l.SetFixedSize(true, true)
	l.sub = c.OnUpdate(func(scale.Scale) { l.Redraw() })
	return l
}

// SetMaxEntriesPerRow sets how many entries share one row.
func (l *Legend) SetMaxEntriesPerRow(n int) error {
	if n <= 0 {
		return gridplot.Invalidf("component: max entries per row %d must be > 0", n)
	}
	l.maxEntriesPerRow = n
	l.Redraw()
	return nil
}

// SetFormatter sets the formatter of the entry texts.
func (l *Legend) SetFormatter(f gridplot.Formatter) {
	if f == nil {
		f = gridplot.IdentityFormatter
	}
	l.formatter = f
	l.Redraw()
}

// Destroy implements Component.
func (l *Legend) Destroy() {
	l.sc.OffUpdate(l.sub)
	l.Base.Destroy()
}

type legendEntry struct {
	value string
	text  string
	size  gridplot.Size
}

// rows groups the entries into rows and returns the line height.
func (l *Legend) rows() ([][]legendEntry, float64) {
	m, sty := l.measurer(), l.style().Legend.Label
	var rows [][]legendEntry
	lineHeight := 0.0
	for i, v := range l.sc.Domain() {
		e := legendEntry{value: v, text: l.formatter(v)}
		e.size = m.Measure(e.text, sty)
		lineHeight = max(lineHeight, e.size.Height)
		if i%l.maxEntriesPerRow == 0 {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], e)
	}
	return rows, lineHeight
}

// entryWidth is symbol, padding and text.
func (l *Legend) entryWidth(e legendEntry, lineHeight float64) float64 {
	return lineHeight + l.style().Legend.Padding + e.size.Width
}

// RequestedSpace implements Component.
func (l *Legend) RequestedSpace(w, h float64) gridplot.SpaceRequest {
	rows, lineHeight := l.rows()
	pad := l.style().Legend.Padding
	width := 0.0
	for _, row := range rows {
		rw := 0.0
		for i, e := range row {
			if i > 0 {
				rw += pad
			}
			rw += l.entryWidth(e, lineHeight)
		}
		width = max(width, rw)
	}
	if len(rows) == 0 {
		return gridplot.SpaceRequest{}
	}
	return gridplot.SpaceRequest{
		MinWidth:  width + 2*pad,
		MinHeight: float64(len(rows))*lineHeight + 2*pad,
	}
}

// RenderImmediately implements Component.
func (l *Legend) RenderImmediately() error {
	l.node.Clear()
	rows, lineHeight := l.rows()
	st := l.style()
	pad := st.Legend.Padding
	sty := st.Legend.Label
	sty.XAlign, sty.YAlign = draw.XLeft, draw.YCenter
	y := pad
	for _, row := range rows {
		x := pad
		for _, e := range row {
			center := gridplot.Point{X: x + lineHeight/2, Y: y + lineHeight/2}
			l.node.Add(surface.Glyph{
				Center: center,
				Style: draw.GlyphStyle{
					Color:  l.sc.Scale(e.value),
					Radius: vg.Length(lineHeight * 0.3),
					Shape:  st.Legend.Symbol,
				},
			})
			l.node.Add(surface.Text{
				At:    gridplot.Point{X: x + lineHeight + pad, Y: center.Y},
				Text:  e.text,
				Style: sty,
			})
			x += l.entryWidth(e, lineHeight) + pad
		}
		y += lineHeight
	}
	return nil
}

// EntryAt returns the domain value of the entry at the local point p.
func (l *Legend) EntryAt(p gridplot.Point) (string, bool) {
	rows, lineHeight := l.rows()
	pad := l.style().Legend.Padding
	if lineHeight == 0 {
		return "", false
	}
	r := int((p.Y - pad) / lineHeight)
	if p.Y < pad || r >= len(rows) {
		return "", false
	}
	x := pad
	for _, e := range rows[r] {
		w := l.entryWidth(e, lineHeight)
		if p.X >= x && p.X <= x+w {
			return e.value, true
		}
		x += w + pad
	}
	return "", false
}
