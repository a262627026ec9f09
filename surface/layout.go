package surface

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/vdobler/gridplot"
)

var layoutColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

// WriteLayout writes an SVG outline of the node boxes below n: one
// labelled rectangle per visible node, nested nodes in alternating colors.
// It shows how space was distributed without painting any content.
func WriteLayout(w io.Writer, n *Node) {
	canvas := svg.New(w)
	width, height := px(n.Width), px(n.Height)
	canvas.Start(width, height, `font-family="sans-serif" font-size="9"`)
	canvas.Rect(0, 0, width, height, "fill:white")
	writeLayoutNode(canvas, n, gridplot.Point{}, 0)
	canvas.End()
}

func writeLayoutNode(canvas *svg.SVG, n *Node, parent gridplot.Point, depth int) {
	if n.Hidden {
		return
	}
	o := parent.Add(n.Origin)
	if depth == 0 {
		o = gridplot.Point{}
	}
	col := layoutColors[depth%len(layoutColors)]
	canvas.Group(fmt.Sprintf(`id="%s-%d"`, sanitizeID(n.Name), depth))
	canvas.Title(fmt.Sprintf("%s %.0fx%.0f at (%.0f,%.0f)", n.Name, n.Width, n.Height, o.X, o.Y))
	canvas.Rect(px(o.X), px(o.Y), px(n.Width), px(n.Height),
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:%d,2", col, 2+depth))
	if n.Name != "" && n.Width > 20 && n.Height > 10 {
		canvas.Text(px(o.X)+2, px(o.Y)+10, n.Name, "fill:"+col)
	}
	for _, c := range n.children {
		writeLayoutNode(canvas, c, o, depth+1)
	}
	canvas.Gend()
}

func px(x float64) int {
	if !gridplot.IsValidNumber(x) {
		return 0
	}
	return int(math.Round(x))
}

func sanitizeID(s string) string {
	b := []byte(s)
	for i, c := range b {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-' || c == '_') {
			b[i] = '_'
		}
	}
	if len(b) == 0 {
		return "node"
	}
	return string(b)
}
