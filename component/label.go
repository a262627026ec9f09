package component

import (
	"math"
	"strings"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
	"gonum.org/v1/plot/vg/draw"
)

// Orientation is the reading direction of a Label.
type Orientation int

const (
	Horizontal Orientation = iota
	Left                   // rotated counter clockwise, read bottom to top
	Right                  // rotated clockwise, read top to bottom
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// ParseOrientation parses "horizontal", "left" or "right".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "horizontal":
		return Horizontal, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Horizontal, gridplot.Invalidf("component: unsupported label orientation %q", s)
}

// A Label shows one line of text. It is fixed in both dimensions.
type Label struct {
	Base

	text        string
	orientation Orientation
	padding     float64
	sty         *draw.TextStyle
	title       bool
	strip       bool
}

// NewLabel returns a horizontal label showing text.
func NewLabel(text string) *Label {
	l := &Label{text: text}
	l.Init(l, "label")
	l.SetFixedSize(true, true)
	return l
}

// NewTitle returns a label using the title style.
func NewTitle(text string) *Label {
	l := NewLabel(text)
	l.name = "title"
	l.title = true
	return l
}

// NewStrip returns a label in the strip style drawn on the strip
// background, like the row and column headers of a facet.
func NewStrip(text string) *Label {
	l := NewLabel(text)
	l.name = "strip"
	l.strip = true
	l.padding = 3
	l.SetFixedSize(false, true)
	return l
}

// Text returns the text of l.
func (l *Label) Text() string { return l.text }

// SetText changes the text of l.
func (l *Label) SetText(text string) {
	l.text = text
	l.Redraw()
}

// Orientation returns the orientation of l.
func (l *Label) Orientation() Orientation { return l.orientation }

// SetOrientation changes the orientation of l.
func (l *Label) SetOrientation(o Orientation) error {
	if o < Horizontal || o > Right {
		return gridplot.Invalidf("component: unsupported label orientation %d", o)
	}
	l.orientation = o
	l.Redraw()
	return nil
}

// Padding returns the space around the text.
func (l *Label) Padding() float64 { return l.padding }

// SetPadding sets the space around the text.
func (l *Label) SetPadding(p float64) error {
	if !(p >= 0) {
		return gridplot.Invalidf("component: label padding %v must be >= 0", p)
	}
	l.padding = p
	l.Redraw()
	return nil
}

// SetStyle overrides the text style taken from the root.
func (l *Label) SetStyle(sty draw.TextStyle) {
	l.sty = &sty
	l.Redraw()
}

func (l *Label) textStyle() draw.TextStyle {
	if l.sty != nil {
		return *l.sty
	}
	if l.title {
		return l.style().Title
	}
	if l.strip {
		return l.style().Strip.TextStyle
	}
	return l.style().Label
}

// RequestedSpace implements Component. An empty label needs no space.
func (l *Label) RequestedSpace(w, h float64) gridplot.SpaceRequest {
	if l.text == "" {
		return gridplot.SpaceRequest{}
	}
	size := l.measurer().Measure(l.text, l.textStyle())
	req := gridplot.SpaceRequest{
		MinWidth:  size.Width + 2*l.padding,
		MinHeight: size.Height + 2*l.padding,
	}
	if l.orientation != Horizontal {
		req.MinWidth, req.MinHeight = req.MinHeight, req.MinWidth
	}
	return req
}

// RenderImmediately implements Component.
func (l *Label) RenderImmediately() error {
	l.node.Clear()
	if l.strip && l.style().Strip.Background != nil {
		l.node.Add(surface.Rect{Width: l.width, Height: l.height, Fill: l.style().Strip.Background})
	}
	if l.text == "" {
		return nil
	}
	sty := l.textStyle()
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter
	switch l.orientation {
	case Left:
		sty.Rotation = math.Pi / 2
	case Right:
		sty.Rotation = -math.Pi / 2
	}
	l.node.Add(surface.Text{
		At:    gridplot.Point{X: l.width / 2, Y: l.height / 2},
		Text:  l.text,
		Style: sty,
	})
	return nil
}
