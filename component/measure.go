package component

import (
	"strings"
	"unicode/utf8"

	"github.com/vdobler/gridplot"
	"gonum.org/v1/plot/vg/draw"
)

// A Measurer determines the size of unrotated text.
type Measurer interface {
	Measure(text string, sty draw.TextStyle) gridplot.Size
}

// FontMeasurer measures text with the font metrics of the text style.
type FontMeasurer struct{}

// Measure implements Measurer.
func (FontMeasurer) Measure(text string, sty draw.TextStyle) gridplot.Size {
	if text == "" {
		return gridplot.Size{}
	}
	if sty.Font.Size == 0 {
		return FixedMeasurer{CharWidth: 7, LineHeight: 12}.Measure(text, sty)
	}
	return gridplot.Size{
		Width:  float64(sty.Width(text)),
		Height: float64(sty.Height(text)),
	}
}

// FixedMeasurer assumes every rune has the same width. It is useful when
// no fonts are available and makes layouts reproducible.
type FixedMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

// Measure implements Measurer.
func (m FixedMeasurer) Measure(text string, _ draw.TextStyle) gridplot.Size {
	if text == "" {
		return gridplot.Size{}
	}
	lines := strings.Split(text, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	return gridplot.Size{
		Width:  float64(width) * m.CharWidth,
		Height: float64(len(lines)) * m.LineHeight,
	}
}

var defaultMeasurer Measurer = FontMeasurer{}
