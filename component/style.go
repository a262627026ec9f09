package component

import (
	"image/color"
	"math"
	"sync"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Style controls how components draw themselves.
type Style struct {
	Background color.Color

	Title draw.TextStyle
	Label draw.TextStyle

	Panel struct {
		Background color.Color
	}
	Strip struct {
		Background color.Color
		draw.TextStyle
	}

	Grid struct {
		Major draw.LineStyle
		Minor draw.LineStyle
	}

	Axis struct {
		Line      draw.LineStyle
		Tick      draw.LineStyle
		MinorTick draw.LineStyle
		TickLabel draw.TextStyle
	}

	Legend struct {
		Label   draw.TextStyle
		Symbol  draw.GlyphDrawer
		Padding float64
	}
}

// DefaultStyle returns a Style which mimics the appearance of ggplot2.
// The baseFontSize is the font size for labels and strips, the title
// is a bit bigger, tick labels a bit smaller.
func DefaultStyle(baseFontSize vg.Length) Style {
	scale := func(x vg.Length, f float64) vg.Length {
		return vg.Length(math.Round(f * float64(x)))
	}

	titleFont, err := vg.MakeFont("Helvetica-Bold", scale(baseFontSize, 1.2))
	if err != nil {
		panic(err)
	}
	baseFont, err := vg.MakeFont("Helvetica", baseFontSize)
	if err != nil {
		panic(err)
	}
	tickFont, err := vg.MakeFont("Helvetica", scale(baseFontSize, 1/1.2))
	if err != nil {
		panic(err)
	}

	s := Style{}
	s.Background = color.White

	s.Title.Color = color.Black
	s.Title.Font = titleFont
	s.Label.Color = color.Black
	s.Label.Font = baseFont

	s.Panel.Background = color.Gray16{0xeeee}

	s.Strip.Background = color.Gray16{0xcccc}
	s.Strip.Color = color.Black
	s.Strip.Font = baseFont

	s.Grid.Major.Color = color.White
	s.Grid.Major.Width = vg.Length(1)
	s.Grid.Minor.Color = color.White
	s.Grid.Minor.Width = vg.Length(0.5)

	s.Axis.Line.Color = color.Gray16{0x1111}
	s.Axis.Line.Width = vg.Length(1)
	s.Axis.Tick.Color = color.Gray16{0x1111}
	s.Axis.Tick.Width = vg.Length(1)
	s.Axis.MinorTick.Color = color.Gray16{0x5555}
	s.Axis.MinorTick.Width = vg.Length(0.5)
	s.Axis.TickLabel.Color = color.Black
	s.Axis.TickLabel.Font = tickFont

	s.Legend.Label.Color = color.Black
	s.Legend.Label.Font = tickFont
	s.Legend.Symbol = draw.CircleGlyph{}
	s.Legend.Padding = 5

	return s
}

var (
	defaultStyleOnce sync.Once
	defaultStyleVal  Style
)

// defaultStyle is DefaultStyle(12), built once.
func defaultStyle() *Style {
	defaultStyleOnce.Do(func() { defaultStyleVal = DefaultStyle(12) })
	return &defaultStyleVal
}
