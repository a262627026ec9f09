// Package chart assembles complete charts: faceted grids of plots and
// charts described by YAML files.
package chart

import (
	"fmt"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/component"
	"github.com/vdobler/gridplot/scale"
	"github.com/vdobler/gridplot/surface"
)

// An XYPlot is a plot with an x and a y scale, e.g. *plot.Line.
type XYPlot interface {
	component.Component
	XScale() scale.Scale
	YScale() scale.Scale
}

// ----------------------------------------------------------------------------
// Panel

// panelBackground fills its area with the panel background of the style.
type panelBackground struct {
	component.Base
}

func newPanelBackground() *panelBackground {
	p := &panelBackground{}
	p.Init(p, "panel-background")
	return p
}

func (p *panelBackground) RenderImmediately() error {
	n := p.Node()
	n.Clear()
	if bg := p.Root().Style().Panel.Background; bg != nil {
		n.Add(surface.Rect{Width: p.Width(), Height: p.Height(), Fill: bg})
	}
	return nil
}

// ----------------------------------------------------------------------------
// Facet

// Facet is a grid of panels. All panels of a column share one x scale and
// all panels of a row one y scale. Unless the scales are free, a single
// scale is shared by all columns or rows. Column strips are drawn above
// the first row, row strips right of the last column, x axes below the
// last row and y axes left of the first column.
type Facet struct {
	Rows, Cols int

	panels           [][]*component.Group
	xScales, yScales []*scale.Quantitative
	colStrips        []*component.Label
	rowStrips        []*component.Label
	xAxes, yAxes     []*component.Axis
	grid             *component.Table
	title            *component.Label
	top              *component.Table
}

// NewFacet builds a rows x cols facet. newScale returns the scales;
// NewFacet calls it once per axis direction or, for free scales, once per
// column or row.
func NewFacet(rows, cols int, freeX, freeY bool, newScale func() *scale.Quantitative) (*Facet, error) {
	if rows <= 0 || cols <= 0 {
		return nil, gridplot.Invalidf("chart: facet size %dx%d must be positive", rows, cols)
	}
	if newScale == nil {
		newScale = scale.NewLinear
	}
	f := &Facet{
		Rows:      rows,
		Cols:      cols,
		panels:    make([][]*component.Group, rows),
		xScales:   shared(cols, freeX, newScale),
		yScales:   shared(rows, freeY, newScale),
		colStrips: make([]*component.Label, cols),
		rowStrips: make([]*component.Label, rows),
		xAxes:     make([]*component.Axis, cols),
		yAxes:     make([]*component.Axis, rows),
	}

	// Layout: strips in row 0 and column cols+1, axes in column 0 and row
	// rows+1.
	cells := make([][]component.Component, rows+2)
	for r := range cells {
		cells[r] = make([]component.Component, cols+2)
	}
	for c := 0; c < cols; c++ {
		f.colStrips[c] = component.NewStrip("")
		f.xAxes[c] = component.NewNumericAxis(f.xScales[c], component.AxisBottom)
		cells[0][c+1] = f.colStrips[c]
		cells[rows+1][c+1] = f.xAxes[c]
	}
	for r := 0; r < rows; r++ {
		f.rowStrips[r] = component.NewStrip("")
		if err := f.rowStrips[r].SetOrientation(component.Right); err != nil {
			return nil, err
		}
		f.rowStrips[r].SetFixedSize(true, false)
		f.yAxes[r] = component.NewNumericAxis(f.yScales[r], component.AxisLeft)
		cells[r+1][0] = f.yAxes[r]
		cells[r+1][cols+1] = f.rowStrips[r]

		f.panels[r] = make([]*component.Group, cols)
		for c := 0; c < cols; c++ {
			g := component.NewGroup(newPanelBackground(), component.NewGridlines(f.xScales[c], f.yScales[r]))
			f.panels[r][c] = g
			cells[r+1][c+1] = g
		}
	}
	f.grid = component.NewTable(cells)
	f.title = component.NewTitle("")
	f.top = component.NewTable([][]component.Component{{f.title}, {f.grid}})
	if err := f.grid.SetRowPadding(4); err != nil {
		return nil, err
	}
	if err := f.grid.SetColumnPadding(4); err != nil {
		return nil, err
	}
	return f, nil
}

// shared returns n scales which are distinct if free and identical
// otherwise.
func shared(n int, free bool, newScale func() *scale.Quantitative) []*scale.Quantitative {
	out := make([]*scale.Quantitative, n)
	common := newScale()
	for i := range out {
		if free && i > 0 {
			out[i] = newScale()
		} else {
			out[i] = common
		}
	}
	return out
}

// XScale returns the x scale of column col.
func (f *Facet) XScale(col int) *scale.Quantitative { return f.xScales[col] }

// YScale returns the y scale of row row.
func (f *Facet) YScale(row int) *scale.Quantitative { return f.yScales[row] }

// Panel returns the group of the panel in row, col.
func (f *Facet) Panel(row, col int) *component.Group { return f.panels[row][col] }

func (f *Facet) check(row, col int) error {
	if row < 0 || row >= f.Rows || col < 0 || col >= f.Cols {
		return gridplot.Invalidf("chart: panel %d,%d outside of %dx%d facet", row, col, f.Rows, f.Cols)
	}
	return nil
}

// Add draws p in the panel at row, col. The scales of p must be the
// scales of that panel.
func (f *Facet) Add(row, col int, p XYPlot) error {
	if err := f.check(row, col); err != nil {
		return err
	}
	if p.XScale() != scale.Scale(f.xScales[col]) || p.YScale() != scale.Scale(f.yScales[row]) {
		return gridplot.Invalidf("chart: plot for panel %d,%d does not use the panel scales", row, col)
	}
	f.panels[row][col].Append(p)
	return nil
}

// SetColumnLabel sets the strip text above column col.
func (f *Facet) SetColumnLabel(col int, text string) error {
	if err := f.check(0, col); err != nil {
		return err
	}
	f.colStrips[col].SetText(text)
	return nil
}

// SetRowLabel sets the strip text right of row row.
func (f *Facet) SetRowLabel(row int, text string) error {
	if err := f.check(row, 0); err != nil {
		return err
	}
	f.rowStrips[row].SetText(text)
	return nil
}

// SetTitle shows text above the grid.
func (f *Facet) SetTitle(text string) { f.title.SetText(text) }

// Table returns the component showing the title above the grid.
func (f *Facet) Table() *component.Table { return f.top }

func (f *Facet) String() string {
	return fmt.Sprintf("Facet(%dx%d)", f.Rows, f.Cols)
}
