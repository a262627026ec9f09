package component

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
)

// ErrOccupied is returned when adding to a table cell which already holds
// a component.
var ErrOccupied = errors.New("component: table cell is occupied")

// maxLayoutIterations bounds the space negotiation of a Table.
const maxLayoutIterations = 5

// A Table arranges components in a grid. Rows and columns without
// explicit weight get weight 0 if all their cells are empty or fixed in
// that direction and 1 otherwise. Space left after satisfying the
// minimum requests is distributed proportional to the weights.
type Table struct {
	Base

	rows          [][]Component
	rowPadding    float64
	columnPadding float64
	rowWeights    map[int]float64
	columnWeights map[int]float64

	layout tableLayout
}

// tableLayout is the result of one space negotiation.
type tableLayout struct {
	guaranteedWidths, guaranteedHeights     []float64
	proportionalWidths, proportionalHeights []float64
	wantsWidth, wantsHeight                 bool
}

// NewTable returns a table with the given rows. Nil cells are empty.
func NewTable(rows [][]Component) *Table {
	t := &Table{
		rowWeights:    make(map[int]float64),
		columnWeights: make(map[int]float64),
	}
	t.Init(t, "table")
	for r, row := range rows {
		for c, comp := range row {
			if comp == nil {
				continue
			}
			if err := t.Add(comp, r, c); err != nil {
				panic(err)
			}
		}
	}
	// Keep trailing empty rows and columns.
	t.grow(len(rows)-1, 0)
	for _, row := range rows {
		t.grow(0, len(row)-1)
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

// At returns the component in cell (row, col) or nil.
func (t *Table) At(row, col int) Component {
	if row < 0 || row >= t.NumRows() || col < 0 || col >= t.NumColumns() {
		return nil
	}
	return t.rows[row][col]
}

func (t *Table) grow(row, col int) {
	nCols := max(t.NumColumns(), col+1)
	for len(t.rows) <= row {
		t.rows = append(t.rows, nil)
	}
	for i := range t.rows {
		for len(t.rows[i]) < nCols {
			t.rows[i] = append(t.rows[i], nil)
		}
	}
}

// Add puts c into cell (row, col), growing the grid as needed. Adding to
// an occupied cell fails with ErrOccupied.
func (t *Table) Add(c Component, row, col int) error {
	if c == nil {
		return gridplot.Invalidf("component: cannot add nil to table")
	}
	if row < 0 || col < 0 {
		return gridplot.Invalidf("component: invalid table cell (%d,%d)", row, col)
	}
	if cur := t.At(row, col); cur != nil {
		if cur == c {
			return nil
		}
		return errors.Wrapf(ErrOccupied, "cell (%d,%d)", row, col)
	}
	adopt(t, c)
	t.grow(row, col)
	t.rows[row][col] = c
	if t.root != nil {
		defer t.root.controller.hold()()
		c.Anchor(t.root, t.node)
	}
	t.Redraw()
	return nil
}

// Remove implements Container. Removing a non-child is a no-op.
func (t *Table) Remove(c Component) {
	for r, row := range t.rows {
		for col, cell := range row {
			if cell == c && c != nil {
				t.rows[r][col] = nil
				c.base().parent = nil
				c.Detach()
				t.Redraw()
				return
			}
		}
	}
}

// Components implements Container: all components, row by row.
func (t *Table) Components() []Component {
	var cs []Component
	for _, row := range t.rows {
		for _, c := range row {
			if c != nil {
				cs = append(cs, c)
			}
		}
	}
	return cs
}

// Has implements Container.
func (t *Table) Has(c Component) bool { return c != nil && slices.Contains(t.Components(), c) }

// SetRowPadding sets the space between rows.
func (t *Table) SetRowPadding(p float64) error {
	if !(p >= 0) {
		return gridplot.Invalidf("component: row padding %v must be >= 0", p)
	}
	t.rowPadding = p
	t.Redraw()
	return nil
}

// SetColumnPadding sets the space between columns.
func (t *Table) SetColumnPadding(p float64) error {
	if !(p >= 0) {
		return gridplot.Invalidf("component: column padding %v must be >= 0", p)
	}
	t.columnPadding = p
	t.Redraw()
	return nil
}

// SetRowWeight sets the share of free height row receives.
func (t *Table) SetRowWeight(row int, w float64) error {
	if !(w >= 0) || row < 0 {
		return gridplot.Invalidf("component: invalid weight %v for row %d", w, row)
	}
	t.rowWeights[row] = w
	t.Redraw()
	return nil
}

// SetColumnWeight sets the share of free width col receives.
func (t *Table) SetColumnWeight(col int, w float64) error {
	if !(w >= 0) || col < 0 {
		return gridplot.Invalidf("component: invalid weight %v for column %d", w, col)
	}
	t.columnWeights[col] = w
	t.Redraw()
	return nil
}

// Anchor implements Component.
func (t *Table) Anchor(r *Root, parent *surface.Node) {
	t.Base.Anchor(r, parent)
	for _, c := range t.Components() {
		c.Anchor(r, t.node)
	}
}

// Destroy implements Component.
func (t *Table) Destroy() {
	for _, c := range t.Components() {
		c.Destroy()
	}
	t.Base.Destroy()
}

// FixedWidth implements Component: every column is empty or fixed and
// has no positive weight.
func (t *Table) FixedWidth() bool {
	for col := 0; col < t.NumColumns(); col++ {
		if t.columnWeights[col] > 0 || !t.columnFixed(col) {
			return false
		}
	}
	return true
}

// FixedHeight implements Component: every row is empty or fixed and has
// no positive weight.
func (t *Table) FixedHeight() bool {
	for row := 0; row < t.NumRows(); row++ {
		if t.rowWeights[row] > 0 || !t.rowFixed(row) {
			return false
		}
	}
	return true
}

func (t *Table) columnFixed(col int) bool {
	for _, row := range t.rows {
		if c := row[col]; c != nil && !c.FixedWidth() {
			return false
		}
	}
	return true
}

func (t *Table) rowFixed(row int) bool {
	for _, c := range t.rows[row] {
		if c != nil && !c.FixedHeight() {
			return false
		}
	}
	return true
}

// RequestedSpace implements Component.
func (t *Table) RequestedSpace(w, h float64) gridplot.SpaceRequest {
	t.layout = t.iterateLayout(w, h, false)
	return gridplot.SpaceRequest{
		MinWidth:  gridplot.Sum(t.layout.guaranteedWidths),
		MinHeight: gridplot.Sum(t.layout.guaranteedHeights),
	}
}

// ComputeLayout implements Component.
func (t *Table) ComputeLayout(origin gridplot.Point, w, h float64) {
	Place(t, origin, w, h)
	layout := t.layout
	if gridplot.Sum(layout.guaranteedWidths) > t.width || gridplot.Sum(layout.guaranteedHeights) > t.height {
		layout = t.iterateLayout(t.width, t.height, true)
	}
	widths := gridplot.AddArrays(layout.proportionalWidths, layout.guaranteedWidths)
	heights := gridplot.AddArrays(layout.proportionalHeights, layout.guaranteedHeights)
	y := 0.0
	for r, row := range t.rows {
		x := 0.0
		for c, comp := range row {
			if comp != nil {
				comp.ComputeLayout(gridplot.Point{X: x, Y: y}, widths[c], heights[r])
			}
			x += widths[c] + t.columnPadding
		}
		y += heights[r] + t.rowPadding
	}
}

// iterateLayout negotiates the space w x h. Starting from a heuristic
// proportional split it asks every cell for its minimum size, guarantees
// the largest request per row and column and redistributes the rest,
// favouring rows and columns which wanted more than they were offered.
func (t *Table) iterateLayout(w, h float64, isFinalOffer bool) tableLayout {
	nRows, nCols := t.NumRows(), t.NumColumns()
	availWidth := w - t.columnPadding*float64(max(nCols-1, 0))
	availHeight := h - t.rowPadding*float64(max(nRows-1, 0))

	colWeights := t.weights(nCols, t.columnWeights, t.columnFixed)
	rowWeights := t.weights(nRows, t.rowWeights, t.rowFixed)
	heuristic := func(ws []float64) []float64 {
		out := make([]float64, len(ws))
		for i, v := range ws {
			if v == 0 {
				v = 0.5
			}
			out[i] = v
		}
		return out
	}

	propWidths := proportionalSpace(heuristic(colWeights), availWidth)
	propHeights := proportionalSpace(heuristic(rowWeights), availHeight)
	guarWidths := make([]float64, nCols)
	guarHeights := make([]float64, nRows)
	freeWidth, freeHeight := availWidth, availHeight
	var g guarantees

	for iter := 1; ; iter++ {
		offeredWidths := gridplot.AddArrays(guarWidths, propWidths)
		offeredHeights := gridplot.AddArrays(guarHeights, propHeights)
		g = t.determineGuarantees(offeredWidths, offeredHeights, isFinalOffer)
		guarWidths, guarHeights = g.widths, g.heights

		lastFreeWidth, lastFreeHeight := freeWidth, freeHeight
		freeWidth = availWidth - gridplot.Sum(guarWidths)
		freeHeight = availHeight - gridplot.Sum(guarHeights)

		xWeights, yWeights := colWeights, rowWeights
		if slices.Contains(g.wantsWidth, true) {
			xWeights = gridplot.AddArrays(boost(g.wantsWidth), colWeights)
		}
		if slices.Contains(g.wantsHeight, true) {
			yWeights = gridplot.AddArrays(boost(g.wantsHeight), rowWeights)
		}
		propWidths = proportionalSpace(xWeights, freeWidth)
		propHeights = proportionalSpace(yWeights, freeHeight)

		canImproveWidth := freeWidth > 0 && freeWidth != lastFreeWidth
		canImproveHeight := freeHeight > 0 && freeHeight != lastFreeHeight
		if !(canImproveWidth || canImproveHeight) || iter > maxLayoutIterations {
			break
		}
	}

	// The final split uses the real weights.
	freeWidth = availWidth - gridplot.Sum(guarWidths)
	freeHeight = availHeight - gridplot.Sum(guarHeights)
	return tableLayout{
		guaranteedWidths:    guarWidths,
		guaranteedHeights:   guarHeights,
		proportionalWidths:  proportionalSpace(colWeights, freeWidth),
		proportionalHeights: proportionalSpace(rowWeights, freeHeight),
		wantsWidth:          slices.Contains(g.wantsWidth, true),
		wantsHeight:         slices.Contains(g.wantsHeight, true),
	}
}

type guarantees struct {
	widths, heights         []float64
	wantsWidth, wantsHeight []bool
}

func (t *Table) determineGuarantees(offeredWidths, offeredHeights []float64, isFinalOffer bool) guarantees {
	g := guarantees{
		widths:      make([]float64, len(offeredWidths)),
		heights:     make([]float64, len(offeredHeights)),
		wantsWidth:  make([]bool, len(offeredWidths)),
		wantsHeight: make([]bool, len(offeredHeights)),
	}
	for r, row := range t.rows {
		for c, comp := range row {
			var req gridplot.SpaceRequest
			if comp != nil {
				req = comp.RequestedSpace(offeredWidths[c], offeredHeights[r])
			}
			width, height := req.MinWidth, req.MinHeight
			if isFinalOffer {
				width = min(width, offeredWidths[c])
				height = min(height, offeredHeights[r])
			}
			g.widths[c] = max(g.widths[c], width)
			g.heights[r] = max(g.heights[r], height)
			g.wantsWidth[c] = g.wantsWidth[c] || req.MinWidth > offeredWidths[c]
			g.wantsHeight[r] = g.wantsHeight[r] || req.MinHeight > offeredHeights[r]
		}
	}
	return g
}

func (t *Table) weights(n int, explicit map[int]float64, fixed func(int) bool) []float64 {
	ws := make([]float64, n)
	for i := range ws {
		if w, ok := explicit[i]; ok {
			ws[i] = w
		} else if fixed(i) {
			ws[i] = 0
		} else {
			ws[i] = 1
		}
	}
	return ws
}

func boost(wants []bool) []float64 {
	out := make([]float64, len(wants))
	for i, w := range wants {
		if w {
			out[i] = 0.1
		}
	}
	return out
}

// proportionalSpace splits free proportional to weights.
func proportionalSpace(weights []float64, free float64) []float64 {
	sum := gridplot.Sum(weights)
	out := make([]float64, len(weights))
	if sum == 0 {
		return out
	}
	for i, w := range weights {
		out[i] = free * w / sum
	}
	return out
}
