package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/scale"
	"github.com/vdobler/gridplot/surface"
)

// box is a leaf with a constant space request.
type box struct {
	Base
	req      gridplot.SpaceRequest
	rendered int
	err      error
}

func newBox(name string, w, h float64, fixed bool) *box {
	b := &box{req: gridplot.SpaceRequest{MinWidth: w, MinHeight: h}}
	b.Init(b, name)
	b.SetFixedSize(fixed, fixed)
	return b
}

func (b *box) RequestedSpace(w, h float64) gridplot.SpaceRequest { return b.req }

func (b *box) RenderImmediately() error {
	b.rendered++
	return b.err
}

var testMeasurer = FixedMeasurer{CharWidth: 10, LineHeight: 20}

func newTestRoot(t *testing.T, w, h float64, opts ...Option) *Root {
	t.Helper()
	r, err := NewRoot(w, h, append([]Option{WithMeasurer(testMeasurer)}, opts...)...)
	require.NoError(t, err)
	return r
}

func bounds(c Component) gridplot.Bounds {
	return gridplot.Bounds{Origin: c.Origin(), Size: gridplot.Size{Width: c.Width(), Height: c.Height()}}
}

func rect(x, y, w, h float64) gridplot.Bounds {
	return gridplot.Bounds{Origin: gridplot.Point{X: x, Y: y}, Size: gridplot.Size{Width: w, Height: h}}
}

func TestTableFixedAndProportionalCells(t *testing.T) {
	a := newBox("A", 50, 50, true)
	b := newBox("B", 0, 0, false)
	c := newBox("C", 0, 0, false)
	table := NewTable([][]Component{{a, b}, {nil, c}})

	root := newTestRoot(t, 200, 200)
	root.RenderTo(table)

	assert.Equal(t, rect(0, 0, 200, 200), bounds(table))
	assert.Equal(t, rect(0, 0, 50, 50), bounds(a))
	assert.Equal(t, rect(50, 0, 150, 125), bounds(b))
	assert.Equal(t, rect(50, 125, 150, 75), bounds(c))
}

func TestTablePaddingAndWeights(t *testing.T) {
	a := newBox("A", 0, 0, false)
	b := newBox("B", 0, 0, false)
	table := NewTable([][]Component{{a, b}})
	require.NoError(t, table.SetColumnPadding(10))
	require.NoError(t, table.SetColumnWeight(1, 3))

	root := newTestRoot(t, 210, 100)
	root.RenderTo(table)
	assert.Equal(t, rect(0, 0, 50, 100), bounds(a))
	assert.Equal(t, rect(60, 0, 150, 100), bounds(b))

	assert.Error(t, table.SetColumnPadding(-1))
	assert.Error(t, table.SetRowWeight(0, -2))
}

// eagerBox requests a new layout as soon as it is anchored, like an axis
// whose scale changes when a plot in the same tree anchors.
type eagerBox struct {
	box
}

func newEagerBox(name string) *eagerBox {
	e := &eagerBox{box: box{req: gridplot.SpaceRequest{MinWidth: 20, MinHeight: 20}}}
	e.Init(e, name)
	return e
}

func (e *eagerBox) Anchor(r *Root, parent *surface.Node) {
	e.box.Anchor(r, parent)
	e.Redraw()
}

func TestAnchoringDefersLayout(t *testing.T) {
	eager := newEagerBox("eager")
	label := NewLabel("later")
	last := newBox("last", 10, 10, true)
	table := NewTable([][]Component{{eager, label}, {nil, last}})

	root := newTestRoot(t, 200, 100)
	require.NotPanics(t, func() { root.RenderTo(table) })
	assert.False(t, root.Controller().Pending())
	assert.Greater(t, label.Width(), 0.0)
	assert.Equal(t, 1, last.rendered)

	// Adding to an anchored container holds the flush as well.
	more := newEagerBox("more")
	require.NotPanics(t, func() { require.NoError(t, table.Add(NewGroup(more, NewLabel("x")), 2, 0)) })
	assert.True(t, more.IsAnchored())
	assert.Greater(t, more.Height(), 0.0)
}

func TestTableWeightedFixedColumn(t *testing.T) {
	a := newBox("A", 50, 50, true)
	b := newBox("B", 50, 50, true)
	table := NewTable([][]Component{{a, b}})
	assert.True(t, table.FixedWidth())
	require.NoError(t, table.SetColumnWeight(0, 1))
	assert.False(t, table.FixedWidth(), "a weighted column takes free space")
	assert.True(t, table.FixedHeight())

	root := newTestRoot(t, 300, 300)
	root.RenderTo(table)
	assert.Equal(t, rect(0, 0, 300, 50), bounds(table))
	assert.Equal(t, rect(0, 0, 50, 50), bounds(a), "fixed cell keeps its size")
	assert.Equal(t, rect(250, 0, 50, 50), bounds(b))
	assert.LessOrEqual(t, b.Origin().X+b.Width(), table.Width())
}

func TestTableOverconstrained(t *testing.T) {
	a := newBox("A", 80, 30, true)
	b := newBox("B", 80, 30, true)
	table := NewTable([][]Component{{a, b}})

	root := newTestRoot(t, 100, 100)
	root.RenderTo(table)

	assert.InDelta(t, 100, a.Width()+b.Width(), 1e-9)
	assert.LessOrEqual(t, a.Origin().X+a.Width(), b.Origin().X+1e-9)
}

func TestTableAddRemove(t *testing.T) {
	table := NewTable(nil)
	a, b := newBox("A", 1, 1, true), newBox("B", 1, 1, true)

	require.NoError(t, table.Add(a, 1, 2))
	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, 3, table.NumColumns())
	assert.Same(t, a, table.At(1, 2).(*box))

	err := table.Add(b, 1, 2)
	assert.ErrorIs(t, err, ErrOccupied)

	table.Remove(b) // not a child
	table.Remove(a)
	assert.Nil(t, table.At(1, 2))
	assert.Nil(t, a.Parent())
	assert.Error(t, table.Add(b, -1, 0))
}

func TestFixedSize(t *testing.T) {
	fixed := NewTable([][]Component{{newBox("a", 10, 10, true), nil}, {nil, newBox("b", 5, 5, true)}})
	assert.True(t, fixed.FixedWidth())
	assert.True(t, fixed.FixedHeight())

	loose := NewTable([][]Component{{newBox("a", 10, 10, true), newBox("b", 0, 0, false)}})
	assert.False(t, loose.FixedWidth())
	assert.False(t, loose.FixedHeight())

	// The request of a fixed table does not depend on the offer.
	assert.Equal(t, fixed.RequestedSpace(10, 10), fixed.RequestedSpace(500, 700))
	labelled := NewTable([][]Component{{NewLabel("abc"), nil}, {nil, newBox("b", 5, 5, true)}})
	withRoot(t, labelled)
	assert.True(t, labelled.FixedWidth())
	small := labelled.RequestedSpace(10, 10)
	assert.Greater(t, small.MinWidth, 30.0)
	assert.Equal(t, small, labelled.RequestedSpace(500, 700))

	assert.True(t, NewGroup().FixedWidth(), "empty group")
	assert.False(t, NewGroup(newBox("a", 1, 1, true), newBox("b", 1, 1, false)).FixedWidth())

	// A fixed component never exceeds its request nor the offer.
	root := newTestRoot(t, 300, 300)
	for _, offer := range []float64{20, 100} {
		c := newBox("c", 50, 40, true)
		root.RenderTo(c)
		c.ComputeLayout(gridplot.Point{}, offer, offer)
		assert.Equal(t, min(offer, 50), c.Width())
		assert.Equal(t, min(offer, 40), c.Height())
	}
}

func TestPlaceAlignmentAndOffset(t *testing.T) {
	root := newTestRoot(t, 200, 100)
	c := newBox("c", 50, 20, true)
	require.NoError(t, c.SetXAlignment("center"))
	require.NoError(t, c.SetYAlignment("bottom"))
	c.SetOffset(1, -2)
	root.RenderTo(c)
	assert.Equal(t, rect(76, 78, 50, 20), bounds(c))

	assert.Error(t, c.SetXAlignment("middle"))
	assert.Error(t, c.SetYAlignment("left"))
}

func TestPlaceBeforeAnchorPanics(t *testing.T) {
	c := newBox("c", 1, 1, false)
	assert.Panics(t, func() { c.ComputeLayout(gridplot.Point{}, 10, 10) })
}

func TestMerge(t *testing.T) {
	a, b := newBox("a", 0, 0, false), newBox("b", 0, 0, false)
	g := a.Above(b).(*Group)
	assert.Equal(t, []Component{b, a}, g.Components())

	c, d := newBox("c", 0, 0, false), newBox("d", 0, 0, false)
	g = c.Below(d).(*Group)
	assert.Equal(t, []Component{c, d}, g.Components())

	// Component with group.
	e := newBox("e", 0, 0, false)
	assert.Same(t, g, e.Above(g))
	assert.Equal(t, []Component{c, d, e}, g.Components())
	f := newBox("f", 0, 0, false)
	assert.Same(t, g, f.Below(g))
	assert.Equal(t, []Component{f, c, d, e}, g.Components())

	// Group with component.
	h := newBox("h", 0, 0, false)
	assert.Same(t, g, g.Above(h))
	assert.Equal(t, h, g.Components()[0])
	i := newBox("i", 0, 0, false)
	assert.Same(t, g, g.Below(i))
	assert.Equal(t, i, g.Components()[len(g.Components())-1])

	// Group with group.
	g2 := NewGroup()
	m := g.Above(g2).(*Group)
	assert.Equal(t, []Component{g2, g}, m.Components())
	n := g2.Below(NewGroup())
	assert.Len(t, n.(*Group).Components(), 2)
}

func TestReparentAndCycles(t *testing.T) {
	a := newBox("a", 0, 0, false)
	g1 := NewGroup(a)
	g2 := NewGroup()
	g2.Append(a)
	assert.False(t, g1.Has(a))
	assert.True(t, g2.Has(a))
	assert.Equal(t, Container(g2), a.Parent())

	outer := NewGroup(g2)
	assert.Panics(t, func() { g2.Append(outer) })
	assert.Panics(t, func() { g2.Append(g2) })
}

func TestGroupLayout(t *testing.T) {
	a := newBox("a", 30, 40, true)
	b := newBox("b", 60, 10, false)
	g := NewGroup(a, b)
	assert.Equal(t, gridplot.SpaceRequest{MinWidth: 60, MinHeight: 40}, g.RequestedSpace(100, 100))

	root := newTestRoot(t, 100, 80)
	root.RenderTo(g)
	assert.Equal(t, rect(0, 0, 100, 80), bounds(g))
	assert.Equal(t, rect(0, 0, 30, 40), bounds(a))
	assert.Equal(t, rect(0, 0, 100, 80), bounds(b))

	// Surface nodes follow the z-order.
	g.Prepend(b)
	names := []string{}
	for _, n := range g.Node().Children() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"b", "a"}, names)
}

func TestOriginToRootAndLocal(t *testing.T) {
	inner := newBox("inner", 0, 0, false)
	table := NewTable([][]Component{{newBox("x", 40, 0, true), NewGroup(inner)}})
	root := newTestRoot(t, 100, 50)
	root.RenderTo(table)
	assert.Equal(t, gridplot.Point{X: 40, Y: 0}, inner.OriginToRoot())
	assert.Equal(t, gridplot.Point{X: 5, Y: 7}, ToLocal(inner, gridplot.Point{X: 45, Y: 7}))
	assert.Equal(t, gridplot.Point{X: 40, Y: 0}, inner.Node().AbsoluteOrigin())
}

func TestLabel(t *testing.T) {
	l := NewLabel("abc")
	require.NoError(t, l.SetPadding(5))
	assert.Equal(t, gridplot.SpaceRequest{MinWidth: 40, MinHeight: 30}, withRoot(t, l).RequestedSpace(100, 100))

	require.NoError(t, l.SetOrientation(Left))
	assert.Equal(t, gridplot.SpaceRequest{MinWidth: 30, MinHeight: 40}, l.RequestedSpace(100, 100))

	assert.Error(t, l.SetPadding(-1))
	assert.Error(t, l.SetOrientation(Orientation(7)))
	assert.Equal(t, 5.0, l.Padding())

	o, err := ParseOrientation("Right")
	require.NoError(t, err)
	assert.Equal(t, Right, o)
	_, err = ParseOrientation("diagonal")
	assert.Error(t, err)

	ops := l.Node().Ops()
	require.Len(t, ops, 1)
	text := ops[0].(surface.Text)
	assert.Equal(t, "abc", text.Text)
	assert.Equal(t, gridplot.Point{X: 15, Y: 20}, text.At)
}

// withRoot renders c as top component of a 200x200 test root.
func withRoot(t *testing.T, c Component) Component {
	root := newTestRoot(t, 200, 200)
	root.RenderTo(c)
	return c
}

func TestAxis(t *testing.T) {
	x := scale.NewLinear()
	require.NoError(t, x.SetDomain(0, 10))
	require.NoError(t, x.SetNumTicks(6))
	bottom := NewNumericAxis(x, AxisBottom)
	assert.True(t, bottom.FixedHeight())
	assert.False(t, bottom.FixedWidth())

	root := newTestRoot(t, 300, 200)
	root.RenderTo(bottom)
	// 5 tick + 10 padding + 20 label + 15 gutter
	assert.Equal(t, 50.0, bottom.Height())
	assert.Equal(t, 300.0, bottom.Width())
	lo, hi := x.Range()
	assert.Equal(t, [2]float64{0, 300}, [2]float64{lo, hi})
	labels := bottom.TickLabels()
	assert.NotEmpty(t, labels)
	assert.NotContains(t, labels, "0", "end labels stick out")
	assert.NotContains(t, labels, "10")

	require.NoError(t, bottom.SetGutter(0))
	bottom.SetShowEndTickLabels(true)
	assert.Equal(t, 35.0, bottom.Height())
	labels = bottom.TickLabels()
	assert.Equal(t, "0", labels[0])
	assert.Equal(t, "10", labels[len(labels)-1])

	y := scale.NewLinear()
	require.NoError(t, y.SetDomain(0, 100))
	left := NewNumericAxis(y, AxisLeft)
	withRoot(t, left)
	assert.Equal(t, gridplot.SpaceRequest{MinWidth: 5 + 10 + 30 + 15}, left.RequestedSpace(100, 100))

	assert.Error(t, left.SetTickLength(-1))
	assert.Error(t, left.SetEndTickLength(-1))
	assert.Error(t, left.SetTickLabelPadding(-1))
	assert.Error(t, left.SetGutter(-1))
	_, err := ParseSide("middle")
	assert.Error(t, err)
}

func TestCategoryAxis(t *testing.T) {
	c := scale.NewCategory()
	c.SetDomain("apple", "kiwi")
	a := NewCategoryAxis(c, AxisLeft)
	root := newTestRoot(t, 200, 100)
	root.RenderTo(a)
	// 5 tick + 5 padding + 50 label + 15 gutter
	assert.Equal(t, 75.0, a.Width())
	lo, hi := c.Range()
	assert.Equal(t, [2]float64{100, 0}, [2]float64{lo, hi})
	assert.Equal(t, []string{"apple", "kiwi"}, a.TickLabels())
}

func TestLegend(t *testing.T) {
	colors, err := scale.NewColor("")
	require.NoError(t, err)
	colors.SetDomain("a", "bb", "ccc")
	l := NewLegend(colors)
	root := newTestRoot(t, 200, 200)
	root.RenderTo(l)

	// Rows of 20px, entries: symbol 20 + pad 5 + text.
	assert.Equal(t, gridplot.SpaceRequest{MinWidth: 20 + 5 + 30 + 10, MinHeight: 3*20 + 10}, l.RequestedSpace(200, 200))
	require.NoError(t, l.SetMaxEntriesPerRow(3))
	assert.Equal(t, 20.0+10, l.Height())

	v, ok := l.EntryAt(gridplot.Point{X: 60, Y: 10})
	assert.True(t, ok)
	assert.Equal(t, "bb", v)

	assert.Error(t, l.SetMaxEntriesPerRow(0))

	colors.SetDomain("a")
	assert.Equal(t, 20.0+5+10+10, l.Width(), "legend re-lays out on scale update")
}

func TestMouse(t *testing.T) {
	root := newTestRoot(t, 10, 10)
	var got []gridplot.Point
	sub := root.Mouse().OnMove(func(e MouseEvent) { got = append(got, e.Point) })
	downs := 0
	root.Mouse().OnDown(func(e MouseEvent) { downs += e.Button })

	root.Mouse().DispatchMove(gridplot.Point{X: 1, Y: 2})
	root.Mouse().DispatchDown(gridplot.Point{}, 3)
	root.Mouse().OffMove(sub)
	root.Mouse().OffMove(sub)
	root.Mouse().DispatchMove(gridplot.Point{X: 5, Y: 5})
	assert.Equal(t, []gridplot.Point{{X: 1, Y: 2}}, got)
	assert.Equal(t, 3, downs)

	root.Destroy()
	root.Mouse().DispatchDown(gridplot.Point{}, 1)
	assert.Equal(t, 3, downs)
}
