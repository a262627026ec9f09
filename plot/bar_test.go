package plot

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/scale"
)

func cat(x string, y float64) map[string]any { return map[string]any{"x": x, "y": y} }

func entryOf(t *testing.T, entries []Entry, key string, index int) Entry {
	t.Helper()
	for _, e := range entries {
		if e.DatasetKey == key && e.Index == index {
			return e
		}
	}
	t.Fatalf("no entry %s/%d", key, index)
	return Entry{}
}

func TestParseBarAlignment(t *testing.T) {
	for _, s := range []string{"left", "Center", "RIGHT"} {
		a, err := ParseBarAlignment(s)
		require.NoError(t, err, s)
		assert.Equal(t, strings.ToLower(s), a.String())
	}
	_, err := ParseBarAlignment("middle")
	assert.ErrorIs(t, err, gridplot.ErrInvalidConfig)
}

func TestVerticalBarGeometry(t *testing.T) {
	x := scale.NewCategory()
	b := NewBar(x, fixed(t, 0, 10), true)
	b.AddDataset(gridplot.Records(cat("a", 8), cat("b", 5), cat("c", 2)))
	render(t, b, 300, 100)

	all := b.AllPlotData()
	require.Len(t, all, 3)
	e := entryOf(t, all, "_0", 1)
	assertPixel(t, gridplot.Point{X: x.Scale("b"), Y: 50}, e.Pixel)

	hit, ok := b.ClosestPlotData(gridplot.Point{X: x.Scale("b"), Y: 70})
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index, "inside bar b")

	hit, ok = b.ClosestPlotData(gridplot.Point{X: x.Scale("c") + 1, Y: 5})
	require.True(t, ok)
	assert.Equal(t, 2, hit.Index, "above bar c")
}

func TestBarBaseline(t *testing.T) {
	y := scale.NewLinear()
	b := NewBar(scale.NewCategory(), y, true)
	b.AddDataset(gridplot.Records(cat("a", 8), cat("b", 5)))
	render(t, b, 100, 100)

	lo, hi := y.Domain()
	assert.Equal(t, 0.0, lo, "baseline is included and not padded")
	assert.Greater(t, hi, 8.0)

	require.NoError(t, b.SetBaseline(20))
	_, hi = y.Domain()
	assert.Equal(t, 20.0, hi)
	assert.Equal(t, 20.0, b.Baseline())

	assert.ErrorIs(t, b.SetBaseline(math.NaN()), gridplot.ErrInvalidConfig)
}

func TestHorizontalBarPixelPoint(t *testing.T) {
	y := scale.NewCategory()
	b := NewBar(fixed(t, -10, 10), y, false)
	b.AddDataset(gridplot.Records(
		map[string]any{"x": 5.0, "y": "a"},
		map[string]any{"x": -5.0, "y": "b"},
	))
	render(t, b, 200, 100)

	all := b.AllPlotData()
	require.Len(t, all, 2)
	assertPixel(t, gridplot.Point{X: 150, Y: y.Scale("a")}, all[0].Pixel)
	assertPixel(t, gridplot.Point{X: 50, Y: y.Scale("b")}, all[1].Pixel)
}

func TestQuantitativeBarWidth(t *testing.T) {
	b := NewBar(fixed(t, 0, 10), fixed(t, 0, 10), true)
	b.AddDataset(gridplot.Records(xy(2, 1), xy(4, 1), xy(8, 1)))
	render(t, b, 100, 100)
	assert.InDelta(t, 0.95*20, b.barPixelWidth(), 1e-9)

	single := NewBar(fixed(t, 0, 10), fixed(t, 0, 10), true)
	single.AddDataset(gridplot.Records(xy(2, 1), xy(2, 3)))
	render(t, single, 100, 100)
	assert.InDelta(t, 40, single.barPixelWidth(), 1e-9)

	require.NoError(t, single.SetBarAlignment("left"))
	assert.Equal(t, AlignLeft, single.BarAlignment())
	assert.Error(t, single.SetBarAlignment("top"))
}

func TestClusteredBarPositions(t *testing.T) {
	x := scale.NewCategory()
	c := NewClusteredBar(x, fixed(t, 0, 10), true)
	require.NoError(t, c.AddDatasetKey("s1", gridplot.Records(cat("a", 3), cat("b", 4))))
	require.NoError(t, c.AddDatasetKey("s2", gridplot.Records(cat("a", 5), cat("b", 6))))
	render(t, c, 300, 100)

	p1, ok1 := c.PlotMetadata("s1")["position"].(float64)
	p2, ok2 := c.PlotMetadata("s2")["position"].(float64)
	require.True(t, ok1 && ok2)
	assert.Less(t, p1, p2)

	all := c.AllPlotData()
	a1, a2 := entryOf(t, all, "s1", 0), entryOf(t, all, "s2", 0)
	assert.Less(t, a1.Pixel.X, x.Scale("a"))
	assert.Greater(t, a2.Pixel.X, x.Scale("a"))
	band := x.RangeBand() / 2
	assert.LessOrEqual(t, x.Scale("a")-a1.Pixel.X, band)
	assert.LessOrEqual(t, a2.Pixel.X-x.Scale("a"), band)
}

func TestStackedBar(t *testing.T) {
	y := scale.NewLinear()
	s := NewStackedBar(scale.NewCategory(), y, true)
	require.NoError(t, s.AddDatasetKey("ds1", gridplot.Records(cat("a", 3), cat("b", -2))))
	require.NoError(t, s.AddDatasetKey("ds2", gridplot.Records(cat("a", 1), cat("b", 5))))
	render(t, s, 200, 100)

	assert.Equal(t, map[string]float64{"a": 0, "b": 0}, s.PlotMetadata("ds1")["offsets"])
	assert.Equal(t, map[string]float64{"a": 3, "b": 0}, s.PlotMetadata("ds2")["offsets"])
	assert.Equal(t, [2]float64{-2, 5}, s.Stacker().Extent())
	assert.Equal(t, []string{"a", "b"}, s.Stacker().Keys())

	lo, hi := y.Domain()
	assert.LessOrEqual(t, lo, -2.0)
	assert.GreaterOrEqual(t, hi, 5.0)

	// The value end of a is at 3+1.
	e := entryOf(t, s.AllPlotData(), "ds2", 0)
	assert.InDelta(t, y.Scale(4), e.Pixel.Y, 1e-9)
}

func TestStackerZeroTrack(t *testing.T) {
	s := NewStackedBar(scale.NewCategory(), scale.NewLinear(), true)
	require.NoError(t, s.AddDatasetKey("neg", gridplot.Records(cat("a", -4), cat("b", 0))))
	require.NoError(t, s.AddDatasetKey("pos", gridplot.Records(cat("a", 2), cat("b", 0))))
	require.NoError(t, s.AddDatasetKey("mixed", gridplot.Records(cat("a", -1), cat("b", 3))))

	stacked := s.PlotMetadata("neg")["stacked"].([]StackedDatum)
	assert.Equal(t, StackedDatum{Key: "b", Value: 0, Offset: 0}, stacked[1])

	mixed := s.PlotMetadata("mixed")["stacked"].([]StackedDatum)
	assert.Equal(t, StackedDatum{Key: "a", Value: -1, Offset: -4}, mixed[0])
	assert.Equal(t, StackedDatum{Key: "b", Value: 3, Offset: 0}, mixed[1])
	assert.Equal(t, [2]float64{-5, 3}, s.Stacker().Extent())
}

func TestStackedArea(t *testing.T) {
	y := scale.NewLinear()
	s := NewStackedArea(fixed(t, 0, 10), y)
	require.NoError(t, s.AddDatasetKey("low", gridplot.Records(xy(0, 1), xy(1, 2))))
	require.NoError(t, s.AddDatasetKey("high", gridplot.Records(xy(0, 3), xy(1, 4))))
	render(t, s, 100, 100)

	assert.Equal(t, map[string]float64{"0": 1, "1": 2}, s.PlotMetadata("high")["offsets"])
	lo, hi := y.Domain()
	assert.Equal(t, 0.0, lo)
	assert.GreaterOrEqual(t, hi, 6.0)

	e := entryOf(t, s.AllPlotData(), "high", 1)
	assert.InDelta(t, y.Scale(6), e.Pixel.Y, 1e-9)
}
