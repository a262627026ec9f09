package scale

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotutil"
)

func TestCategoryBands(t *testing.T) {
	c := NewCategory()
	c.SetDomain("a", "b", "a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, c.Domain())

	require.NoError(t, c.SetInnerPadding(0))
	require.NoError(t, c.SetOuterPadding(0))
	c.SetRange(0, 300)
	assert.Equal(t, 100.0, c.RangeBand())
	assert.Equal(t, 50.0, c.Scale("a"))
	assert.Equal(t, 150.0, c.Scale("b"))
	assert.Equal(t, 250.0, c.Scale("c"))
	assert.True(t, math.IsNaN(c.Scale("z")))
}

func TestCategoryPadding(t *testing.T) {
	c := NewCategory()
	c.SetDomain("a", "b")
	require.NoError(t, c.SetInnerPadding(1))
	require.NoError(t, c.SetOuterPadding(1))
	c.SetRange(0, 500)

	// In units of step (band+gap): inner=0.5, outer=0.5,
	// so step = 500/(2-0.5+1) = 200.
	assert.InDelta(t, 100, c.RangeBand(), 1e-9)
	assert.InDelta(t, 200, c.StepWidth(), 1e-9)
	assert.InDelta(t, 150, c.Scale("a"), 1e-9)
	assert.InDelta(t, 350, c.Scale("b"), 1e-9)

	assert.Error(t, c.SetInnerPadding(-1))
	assert.Error(t, c.SetOuterPadding(math.NaN()))
}

func TestCategoryAutoDomainFirstSeenOrder(t *testing.T) {
	c := NewCategory()
	c.AddExtentProvider(func(s Scale) [][]any {
		return [][]any{
			s.ExtentOf([]any{"x", "y", "x", nil}),
			s.ExtentOf([]any{"z", "y"}),
		}
	})
	n := 0
	c.OnUpdate(func(Scale) { n++ })
	c.AutoDomain()
	assert.Equal(t, []string{"x", "y", "z"}, c.Domain())
	c.AutoDomain()
	assert.Equal(t, 1, n, "unchanged domain must not notify")
}

func TestCategoryReversedRange(t *testing.T) {
	c := NewCategory()
	c.SetDomain("a", "b")
	c.SetRange(200, 0)
	assert.Greater(t, c.Scale("a"), c.Scale("b"))
	assert.Greater(t, c.RangeBand(), 0.0)
}

func TestColorScale(t *testing.T) {
	c, err := NewColor("")
	require.NoError(t, err)
	c.SetDomain("one", "two")
	assert.Equal(t, plotutil.Color(0), c.Scale("one"))
	assert.Equal(t, plotutil.Color(1), c.Scale("two"))
	assert.Equal(t, plotutil.Color(2), c.Apply("three"))
	assert.Equal(t, []string{"one", "two", "three"}, c.Domain())

	_, err = NewColor("neon")
	assert.Error(t, err)
	_, err = NewColorPalette(nil)
	assert.Error(t, err)
}

func TestInterpolatedColor(t *testing.T) {
	ic, err := NewInterpolatedColorRange([]color.Color{color.Black, color.White}, "linear")
	require.NoError(t, err)
	require.NoError(t, ic.SetDomain(0, 10))

	r, g, b, a := ic.Scale(5).RGBA()
	assert.InDelta(t, 0x7fff, r, 2)
	assert.Equal(t, r, g)
	assert.Equal(t, r, b)
	assert.Equal(t, uint32(0xffff), a)

	r, _, _, _ = ic.Scale(100).RGBA()
	assert.Equal(t, uint32(0xffff), r, "out of domain values are clamped")

	_, err = NewInterpolatedColor("blueRed", "cubic")
	assert.Error(t, err)
	_, err = NewInterpolatedColor("rainbow", "linear")
	assert.Error(t, err)

	ic, err = NewInterpolatedColor("kindlmann", "log")
	require.NoError(t, err)
	ic.AddExtentProvider(func(s Scale) [][]any { return [][]any{s.ExtentOf([]any{-1, 1, 1000})} })
	ic.AutoDomain()
	lo, hi := ic.Domain()
	assert.Equal(t, [2]float64{1, 1000}, [2]float64{lo, hi})
}
