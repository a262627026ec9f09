package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainerPadding(t *testing.T) {
	q := NewLinear()
	d := NewDomainer()
	require.NoError(t, d.Pad(0.1))

	got := d.ComputeDomain([][2]float64{{0, 4}, {2, 10}}, q)
	assert.InDelta(t, -0.5, got[0], 1e-12)
	assert.InDelta(t, 10.5, got[1], 1e-12)

	d.AddPaddingExceptionKey("baseline", 0)
	got = d.ComputeDomain([][2]float64{{0, 10}}, q)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 10.5, got[1], 1e-12)

	d.RemovePaddingExceptionKey("baseline")
	got = d.ComputeDomain([][2]float64{{0, 10}}, q)
	assert.InDelta(t, -0.5, got[0], 1e-12)
}

func TestDomainerUnkeyedExceptionsAreCounted(t *testing.T) {
	q := NewLinear()
	d := NewDomainer()
	require.NoError(t, d.Pad(0.1))
	d.AddPaddingException(10)
	d.AddPaddingException(10)
	d.RemovePaddingException(10)

	got := d.ComputeDomain([][2]float64{{0, 10}}, q)
	assert.Equal(t, 10.0, got[1], "one registration is left")

	d.RemovePaddingException(10)
	got = d.ComputeDomain([][2]float64{{0, 10}}, q)
	assert.InDelta(t, 10.5, got[1], 1e-12)
}

func TestDomainerPadsInVisualSpace(t *testing.T) {
	q, err := NewLog(10)
	require.NoError(t, err)
	d := NewDomainer()
	require.NoError(t, d.Pad(0.5))

	// Visual span is 2 decades, a quarter of it is half a decade.
	got := d.ComputeDomain([][2]float64{{1, 100}}, q)
	assert.InDelta(t, 0.31623, got[0], 1e-4)
	assert.InDelta(t, 316.23, got[1], 1e-2)
}

func TestDomainerIncludedValues(t *testing.T) {
	q := NewLinear()
	d := NewDomainer()

	d.AddIncludedValueKey("zero", 0)
	d.AddIncludedValue(20)
	assert.Equal(t, [2]float64{0, 20}, d.ComputeDomain([][2]float64{{5, 10}}, q))

	d.RemoveIncludedValue(20)
	d.RemoveIncludedValueKey("zero")
	assert.Equal(t, [2]float64{5, 10}, d.ComputeDomain([][2]float64{{5, 10}}, q))

	d.AddIncludedValueKey("k", 1)
	d.AddIncludedValueKey("k", 7)
	assert.Equal(t, [2]float64{5, 10}, d.ComputeDomain([][2]float64{{5, 10}}, q),
		"re-adding a key replaces its value")
}

func TestDomainerIncludedValuesKeepInversion(t *testing.T) {
	q := NewLinear()
	d := NewDomainer()
	d.CombineExtents = func(extents [][2]float64) [2]float64 { return [2]float64{10, 0} }
	d.AddIncludedValue(20)
	assert.Equal(t, [2]float64{20, 0}, d.ComputeDomain(nil, q))
}

func TestDomainerSinglePoint(t *testing.T) {
	d := NewDomainer()
	assert.Equal(t, [2]float64{4, 6}, d.ComputeDomain([][2]float64{{5, 5}}, NewLinear()))

	lq, err := NewLog(10)
	require.NoError(t, err)
	got := d.ComputeDomain([][2]float64{{10, 10}}, lq)
	assert.InDelta(t, 1, got[0], 1e-12)
	assert.InDelta(t, 100, got[1], 1e-12)

	tq := NewTime()
	got = d.ComputeDomain([][2]float64{{0, 0}}, tq)
	assert.Equal(t, [2]float64{-secondsPerDay, secondsPerDay}, got)
}

func TestDomainerDefaultExtent(t *testing.T) {
	d := NewDomainer()
	assert.Equal(t, [2]float64{0, 1}, d.ComputeDomain(nil, NewLinear()))

	lq, err := NewLog(2)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{1, 2}, d.ComputeDomain(nil, lq))
}

func TestDomainerNice(t *testing.T) {
	q := NewLinear()
	d := NewDomainer()
	require.NoError(t, d.Nice(10))
	assert.Equal(t, [2]float64{0, 10}, d.ComputeDomain([][2]float64{{0.3, 9.7}}, q))

	d.NoNice()
	assert.Equal(t, [2]float64{0.3, 9.7}, d.ComputeDomain([][2]float64{{0.3, 9.7}}, q))
}

func TestDomainerValidation(t *testing.T) {
	d := NewDomainer()
	assert.Error(t, d.Pad(-0.1))
	assert.Error(t, d.Nice(0))
	assert.NoError(t, d.Pad(0))
	assert.Equal(t, 0.0, d.PadProportion())
}
