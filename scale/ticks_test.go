package scale

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

var niceLinearTests = []struct {
	lo, hi float64
	count  int
	wantLo float64
	wantHi float64
}{
	{0, 10, 10, 0, 10},
	{-0.5, 10.5, 10, -1, 11},
	{1.8, 10.2, 10, 1, 11},
	{0.3, 9.7, 10, 0, 10},
	{10, 0, 10, 10, 0},
	{0.013, 0.087, 5, 0, 0.1},
	{-37, 412, 5, -100, 500},
	{3, 3, 10, 3, 3},
}

func TestNiceLinear(t *testing.T) {
	for i, tc := range niceLinearTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			lo, hi := niceLinear(tc.lo, tc.hi, tc.count)
			if !equal64(lo, tc.wantLo) || !equal64(hi, tc.wantHi) {
				t.Errorf("niceLinear(%v, %v, %d) = [%v, %v], want [%v, %v]",
					tc.lo, tc.hi, tc.count, lo, hi, tc.wantLo, tc.wantHi)
			}
		})
	}
}

var linearTickTests = []struct {
	min, max float64
	n        int
	want     []float64
}{
	{0, 10, 10, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	{0, 10, 6, []float64{0, 2, 4, 6, 8, 10}},
	{0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
	{-1, 1, 4, []float64{-1, 0, 1}},
	{-5, 15, 10, []float64{-4, -2, 0, 2, 4, 6, 8, 10, 12, 14}},
}

func TestLinearTickValues(t *testing.T) {
	for i, tc := range linearTickTests {
		major, minor := linearTickValues(tc.min, tc.max, tc.n)
		assert.InDeltaSlice(t, tc.want, major, 1e-9, "%d: major ticks", i)
		assert.Greater(t, len(minor), len(major), "%d: minor ticks", i)
		for _, v := range major {
			assert.False(t, math.Signbit(v) && v == 0, "%d: negative zero", i)
		}
	}
}

func TestNiceDomainTickCount(t *testing.T) {
	// A padded nice domain keeps about the requested number of ticks.
	for _, n := range []int{4, 5, 8, 10, 12} {
		lo, hi := niceLinear(-0.5, 10.5, n)
		major, _ := linearTickValues(lo, hi, n)
		assert.InDelta(t, n, len(major), float64(n)/2, "n=%d domain [%v, %v]", n, lo, hi)
		assert.LessOrEqual(t, hi-lo, 2*11.0, "n=%d over-expanded", n)
	}
}
