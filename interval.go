package gridplot

import "math"

// Interval represents a (potentially degenerate) real interval.
// Both edges of the interval may be NaN indicating this edge is not
// determined yet.
type Interval struct {
	Min, Max float64
}

// UnsetInterval returns the interval [NaN, NaN].
func UnsetInterval() Interval {
	return Interval{math.NaN(), math.NaN()}
}

// Update expands i to include x. NaN and infinite values are skipped.
func (i *Interval) Update(x ...float64) {
	for _, v := range x {
		if !IsValidNumber(v) {
			continue
		}
		if !(i.Min < v) {
			i.Min = v
		}
		if !(i.Max > v) {
			i.Max = v
		}
	}
}

// IsSet reports whether both edges of i are determined.
func (i Interval) IsSet() bool {
	return !math.IsNaN(i.Min) && !math.IsNaN(i.Max)
}

// Equal reports whether i and j have the same edges, treating NaN edges
// as equal.
func (i Interval) Equal(j Interval) bool {
	same := func(a, b float64) bool {
		if math.IsNaN(a) {
			return math.IsNaN(b)
		}
		return a == b
	}
	return same(i.Min, j.Min) && same(i.Max, j.Max)
}

// Contains reports whether x lies in the canonical form of i.
func (i Interval) Contains(x float64) bool {
	return InRange(x, i.Min, i.Max)
}
