package gridplot

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// IsValidNumber reports whether x is neither NaN nor infinite.
func IsValidNumber(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ToFloat converts v to a float64. Numbers convert directly, time.Time
// converts to seconds since the Unix epoch, numeric strings are parsed.
// The boolean result is false if v has no numeric interpretation.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case time.Time:
		return float64(x.UnixNano()) / 1e9, true
	case time.Duration:
		return x.Seconds(), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	}
	return math.NaN(), false
}

// Float converts v like ToFloat but returns NaN if there is no numeric
// interpretation.
func Float(v any) float64 {
	f, _ := ToFloat(v)
	return f
}

// ToString returns the categorical form of v.
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// Uniq returns the distinct elements of s in order of first occurrence.
func Uniq[T comparable](s []T) []T {
	seen := make(map[T]bool, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// InRange reports whether x lies between a and b, in either order.
func InRange(x, a, b float64) bool {
	return math.Min(a, b) <= x && x <= math.Max(a, b)
}

// Clamp limits x to [min, max].
func Clamp(x, min, max float64) float64 {
	return math.Min(math.Max(x, min), max)
}

// AddArrays returns the element-wise sum of a and b which must have the
// same length.
func AddArrays(a, b []float64) []float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("gridplot: cannot add arrays of length %d and %d", len(a), len(b)))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// Sum returns the sum of xs.
func Sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}

// MaxOr returns the largest valid number in xs or def if there is none.
func MaxOr(xs []float64, def float64) float64 {
	m, found := math.Inf(-1), false
	for _, x := range xs {
		if IsValidNumber(x) && x > m {
			m, found = x, true
		}
	}
	if !found {
		return def
	}
	return m
}

// MinOr returns the smallest valid number in xs or def if there is none.
func MinOr(xs []float64, def float64) float64 {
	m, found := math.Inf(1), false
	for _, x := range xs {
		if IsValidNumber(x) && x < m {
			m, found = x, true
		}
	}
	if !found {
		return def
	}
	return m
}
