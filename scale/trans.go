// Scale Transformations
//
// A quantitative scale is linear in the visual space of its
// transformation. Padding and nice rounding happen in that space too.
package scale

import (
	"math"

	"github.com/vdobler/gridplot"
	"gonum.org/v1/plot"
)

// A Transformation bundles the function Trans mapping a domain value into
// the visual space and its Inverse together with an appropriate Ticker.
type Transformation struct {
	Name    string
	Trans   func(x float64) float64
	Inverse func(y float64) float64
	Ticker  plot.Ticker

	// Valid reports whether x can be transformed. Nil means every
	// finite number is valid.
	Valid func(x float64) bool

	nice   func(lo, hi float64, count int) (float64, float64)
	expand func(x float64) (float64, float64)
}

// Map maps x from the interval from onto to, linearly in visual space.
func (t Transformation) Map(from, to gridplot.Interval, x float64) float64 {
	a, b := t.Trans(from.Min), t.Trans(from.Max)
	if a == b {
		return (to.Min + to.Max) / 2
	}
	return to.Min + (to.Max-to.Min)*(t.Trans(x)-a)/(b-a)
}

// Unmap is the inverse of Map.
func (t Transformation) Unmap(from, to gridplot.Interval, y float64) float64 {
	a, b := t.Trans(from.Min), t.Trans(from.Max)
	if to.Min == to.Max {
		return from.Min
	}
	return t.Inverse(a + (b-a)*(y-to.Min)/(to.Max-to.Min))
}

func (t Transformation) valid(x float64) bool {
	if !gridplot.IsValidNumber(x) {
		return false
	}
	return t.Valid == nil || t.Valid(x)
}

// LinearTrans does not transform at all.
var LinearTrans = Transformation{
	Name:    "Linear",
	Trans:   func(x float64) float64 { return x },
	Inverse: func(y float64) float64 { return y },
	Ticker:  LinearTicks{Count: 10},
	nice:    niceLinear,
	expand:  func(x float64) (float64, float64) { return x - 1, x + 1 },
}

// SqrtTrans takes the square root of the magnitude and keeps the sign.
var SqrtTrans = PowTrans(0.5)

// PowTrans raises the magnitude to exp and keeps the sign.
func PowTrans(exp float64) Transformation {
	return Transformation{
		Name: "Pow",
		Trans: func(x float64) float64 {
			return math.Copysign(math.Pow(math.Abs(x), exp), x)
		},
		Inverse: func(y float64) float64 {
			return math.Copysign(math.Pow(math.Abs(y), 1/exp), y)
		},
		Ticker: LinearTicks{Count: 10},
		nice:   niceLinear,
		expand: func(x float64) (float64, float64) { return x - 1, x + 1 },
	}
}

// LogTrans is the logarithm to the given base. Only positive values are
// valid.
func LogTrans(base float64) Transformation {
	lb := math.Log(base)
	return Transformation{
		Name:    "Log",
		Trans:   func(x float64) float64 { return math.Log(x) / lb },
		Inverse: func(y float64) float64 { return math.Pow(base, y) },
		Ticker:  plot.LogTicks{},
		Valid:   func(x float64) bool { return x > 0 },
		nice: func(lo, hi float64, _ int) (float64, float64) {
			round := func(x float64, f func(float64) float64) float64 {
				return math.Pow(base, f(math.Log(x)/lb))
			}
			if lo > hi {
				return round(lo, math.Ceil), round(hi, math.Floor)
			}
			return round(lo, math.Floor), round(hi, math.Ceil)
		},
		expand: func(x float64) (float64, float64) { return x / base, x * base },
	}
}

// Log10Trans is LogTrans(10).
var Log10Trans = LogTrans(10)

// ModifiedLogTrans behaves like the logarithm to base for |x| >= base and
// becomes linear towards 0. It is point symmetric, so negative values
// are valid.
func ModifiedLogTrans(base float64) Transformation {
	pivot := base
	lb := math.Log(base)
	adjusted := func(x float64) float64 {
		neg := x < 0
		x = math.Abs(x)
		if x < pivot {
			x += (pivot - x) / pivot
		}
		x = math.Log(x) / lb
		if neg {
			return -x
		}
		return x
	}
	inverse := func(y float64) float64 {
		neg := y < 0
		y = math.Pow(base, math.Abs(y))
		if y < pivot {
			y = pivot * (y - 1) / (pivot - 1)
		}
		if neg {
			return -y
		}
		return y
	}
	return Transformation{
		Name:    "ModifiedLog",
		Trans:   adjusted,
		Inverse: inverse,
		Ticker:  &ModifiedLogTicks{Base: base, Count: 10},
		nice:    func(lo, hi float64, _ int) (float64, float64) { return lo, hi },
		expand:  func(x float64) (float64, float64) { return x - 1, x + 1 },
	}
}

// TimeTrans works on seconds since the Unix epoch.
var TimeTrans = Transformation{
	Name:    "Time",
	Trans:   func(x float64) float64 { return x },
	Inverse: func(y float64) float64 { return y },
	Ticker: plot.TimeTicks{
		Ticker: TimeUnitTicks{Count: 6},
		Format: "2006-01-02",
	},
	nice:   niceTime,
	expand: func(x float64) (float64, float64) { return x - secondsPerDay, x + secondsPerDay },
}
