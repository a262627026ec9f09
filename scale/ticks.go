package scale

import (
	"math"
	"sort"
	"strconv"
	"time"

	mscale "github.com/aclements/go-moremath/scale"
	"github.com/vdobler/gridplot"
	"gonum.org/v1/plot"
)

// countTicker is a plot.Ticker which accepts a desired number of ticks.
type countTicker interface {
	plot.Ticker
	TicksN(min, max float64, n int) []plot.Tick
}

// LinearTicks produces at most Count major ticks at round values plus
// the minor ticks one level below.
type LinearTicks struct {
	Count int
}

// Ticks implements plot.Ticker.
func (t LinearTicks) Ticks(min, max float64) []plot.Tick {
	return t.TicksN(min, max, t.Count)
}

// TicksN returns about n major ticks.
func (LinearTicks) TicksN(min, max float64, n int) []plot.Tick {
	if n <= 0 {
		n = 10
	}
	major, minor := linearTickValues(min, max, n)
	ticks := make([]plot.Tick, 0, len(major)+len(minor))
	isMajor := make(map[float64]bool, len(major))
	for _, v := range major {
		isMajor[v] = true
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', 6, 64)})
	}
	for _, v := range minor {
		if !isMajor[v] {
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}
	return ticks
}

// decimalTicker is a moremath ticker stepping by 1, 2 and 5 times a power
// of ten: level 3k steps by 10^k, 3k+1 by 2*10^k and 3k+2 by 5*10^k.
type decimalTicker struct {
	min, max float64
}

const tickEpsilon = 1e-9

// decimalValue returns n steps of the given level.
func decimalValue(n float64, level int) float64 {
	k := level / 3
	if level%3 < 0 {
		k--
	}
	if n == 0 {
		return 0 // not -0
	}
	m := [...]float64{1, 2, 5}[level-3*k]
	if k < 0 {
		return n * m / math.Pow(10, float64(-k))
	}
	return n * m * math.Pow(10, float64(k))
}

// bounds returns the first and last multiple of the step inside the
// range.
func (t decimalTicker) bounds(level int) (first, last float64) {
	step := decimalValue(1, level)
	return math.Ceil(t.min/step - tickEpsilon), math.Floor(t.max/step + tickEpsilon)
}

func (t decimalTicker) CountTicks(level int) int {
	first, last := t.bounds(level)
	return max(int(last-first+1), 0)
}

func (t decimalTicker) TicksAtLevel(level int) interface{} {
	first, last := t.bounds(level)
	ticks := make([]float64, 0, max(int(last-first+1), 0))
	for n := first; n <= last; n++ {
		ticks = append(ticks, decimalValue(n, level))
	}
	return ticks
}

// level returns the level whose tick count is closest to n. Ties go to
// fewer ticks.
func (t decimalTicker) level(n int) (int, bool) {
	guess := 3 * int(math.Floor(math.Log10((t.max-t.min)/float64(n))))
	o := mscale.TickOptions{Max: n}
	l, ok := o.FindLevel(t, guess)
	if !ok {
		return 0, false
	}
	if more := t.CountTicks(l - 1); more-n < n-t.CountTicks(l) {
		l--
	}
	return l, true
}

func linearTickValues(min, max float64, n int) (major, minor []float64) {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return []float64{min}, []float64{min}
	}
	if !gridplot.IsValidNumber(min) || !gridplot.IsValidNumber(max) {
		return nil, nil
	}
	t := decimalTicker{min: min, max: max}
	l, ok := t.level(n)
	if !ok {
		return nil, nil
	}
	return t.TicksAtLevel(l).([]float64), t.TicksAtLevel(l - 1).([]float64)
}

// niceLinear extends [lo, hi] to multiples of the step giving about count
// ticks inside the original range.
func niceLinear(lo, hi float64, count int) (float64, float64) {
	inverted := lo > hi
	min, max := math.Min(lo, hi), math.Max(lo, hi)
	if min == max || !gridplot.IsValidNumber(min) || !gridplot.IsValidNumber(max) {
		return lo, hi
	}
	t := decimalTicker{min: min, max: max}
	l, ok := t.level(count)
	if !ok {
		return lo, hi
	}
	step := decimalValue(1, l)
	min = decimalValue(math.Floor(min/step+tickEpsilon), l)
	max = decimalValue(math.Ceil(max/step-tickEpsilon), l)
	if inverted {
		return max, min
	}
	return min, max
}

// ModifiedLogTicks generates ticks for a modified log scale: logarithmic
// ticks beyond ±Base and linear ticks in between.
type ModifiedLogTicks struct {
	Base  float64
	Count int

	// ShowIntermediate adds multiples between the powers of Base and
	// linear ticks between -Base and Base.
	ShowIntermediate bool
}

// Ticks implements plot.Ticker.
func (t *ModifiedLogTicks) Ticks(min, max float64) []plot.Tick {
	return t.TicksN(min, max, t.Count)
}

// TicksN returns about n ticks.
func (t *ModifiedLogTicks) TicksN(min, max float64, n int) []plot.Tick {
	vals := t.values(min, max, n)
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', 6, 64)}
	}
	return ticks
}

func (t *ModifiedLogTicks) values(min, max float64, n int) []float64 {
	if n <= 0 {
		n = 10
	}
	lo, hi := math.Min(min, max), math.Max(min, max)
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	pivot := t.Base
	trans := ModifiedLogTrans(t.Base).Trans
	middle := func(a, b, c float64) float64 {
		s := []float64{a, b, c}
		sort.Float64s(s)
		return s[1]
	}
	howMany := func(lower, upper float64) int {
		span := trans(hi) - trans(lo)
		if span == 0 {
			return 0
		}
		return int(math.Ceil((trans(upper) - trans(lower)) / span * float64(n)))
	}

	negLower, negUpper := lo, middle(lo, hi, -pivot)
	posLower, posUpper := middle(lo, hi, pivot), hi

	neg := t.logTicks(-negUpper, -negLower, howMany(-negUpper, -negLower))
	for i, j := 0, len(neg)-1; i < j; i, j = i+1, j-1 {
		neg[i], neg[j] = neg[j], neg[i]
	}
	for i := range neg {
		neg[i] = -neg[i]
	}
	pos := t.logTicks(posLower, posUpper, howMany(posLower, posUpper))

	var linear []float64
	if t.ShowIntermediate {
		linear, _ = linearTickValues(negUpper, posLower, max1(howMany(negUpper, posLower)))
	} else {
		for _, x := range []float64{-pivot, 0, pivot} {
			if lo <= x && x <= hi {
				linear = append(linear, x)
			}
		}
	}

	ticks := append(append(neg, linear...), pos...)
	if len(ticks) <= 1 {
		ticks, _ = linearTickValues(lo, hi, n)
	}
	return ticks
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (t *ModifiedLogTicks) logTicks(lower, upper float64, n int) []float64 {
	if n <= 0 || lower >= upper || lower <= 0 {
		return nil
	}
	lb := math.Log(t.Base)
	start := math.Floor(math.Log(lower) / lb)
	end := math.Ceil(math.Log(upper) / lb)
	step := math.Ceil((end - start) / float64(n))
	var bases []float64
	for b := end; b > start; b -= step {
		bases = append(bases, b)
	}
	nMultiples := 1
	if t.ShowIntermediate && len(bases) > 0 {
		nMultiples = max1(n / len(bases))
	}
	var multiples []float64
	for m := t.Base; m > 1; m -= (t.Base - 1) / float64(nMultiples) {
		multiples = append(multiples, math.Floor(m))
	}
	multiples = gridplot.Uniq(multiples)

	var out []float64
	for _, b := range bases {
		for _, m := range multiples {
			x := math.Pow(t.Base, b-1) * m
			if lower <= x && x <= upper {
				out = append(out, x)
			}
		}
	}
	sort.Float64s(out)
	return out
}

// ----------------------------------------------------------------------------
// Time ticks and nice rounding

const secondsPerDay = 24 * 60 * 60

// A timeUnit is either a fixed duration or a number of months.
type timeUnit struct {
	d      time.Duration
	months int
}

var timeUnits = []timeUnit{
	{d: time.Second}, {d: 5 * time.Second}, {d: 15 * time.Second}, {d: 30 * time.Second},
	{d: time.Minute}, {d: 5 * time.Minute}, {d: 15 * time.Minute}, {d: 30 * time.Minute},
	{d: time.Hour}, {d: 3 * time.Hour}, {d: 6 * time.Hour}, {d: 12 * time.Hour},
	{d: 24 * time.Hour}, {d: 2 * 24 * time.Hour}, {d: 7 * 24 * time.Hour},
	{months: 1}, {months: 3}, {months: 6},
	{months: 12}, {months: 24}, {months: 60}, {months: 120},
	{months: 240}, {months: 600}, {months: 1200},
}

func (u timeUnit) seconds() float64 {
	if u.months > 0 {
		return float64(u.months) * 30.44 * secondsPerDay
	}
	return u.d.Seconds()
}

func unixSeconds(t time.Time) float64 { return float64(t.UnixNano()) / 1e9 }

func fromSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

// floor rounds s down to a multiple of u.
func (u timeUnit) floor(s float64) float64 {
	if u.months == 0 {
		d := u.d.Seconds()
		return math.Floor(s/d) * d
	}
	t := fromSeconds(s)
	months := t.Year()*12 + int(t.Month()) - 1
	months -= ((months % u.months) + u.months) % u.months
	return unixSeconds(time.Date(months/12, time.Month(months%12+1), 1, 0, 0, 0, 0, time.UTC))
}

// next returns the multiple of u following the multiple s.
func (u timeUnit) next(s float64) float64 {
	if u.months == 0 {
		return s + u.d.Seconds()
	}
	return unixSeconds(fromSeconds(s).AddDate(0, u.months, 0))
}

func (u timeUnit) ceil(s float64) float64 {
	f := u.floor(s)
	if f == s {
		return f
	}
	return u.next(f)
}

func chooseTimeUnit(lo, hi float64, count int) timeUnit {
	if count <= 0 {
		count = 10
	}
	span := math.Abs(hi - lo)
	for _, u := range timeUnits {
		if span/u.seconds() <= float64(count) {
			return u
		}
	}
	return timeUnits[len(timeUnits)-1]
}

func niceTime(lo, hi float64, count int) (float64, float64) {
	inverted := lo > hi
	if inverted {
		lo, hi = hi, lo
	}
	u := chooseTimeUnit(lo, hi, count)
	lo, hi = u.floor(lo), u.ceil(hi)
	if inverted {
		return hi, lo
	}
	return lo, hi
}

// TimeUnitTicks places ticks on calendar units (seconds to centuries) of
// times given as seconds since the Unix epoch.
type TimeUnitTicks struct {
	Count int
}

// Ticks implements plot.Ticker. Labels are placeholders meant to be
// replaced by plot.TimeTicks.
func (t TimeUnitTicks) Ticks(min, max float64) []plot.Tick {
	return t.TicksN(min, max, t.Count)
}

// TicksN places ticks for about n units.
func (TimeUnitTicks) TicksN(min, max float64, n int) []plot.Tick {
	if min > max {
		min, max = max, min
	}
	u := chooseTimeUnit(min, max, n)
	var ticks []plot.Tick
	for s := u.ceil(min); s <= max; s = u.next(s) {
		ticks = append(ticks, plot.Tick{Value: s, Label: "t"})
	}
	return ticks
}
