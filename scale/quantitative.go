package scale

import (
	"math"
	"time"

	"github.com/vdobler/gridplot"
	"gonum.org/v1/plot"
)

// Quantitative maps numbers linearly in the visual space of its
// Transformation onto a pixel range.
type Quantitative struct {
	base

	trans         Transformation
	domain        [2]float64
	rng           [2]float64
	domainer      *Domainer
	userDomainer  bool
	clamp         bool
	numTicks      int
	ticker        plot.Ticker
	defaultExtent [2]float64
}

func newQuantitative(t Transformation, defaultExtent [2]float64) *Quantitative {
	q := &Quantitative{
		trans:         t,
		domain:        defaultExtent,
		rng:           [2]float64{0, 1},
		domainer:      NewDomainer(),
		numTicks:      10,
		ticker:        t.Ticker,
		defaultExtent: defaultExtent,
	}
	q.base.self = q
	q.base.automatic = true
	return q
}

// NewLinear returns a linear scale.
func NewLinear() *Quantitative {
	return newQuantitative(LinearTrans, [2]float64{0, 1})
}

// NewSqrt returns a square root scale.
func NewSqrt() *Quantitative {
	return newQuantitative(SqrtTrans, [2]float64{0, 1})
}

// NewPow returns a power scale with the given exponent.
func NewPow(exp float64) (*Quantitative, error) {
	if !(exp > 0) || math.IsInf(exp, 1) {
		return nil, gridplot.Invalidf("scale: exponent %v must be positive", exp)
	}
	return newQuantitative(PowTrans(exp), [2]float64{0, 1}), nil
}

// NewLog returns a logarithmic scale. The base must be > 1.
func NewLog(base float64) (*Quantitative, error) {
	if !(base > 1) || math.IsInf(base, 1) {
		return nil, gridplot.Invalidf("scale: log base %v must be > 1", base)
	}
	return newQuantitative(LogTrans(base), [2]float64{1, base}), nil
}

// NewModifiedLog returns a modified log scale which is logarithmic for
// |x| >= base and linear near zero. The base must be > 1.
func NewModifiedLog(base float64) (*Quantitative, error) {
	if !(base > 1) || math.IsInf(base, 1) {
		return nil, gridplot.Invalidf("scale: modified log base %v must be > 1", base)
	}
	return newQuantitative(ModifiedLogTrans(base), [2]float64{0, 1}), nil
}

// NewTime returns a time scale. Domain values are seconds since the Unix
// epoch; time.Time values are converted automatically.
func NewTime() *Quantitative {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC)
	return newQuantitative(TimeTrans, [2]float64{unixSeconds(start), unixSeconds(end)})
}

// Transformation returns the transformation of q.
func (q *Quantitative) Transformation() Transformation { return q.trans }

// Scale maps x from the domain to the range.
func (q *Quantitative) Scale(x float64) float64 {
	t0, t1 := q.trans.Trans(q.domain[0]), q.trans.Trans(q.domain[1])
	r0, r1 := q.rng[0], q.rng[1]
	if t0 == t1 {
		return (r0 + r1) / 2
	}
	u := (q.trans.Trans(x) - t0) / (t1 - t0)
	if q.clamp {
		u = gridplot.Clamp(u, 0, 1)
	}
	return r0 + u*(r1-r0)
}

// Invert maps a range value back to the domain.
func (q *Quantitative) Invert(y float64) float64 {
	t0, t1 := q.trans.Trans(q.domain[0]), q.trans.Trans(q.domain[1])
	r0, r1 := q.rng[0], q.rng[1]
	if r0 == r1 {
		return q.domain[0]
	}
	u := (y - r0) / (r1 - r0)
	if q.clamp {
		u = gridplot.Clamp(u, 0, 1)
	}
	return q.trans.Inverse(t0 + u*(t1-t0))
}

// Apply implements Scale. Values without numeric interpretation map to NaN.
func (q *Quantitative) Apply(v any) any {
	f, ok := gridplot.ToFloat(v)
	if !ok {
		return math.NaN()
	}
	return q.Scale(f)
}

// ExtentOf implements Scale: the [min,max] of all values which are valid
// for the transformation of q.
func (q *Quantitative) ExtentOf(values []any) []any {
	iv := gridplot.UnsetInterval()
	for _, v := range values {
		f, ok := gridplot.ToFloat(v)
		if !ok || !q.trans.valid(f) {
			continue
		}
		iv.Update(f)
	}
	if !iv.IsSet() {
		return nil
	}
	return []any{iv.Min, iv.Max}
}

// Domain returns the current domain.
func (q *Quantitative) Domain() (float64, float64) { return q.domain[0], q.domain[1] }

// SetDomain pins the domain to [a,b]. A decreasing domain inverts the
// scale. NaN or infinite values are rejected.
func (q *Quantitative) SetDomain(a, b float64) error {
	if !gridplot.IsValidNumber(a) || !gridplot.IsValidNumber(b) {
		gridplot.Logger().Warn("scale: ignoring domain with NaN or Inf", "min", a, "max", b)
		return gridplot.Invalidf("scale: domain [%v, %v] must be finite", a, b)
	}
	q.automatic = false
	q.setDomain(a, b)
	return nil
}

func (q *Quantitative) setDomain(a, b float64) {
	if !gridplot.IsValidNumber(a) || !gridplot.IsValidNumber(b) {
		gridplot.Logger().Warn("scale: ignoring computed domain with NaN or Inf", "min", a, "max", b)
		return
	}
	if q.domain[0] == a && q.domain[1] == b {
		return
	}
	q.domain = [2]float64{a, b}
	q.dispatch()
}

// AutoDomain implements Scale.
func (q *Quantitative) AutoDomain() {
	q.automatic = true
	d := q.computeDomain()
	q.setDomain(d[0], d[1])
}

// AutoDomainIfAutomatic implements Scale.
func (q *Quantitative) AutoDomainIfAutomatic() {
	if q.automatic {
		q.AutoDomain()
	}
}

func (q *Quantitative) computeDomain() [2]float64 {
	var extents [][2]float64
	for _, e := range q.allExtents() {
		if len(e) < 2 {
			continue
		}
		lo, ok1 := gridplot.ToFloat(e[0])
		hi, ok2 := gridplot.ToFloat(e[1])
		if !ok1 || !ok2 || !q.trans.valid(lo) || !q.trans.valid(hi) {
			continue
		}
		extents = append(extents, [2]float64{lo, hi})
	}
	return q.domainer.ComputeDomain(extents, q)
}

// Range returns the output range.
func (q *Quantitative) Range() (float64, float64) { return q.rng[0], q.rng[1] }

// SetRange sets the output range and notifies subscribers if it changed.
func (q *Quantitative) SetRange(a, b float64) {
	if q.rng[0] == a && q.rng[1] == b {
		return
	}
	q.rng = [2]float64{a, b}
	q.dispatch()
}

// Clamp reports whether out of domain values are clamped.
func (q *Quantitative) Clamp() bool { return q.clamp }

// SetClamp switches clamping of out of domain values.
func (q *Quantitative) SetClamp(c bool) { q.clamp = c }

// Domainer returns the domainer of q.
func (q *Quantitative) Domainer() *Domainer { return q.domainer }

// SetDomainer replaces the domainer. Plots do not adjust a domainer set
// by the user.
func (q *Quantitative) SetDomainer(d *Domainer) {
	if d == nil {
		d = NewDomainer()
	}
	q.domainer = d
	q.userDomainer = true
	q.AutoDomainIfAutomatic()
}

// UserSetDomainer reports whether the domainer was set with SetDomainer.
func (q *Quantitative) UserSetDomainer() bool { return q.userDomainer }

// DefaultExtent is the domain used when no data is available.
func (q *Quantitative) DefaultExtent() [2]float64 { return q.defaultExtent }

// NumTicks returns the desired number of ticks.
func (q *Quantitative) NumTicks() int { return q.numTicks }

// SetNumTicks sets the desired number of ticks.
func (q *Quantitative) SetNumTicks(n int) error {
	if n <= 0 {
		return gridplot.Invalidf("scale: number of ticks %d must be positive", n)
	}
	q.numTicks = n
	return nil
}

// SetTicker replaces the tick generator.
func (q *Quantitative) SetTicker(t plot.Ticker) {
	if t == nil {
		t = q.trans.Ticker
	}
	q.ticker = t
}

// SetShowIntermediateTicks controls intermediate ticks of a modified log
// scale. Other scales ignore it.
func (q *Quantitative) SetShowIntermediateTicks(show bool) {
	if t, ok := q.ticker.(*ModifiedLogTicks); ok {
		t.ShowIntermediate = show
	}
}

// Ticks returns the ticks inside the current domain.
func (q *Quantitative) Ticks() []plot.Tick {
	lo, hi := math.Min(q.domain[0], q.domain[1]), math.Max(q.domain[0], q.domain[1])
	var ticks []plot.Tick
	if ct, ok := q.ticker.(countTicker); ok {
		ticks = ct.TicksN(lo, hi, q.numTicks)
	} else {
		ticks = q.ticker.Ticks(lo, hi)
	}
	out := ticks[:0]
	for _, t := range ticks {
		if lo <= t.Value && t.Value <= hi {
			out = append(out, t)
		}
	}
	return out
}

// TickValues returns the values of the major ticks.
func (q *Quantitative) TickValues() []float64 {
	var vals []float64
	for _, t := range q.Ticks() {
		if !t.IsMinor() {
			vals = append(vals, t.Value)
		}
	}
	return vals
}
