package scale

import (
	"math"

	"github.com/vdobler/gridplot"
)

// DefaultPadProportion is used by Pad when called without argument by
// plots configuring their scales.
const DefaultPadProportion = 0.05

// A Domainer computes the domain of a Quantitative scale from the extents
// of the data bound to it. It includes fixed values, pads the domain in
// the scale's visual space and optionally rounds it to nice values.
type Domainer struct {
	padProportion float64
	doNice        bool
	niceCount     int

	// CombineExtents reduces all extents to one [min,max] pair. If nil
	// the minimum of all minima and the maximum of all maxima is used.
	CombineExtents func(extents [][2]float64) [2]float64

	paddingExceptions        map[string]float64
	unkeyedPaddingExceptions map[float64]int
	padOrder                 []string
	includedValues           map[string]float64
	unkeyedIncludedValues    map[float64]int
	includedOrder            []string
}

// NewDomainer returns a Domainer which does not pad and does not round.
func NewDomainer() *Domainer {
	return &Domainer{
		paddingExceptions:        make(map[string]float64),
		unkeyedPaddingExceptions: make(map[float64]int),
		includedValues:           make(map[string]float64),
		unkeyedIncludedValues:    make(map[float64]int),
	}
}

// Pad sets the padding proportion: the domain is expanded by p/2 of its
// visual length on both ends. Negative values are rejected.
func (d *Domainer) Pad(p float64) error {
	if !(p >= 0) || math.IsInf(p, 1) {
		return gridplot.Invalidf("scale: padding proportion %v must be a finite number >= 0", p)
	}
	d.padProportion = p
	return nil
}

// PadProportion returns the padding proportion.
func (d *Domainer) PadProportion() float64 { return d.padProportion }

// Nice requests rounding of the domain to round values with about count
// ticks.
func (d *Domainer) Nice(count int) error {
	if count <= 0 {
		return gridplot.Invalidf("scale: nice tick count %d must be positive", count)
	}
	d.doNice = true
	d.niceCount = count
	return nil
}

// NoNice switches rounding off.
func (d *Domainer) NoNice() { d.doNice = false }

// AddPaddingException exempts v from padding.
func (d *Domainer) AddPaddingException(v float64) {
	d.unkeyedPaddingExceptions[v]++
}

// RemovePaddingException undoes one AddPaddingException(v).
func (d *Domainer) RemovePaddingException(v float64) {
	if n := d.unkeyedPaddingExceptions[v]; n > 1 {
		d.unkeyedPaddingExceptions[v] = n - 1
	} else {
		delete(d.unkeyedPaddingExceptions, v)
	}
}

// AddPaddingExceptionKey registers v as a padding exception under key,
// replacing any previous value for key.
func (d *Domainer) AddPaddingExceptionKey(key string, v float64) {
	if _, ok := d.paddingExceptions[key]; !ok {
		d.padOrder = append(d.padOrder, key)
	}
	d.paddingExceptions[key] = v
}

// RemovePaddingExceptionKey removes the padding exception for key.
func (d *Domainer) RemovePaddingExceptionKey(key string) {
	if _, ok := d.paddingExceptions[key]; !ok {
		return
	}
	delete(d.paddingExceptions, key)
	d.padOrder = removeString(d.padOrder, key)
}

// AddIncludedValue forces the domain to contain v.
func (d *Domainer) AddIncludedValue(v float64) {
	d.unkeyedIncludedValues[v]++
}

// RemoveIncludedValue undoes one AddIncludedValue(v).
func (d *Domainer) RemoveIncludedValue(v float64) {
	if n := d.unkeyedIncludedValues[v]; n > 1 {
		d.unkeyedIncludedValues[v] = n - 1
	} else {
		delete(d.unkeyedIncludedValues, v)
	}
}

// AddIncludedValueKey forces the domain to contain v, registered under key.
func (d *Domainer) AddIncludedValueKey(key string, v float64) {
	if _, ok := d.includedValues[key]; !ok {
		d.includedOrder = append(d.includedOrder, key)
	}
	d.includedValues[key] = v
}

// RemoveIncludedValueKey removes the included value for key.
func (d *Domainer) RemoveIncludedValueKey(key string) {
	if _, ok := d.includedValues[key]; !ok {
		return
	}
	delete(d.includedValues, key)
	d.includedOrder = removeString(d.includedOrder, key)
}

func removeString(s []string, x string) []string {
	for i, v := range s {
		if v == x {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}

func (d *Domainer) isPaddingException(v float64) bool {
	if d.unkeyedPaddingExceptions[v] > 0 {
		return true
	}
	for _, x := range d.paddingExceptions {
		if x == v {
			return true
		}
	}
	return false
}

// ComputeDomain merges extents into the domain of s.
func (d *Domainer) ComputeDomain(extents [][2]float64, s *Quantitative) [2]float64 {
	var domain [2]float64
	switch {
	case d.CombineExtents != nil:
		domain = d.CombineExtents(extents)
	case len(extents) == 0:
		domain = s.DefaultExtent()
	default:
		iv := gridplot.UnsetInterval()
		for _, e := range extents {
			iv.Update(e[0], e[1])
		}
		if !iv.IsSet() {
			domain = s.DefaultExtent()
		} else {
			domain = [2]float64{iv.Min, iv.Max}
		}
	}
	domain = d.includeDomain(domain, s.trans)
	domain = d.padDomain(domain, s.trans)
	if d.doNice && s.trans.nice != nil {
		domain[0], domain[1] = s.trans.nice(domain[0], domain[1], d.niceCount)
	}
	return domain
}

func (d *Domainer) includeDomain(domain [2]float64, t Transformation) [2]float64 {
	include := func(v float64) {
		if !t.valid(v) {
			return
		}
		if domain[0] <= domain[1] {
			domain[0], domain[1] = math.Min(domain[0], v), math.Max(domain[1], v)
		} else {
			domain[0], domain[1] = math.Max(domain[0], v), math.Min(domain[1], v)
		}
	}
	for _, k := range d.includedOrder {
		include(d.includedValues[k])
	}
	for v := range d.unkeyedIncludedValues {
		include(v)
	}
	return domain
}

func (d *Domainer) padDomain(domain [2]float64, t Transformation) [2]float64 {
	lo, hi := domain[0], domain[1]
	if lo == hi {
		if t.expand == nil {
			return [2]float64{lo - 1, hi + 1}
		}
		a, b := t.expand(lo)
		return [2]float64{a, b}
	}
	if d.padProportion == 0 {
		return domain
	}
	p := d.padProportion / 2
	tlo, thi := t.Trans(lo), t.Trans(hi)
	span := thi - tlo
	newLo := t.Inverse(tlo - span*p)
	newHi := t.Inverse(thi + span*p)
	if d.isPaddingException(lo) {
		newLo = lo
	}
	if d.isPaddingException(hi) {
		newHi = hi
	}
	return [2]float64{newLo, newHi}
}
