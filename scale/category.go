package scale

import (
	"math"
	"slices"

	"github.com/vdobler/gridplot"
)

// Category maps an ordered set of categories onto equally wide bands of a
// pixel range. Scale returns the center of a band.
type Category struct {
	base

	domain       []string
	index        map[string]int
	rng          [2]float64
	innerPadding float64
	outerPadding float64

	step, band, start float64
}

// NewCategory returns an empty Category scale with range [0,1], an inner
// padding of 0.3 and an outer padding of 0.5 band widths.
func NewCategory() *Category {
	c := &Category{
		rng:          [2]float64{0, 1},
		innerPadding: 0.3,
		outerPadding: 0.5,
	}
	c.base.self = c
	c.base.automatic = true
	c.layoutBands()
	return c
}

// Domain returns the categories.
func (c *Category) Domain() []string { return slices.Clone(c.domain) }

// SetDomain pins the domain to cats (duplicates are dropped).
func (c *Category) SetDomain(cats ...string) {
	c.automatic = false
	c.setDomain(gridplot.Uniq(cats))
}

func (c *Category) setDomain(cats []string) {
	if slices.Equal(cats, c.domain) {
		return
	}
	c.domain = cats
	c.index = make(map[string]int, len(cats))
	for i, v := range cats {
		c.index[v] = i
	}
	c.layoutBands()
	c.dispatch()
}

// AutoDomain implements Scale: the union of all extents in first-seen order.
func (c *Category) AutoDomain() {
	c.automatic = true
	var all []string
	for _, e := range c.allExtents() {
		for _, v := range e {
			all = append(all, gridplot.ToString(v))
		}
	}
	c.setDomain(gridplot.Uniq(all))
}

// AutoDomainIfAutomatic implements Scale.
func (c *Category) AutoDomainIfAutomatic() {
	if c.automatic {
		c.AutoDomain()
	}
}

// ExtentOf implements Scale.
func (c *Category) ExtentOf(values []any) []any {
	strs := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		strs = append(strs, gridplot.ToString(v))
	}
	strs = gridplot.Uniq(strs)
	if len(strs) == 0 {
		return nil
	}
	out := make([]any, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

// Apply implements Scale.
func (c *Category) Apply(v any) any { return c.Scale(gridplot.ToString(v)) }

// Scale returns the center of the band of cat or NaN for unknown cats.
func (c *Category) Scale(cat string) float64 {
	i, ok := c.index[cat]
	if !ok {
		return math.NaN()
	}
	return c.start + c.step*float64(i) + c.band/2
}

// Range returns the output range.
func (c *Category) Range() (float64, float64) { return c.rng[0], c.rng[1] }

// SetRange sets the output range.
func (c *Category) SetRange(a, b float64) {
	if c.rng[0] == a && c.rng[1] == b {
		return
	}
	c.rng = [2]float64{a, b}
	c.layoutBands()
	c.dispatch()
}

// RangeBand returns the width of one band.
func (c *Category) RangeBand() float64 { return math.Abs(c.band) }

// StepWidth returns the distance between the starts of adjacent bands.
func (c *Category) StepWidth() float64 { return c.RangeBand() * (1 + c.innerPadding) }

// InnerPadding returns the padding between bands as a proportion of the
// band width.
func (c *Category) InnerPadding() float64 { return c.innerPadding }

// SetInnerPadding sets the padding between bands as a proportion of the
// band width.
func (c *Category) SetInnerPadding(p float64) error {
	if !(p >= 0) || math.IsInf(p, 1) {
		return gridplot.Invalidf("scale: inner padding %v must be >= 0", p)
	}
	c.innerPadding = p
	c.layoutBands()
	c.dispatch()
	return nil
}

// OuterPadding returns the padding at both ends as a proportion of the
// band width.
func (c *Category) OuterPadding() float64 { return c.outerPadding }

// SetOuterPadding sets the padding at both ends as a proportion of the
// band width.
func (c *Category) SetOuterPadding(p float64) error {
	if !(p >= 0) || math.IsInf(p, 1) {
		return gridplot.Invalidf("scale: outer padding %v must be >= 0", p)
	}
	c.outerPadding = p
	c.layoutBands()
	c.dispatch()
	return nil
}

// layoutBands computes the band geometry like an ordinal band scale with
// paddings expressed relative to the band width.
func (c *Category) layoutBands() {
	inner := 1 - 1/(1+c.innerPadding)
	outer := c.outerPadding / (1 + c.innerPadding)
	r0, r1 := c.rng[0], c.rng[1]
	n := float64(len(c.domain))
	den := n - inner + 2*outer
	if den <= 0 {
		c.step, c.band, c.start = 0, 0, (r0+r1)/2
		return
	}
	c.step = (r1 - r0) / den
	c.start = r0 + c.step*outer
	c.band = c.step * (1 - inner)
}
