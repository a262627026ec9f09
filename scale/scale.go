// Package scale maps data values to pixels or colors.
//
// Every scale merges the extents supplied by its extent providers (usually
// plots bound to the scale) into one domain. A scale starts in automatic
// mode; an explicit SetDomain pins the domain until AutoDomain is called
// again. Scales notify their subscribers only if the domain or range
// changes by value.
package scale

import (
	"github.com/vdobler/gridplot"
)

// Scale is the part common to all scales which plots and axes need.
type Scale interface {
	// Apply maps an untyped data value.
	Apply(v any) any

	// ExtentOf reduces raw values to one extent in the scale's domain
	// representation. It returns nil if no value is usable.
	ExtentOf(values []any) []any

	AddExtentProvider(p ExtentProvider) gridplot.Subscription
	RemoveExtentProvider(s gridplot.Subscription)

	// AutoDomain switches to automatic mode and recomputes the domain.
	AutoDomain()
	// AutoDomainIfAutomatic recomputes the domain in automatic mode only.
	AutoDomainIfAutomatic()

	OnUpdate(cb func(Scale)) gridplot.Subscription
	OffUpdate(s gridplot.Subscription)
}

// An ExtentProvider supplies extents for s. Each extent is in the domain
// representation of s: [min, max] for quantitative scales and a list of
// values for categorical scales.
type ExtentProvider func(s Scale) [][]any

// Ranger is implemented by scales with a pixel range.
type Ranger interface {
	Range() (float64, float64)
	SetRange(a, b float64)
}

// Ticker is implemented by scales which can produce tick values.
type Ticker interface {
	TickValues() []float64
}

type base struct {
	self      Scale
	providers gridplot.CallbackSet[ExtentProvider]
	listeners gridplot.CallbackSet[func(Scale)]
	automatic bool
}

func (b *base) AddExtentProvider(p ExtentProvider) gridplot.Subscription {
	return b.providers.Add(p)
}

func (b *base) RemoveExtentProvider(s gridplot.Subscription) {
	b.providers.Remove(s)
}

func (b *base) OnUpdate(cb func(Scale)) gridplot.Subscription {
	return b.listeners.Add(cb)
}

func (b *base) OffUpdate(s gridplot.Subscription) {
	b.listeners.Remove(s)
}

// Automatic reports whether the domain follows the extents.
func (b *base) Automatic() bool { return b.automatic }

func (b *base) allExtents() [][]any {
	var all [][]any
	b.providers.Each(func(p ExtentProvider) {
		all = append(all, p(b.self)...)
	})
	return all
}

func (b *base) dispatch() {
	b.listeners.Each(func(cb func(Scale)) { cb(b.self) })
}
