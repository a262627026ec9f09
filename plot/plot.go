// Package plot draws datasets through projections of their records onto
// scales.
//
// A Plot binds datasets under string keys and projections of visual
// attributes ("x", "y", "fill", ...) to accessors and scales. It feeds the
// extents of the projected values to the scales and draws every dataset
// with a drawer of its own. The chart types (Scatter, Line, Area, Bar,
// ClusteredBar, StackedBar, StackedArea) are Kinds plugged into the
// common Plot.
package plot

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/component"
	"github.com/vdobler/gridplot/drawer"
	"github.com/vdobler/gridplot/scale"
	"github.com/vdobler/gridplot/surface"
)

// A Kind supplies what differs between chart types.
type Kind interface {
	// NewDrawer returns the drawer of a newly added dataset.
	NewDrawer(key string) drawer.Drawer

	// DrawSteps returns the steps drawing a dataset. The last step holds
	// the final attributes.
	DrawSteps() []drawer.DrawStep
}

// A preparer recomputes derived per dataset state before extents are
// computed and before drawing.
type preparer interface {
	prepare()
}

// An extenter replaces the extent of an attribute of one dataset.
type extenter interface {
	extent(attr, key string, values []any, sc scale.Scale) ([]any, bool)
}

// A distancer ranks an entry for ClosestPlotData. Distances compare
// lexicographically, smaller is closer.
type distancer interface {
	distance(query gridplot.Point, e Entry) [2]float64
}

// An extentWatcher is told when the extents of the plot changed, after
// the scales recomputed their domains.
type extentWatcher interface {
	extentsChanged()
}

// A pixelPointer positions an entry differently from its drawer.
type pixelPointer interface {
	pixelPoint(e Entry) gridplot.Point
}

// Projection binds a visual attribute to an accessor and an optional
// scale.
type Projection struct {
	Accessor gridplot.Accessor
	Scale    scale.Scale

	fn          gridplot.AccessorFunc
	providerSub gridplot.Subscription
	updateSub   gridplot.Subscription
}

// raw returns the unscaled value of the datum.
func (pr *Projection) raw(datum any, index int, ctx gridplot.Context) any {
	return pr.fn(datum, index, ctx)
}

// apply returns the scaled value of the datum.
func (pr *Projection) apply(datum any, index int, ctx gridplot.Context) any {
	v := pr.fn(datum, index, ctx)
	if pr.Scale == nil {
		return v
	}
	return pr.Scale.Apply(v)
}

// datasetKey is a dataset bound to a plot.
type datasetKey struct {
	key      string
	dataset  *gridplot.Dataset
	drawer   drawer.Drawer
	metadata map[string]any
	sub      gridplot.Subscription
}

func (dk *datasetKey) context() gridplot.Context {
	return gridplot.Context{DatasetKey: dk.key, Metadata: dk.dataset.Metadata(), PlotMetadata: dk.metadata}
}

// Entry is one drawn datum.
type Entry struct {
	DatasetKey string
	Index      int
	Datum      any
	Pixel      gridplot.Point
}

// Plot is the common part of all plots.
type Plot struct {
	component.Base
	kind Kind

	keys        map[string]*datasetKey
	order       []string
	nextKey     int
	projections map[string]*Projection

	// extents holds per attribute and dataset key the extent of the
	// projected values.
	extents map[string]map[string][]any

	animate             bool
	animateOnNextRender bool
	animators           map[string]drawer.Animator
	lastDrawTime        time.Duration
}

// init sets up p for the concrete plot this of the given kind.
func (p *Plot) init(this component.Component, kind Kind, name string) {
	p.Init(this, name)
	p.kind = kind
	p.keys = make(map[string]*datasetKey)
	p.projections = make(map[string]*Projection)
	p.extents = make(map[string]map[string][]any)
	p.animators = make(map[string]drawer.Animator)
	p.animateOnNextRender = true
}

func (p *Plot) logger() *slog.Logger {
	if r := p.Root(); r != nil {
		return r.Logger()
	}
	return gridplot.Logger()
}

// ----------------------------------------------------------------------------
// Datasets

// AddDataset adds ds under the next free automatic key "_<n>" and returns
// the key.
func (p *Plot) AddDataset(ds *gridplot.Dataset) string {
	for {
		key := fmt.Sprintf("_%d", p.nextKey)
		p.nextKey++
		if _, taken := p.keys[key]; !taken {
			p.addDataset(key, ds)
			return key
		}
	}
}

// AddDatasetKey adds ds under key. A dataset already bound to key is
// replaced in place.
func (p *Plot) AddDatasetKey(key string, ds *gridplot.Dataset) error {
	if key == "" {
		return gridplot.Invalidf("plot: empty dataset key")
	}
	if ds == nil {
		return gridplot.Invalidf("plot: nil dataset for key %q", key)
	}
	if strings.HasPrefix(key, "_") {
		p.logger().Warn("plot: dataset keys starting with _ may collide with automatic keys", "key", key)
	}
	p.addDataset(key, ds)
	return nil
}

func (p *Plot) addDataset(key string, ds *gridplot.Dataset) {
	if old, ok := p.keys[key]; ok {
		old.dataset.OffUpdate(old.sub)
		old.drawer.Remove()
	} else {
		p.order = append(p.order, key)
	}
	dk := &datasetKey{
		key:      key,
		dataset:  ds,
		drawer:   p.kind.NewDrawer(key),
		metadata: make(map[string]any),
	}
	dk.sub = ds.OnUpdate(func(*gridplot.Dataset) { p.onDatasetUpdate() })
	p.keys[key] = dk
	if p.Node() != nil {
		dk.drawer.Setup(p.Node())
		p.syncDrawerNodes()
	}
	p.onDatasetUpdate()
}

// RemoveDataset removes the dataset bound to key. Unknown keys are
// ignored.
func (p *Plot) RemoveDataset(key string) {
	dk, ok := p.keys[key]
	if !ok {
		return
	}
	dk.dataset.OffUpdate(dk.sub)
	dk.drawer.Remove()
	delete(p.keys, key)
	p.order = slices.DeleteFunc(p.order, func(k string) bool { return k == key })
	for _, byKey := range p.extents {
		delete(byKey, key)
	}
	p.onDatasetUpdate()
}

// Dataset returns the dataset bound to key.
func (p *Plot) Dataset(key string) (*gridplot.Dataset, bool) {
	dk, ok := p.keys[key]
	if !ok {
		return nil, false
	}
	return dk.dataset, true
}

// Datasets returns the datasets in drawing order.
func (p *Plot) Datasets() []*gridplot.Dataset {
	out := make([]*gridplot.Dataset, len(p.order))
	for i, k := range p.order {
		out[i] = p.keys[k].dataset
	}
	return out
}

// DatasetOrder returns the dataset keys in drawing order.
func (p *Plot) DatasetOrder() []string { return slices.Clone(p.order) }

// SetDatasetOrder changes the drawing order. keys must be a permutation
// of the current keys.
func (p *Plot) SetDatasetOrder(keys []string) error {
	if len(keys) != len(p.order) {
		return gridplot.Invalidf("plot: dataset order %v is not a permutation of %v", keys, p.order)
	}
	a, b := slices.Clone(keys), slices.Clone(p.order)
	sort.Strings(a)
	sort.Strings(b)
	if !slices.Equal(a, b) {
		return gridplot.Invalidf("plot: dataset order %v is not a permutation of %v", keys, p.order)
	}
	p.order = slices.Clone(keys)
	p.syncDrawerNodes()
	p.onDatasetUpdate()
	return nil
}

// PlotMetadata returns the state p keeps for the dataset bound to key.
func (p *Plot) PlotMetadata(key string) map[string]any {
	if dk, ok := p.keys[key]; ok {
		return dk.metadata
	}
	return nil
}

func (p *Plot) onDatasetUpdate() {
	p.updateExtents()
	p.animateOnNextRender = true
	p.Render()
}

func (p *Plot) syncDrawerNodes() {
	if p.Node() == nil {
		return
	}
	for _, k := range p.order {
		if n := p.keys[k].drawer.Node(); n != nil {
			p.Node().Append(n)
		}
	}
}

// ----------------------------------------------------------------------------
// Projections

// Attr projects attribute attr (case insensitive) through acc and the
// optional scale sc, replacing a previous projection of attr.
func (p *Plot) Attr(attr string, acc gridplot.Accessor, sc scale.Scale) {
	attr = strings.ToLower(attr)
	var oldScale scale.Scale
	if old, ok := p.projections[attr]; ok && old.Scale != nil {
		old.Scale.RemoveExtentProvider(old.providerSub)
		old.Scale.OffUpdate(old.updateSub)
		oldScale = old.Scale
	}
	pr := &Projection{Accessor: acc, Scale: sc, fn: acc.Resolve()}
	if sc != nil {
		pr.providerSub = sc.AddExtentProvider(func(scale.Scale) [][]any { return p.extentsOf(attr) })
		pr.updateSub = sc.OnUpdate(func(scale.Scale) { p.Render() })
	}
	p.projections[attr] = pr
	p.updateExtents()
	if oldScale != nil && oldScale != sc {
		oldScale.AutoDomainIfAutomatic()
	}
	p.Render()
}

// Projection returns the projection of attr.
func (p *Plot) Projection(attr string) (*Projection, bool) {
	pr, ok := p.projections[strings.ToLower(attr)]
	return pr, ok
}

// extentsOf is the extent provider of attr. A plot which is not anchored
// provides nothing.
func (p *Plot) extentsOf(attr string) [][]any {
	if !p.IsAnchored() {
		return nil
	}
	var out [][]any
	for _, k := range p.order {
		if e := p.extents[attr][k]; len(e) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// attrs returns the projected attribute names in sorted order.
func (p *Plot) attrs() []string {
	names := make([]string, 0, len(p.projections))
	for name := range p.projections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// updateExtents recomputes the extents of all projected attributes and
// lets the involved scales recompute their domain.
func (p *Plot) updateExtents() {
	if pr, ok := p.kind.(preparer); ok {
		pr.prepare()
	}
	var scales []scale.Scale
	for _, attr := range p.attrs() {
		proj := p.projections[attr]
		byKey := make(map[string][]any, len(p.order))
		p.extents[attr] = byKey
		if proj.Scale == nil {
			continue
		}
		if !slices.Contains(scales, proj.Scale) {
			scales = append(scales, proj.Scale)
		}
		for _, k := range p.order {
			dk := p.keys[k]
			ctx := dk.context()
			data := dk.dataset.Data()
			values := make([]any, len(data))
			for i, d := range data {
				values[i] = proj.raw(d, i, ctx)
			}
			if ex, ok := p.kind.(extenter); ok {
				if e, ok := ex.extent(attr, k, values, proj.Scale); ok {
					byKey[k] = e
					continue
				}
			}
			byKey[k] = proj.Scale.ExtentOf(values)
		}
	}
	for _, s := range scales {
		s.AutoDomainIfAutomatic()
	}
	if w, ok := p.kind.(extentWatcher); ok {
		w.extentsChanged()
	}
}

// Projectors returns projectors applying all projections of p.
func (p *Plot) Projectors() drawer.AttrToProjector {
	attrs := make(drawer.AttrToProjector, len(p.projections))
	for name, pr := range p.projections {
		attrs[name] = pr.apply
	}
	return attrs
}

// ----------------------------------------------------------------------------
// Animation

// Animate switches animation of the next render after data changes.
func (p *Plot) Animate(enabled bool) {
	p.animate = enabled
	p.Render()
}

// SetAnimator sets the animator of the draw step named key ("main",
// "reset", ...).
func (p *Plot) SetAnimator(key string, a drawer.Animator) {
	p.animators[key] = a
}

// animating reports whether the next render animates.
func (p *Plot) animating() bool { return p.animate && p.animateOnNextRender }

// Animator returns the animator of the draw step named key for the next
// render: Null if the render does not animate.
func (p *Plot) Animator(key string) drawer.Animator {
	if !p.animating() {
		return drawer.Null{}
	}
	if a, ok := p.animators[key]; ok {
		return a
	}
	if key == "reset" {
		return drawer.Null{}
	}
	return drawer.NewBase()
}

// LastDrawTime returns the total animation time of the last render.
func (p *Plot) LastDrawTime() time.Duration { return p.lastDrawTime }

// ----------------------------------------------------------------------------
// Component

// Anchor implements component.Component. The drawers get their nodes and
// the extents become visible to the scales.
func (p *Plot) Anchor(r *component.Root, parent *surface.Node) {
	p.Base.Anchor(r, parent)
	for _, k := range p.order {
		p.keys[k].drawer.Setup(p.Node())
	}
	p.syncDrawerNodes()
	p.updateExtents()
}

// Detach implements component.Component. The scales forget the extents
// of p.
func (p *Plot) Detach() {
	p.Base.Detach()
	for _, attr := range p.attrs() {
		if s := p.projections[attr].Scale; s != nil {
			s.AutoDomainIfAutomatic()
		}
	}
}

// Destroy implements component.Component. Subscriptions to datasets and
// scales are removed.
func (p *Plot) Destroy() {
	p.Base.Destroy()
	for _, dk := range p.keys {
		dk.dataset.OffUpdate(dk.sub)
	}
	for _, pr := range p.projections {
		if pr.Scale != nil {
			pr.Scale.RemoveExtentProvider(pr.providerSub)
			pr.Scale.OffUpdate(pr.updateSub)
			pr.Scale.AutoDomainIfAutomatic()
		}
	}
}

// RenderImmediately implements component.Component. A plot without
// area is not drawn.
func (p *Plot) RenderImmediately() error {
	if p.Width() <= 0 || p.Height() <= 0 {
		return nil
	}
	if pr, ok := p.kind.(preparer); ok {
		pr.prepare()
	}
	steps := p.kind.DrawSteps()
	var total time.Duration
	for _, k := range p.order {
		dk := p.keys[k]
		ctx := dk.context()
		applied := make([]drawer.AppliedDrawStep, len(steps))
		for i, s := range steps {
			applied[i] = s.Apply(ctx)
		}
		total = max(total, dk.drawer.Draw(dk.dataset.Data(), applied))
	}
	p.lastDrawTime = total
	p.animateOnNextRender = false
	return nil
}

// ----------------------------------------------------------------------------
// Plot data

func (p *Plot) entryPixel(e Entry) gridplot.Point {
	if pp, ok := p.kind.(pixelPointer); ok {
		return pp.pixelPoint(e)
	}
	return p.keys[e.DatasetKey].drawer.PixelPoint(e.Datum, e.Index)
}

// AllPlotData returns the drawn data of the datasets bound to keys or of
// all datasets if no key is given.
func (p *Plot) AllPlotData(keys ...string) []Entry {
	if len(keys) == 0 {
		keys = p.order
	}
	var out []Entry
	for _, k := range keys {
		dk, ok := p.keys[k]
		if !ok {
			continue
		}
		for i, d := range dk.dataset.Data() {
			if !dk.drawer.Visible(i) {
				continue
			}
			e := Entry{DatasetKey: k, Index: i, Datum: d}
			e.Pixel = p.entryPixel(e)
			out = append(out, e)
		}
	}
	return out
}

// ClosestPlotData returns the drawn datum closest to the pixel query.
// Ties go to the first datum in dataset order.
func (p *Plot) ClosestPlotData(query gridplot.Point) (Entry, bool) {
	best := [2]float64{math.Inf(1), math.Inf(1)}
	var found Entry
	ok := false
	for _, e := range p.AllPlotData() {
		if !gridplot.IsValidNumber(e.Pixel.X) || !gridplot.IsValidNumber(e.Pixel.Y) {
			continue
		}
		d := [2]float64{gridplot.DistanceSquared(query, e.Pixel), 0}
		if dist, isDist := p.kind.(distancer); isDist {
			d = dist.distance(query, e)
		}
		if d[0] < best[0] || d[0] == best[0] && d[1] < best[1] {
			best, found, ok = d, e, true
		}
	}
	return found, ok
}
