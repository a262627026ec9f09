package plot

import (
	"slices"
	"strings"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/component"
	"github.com/vdobler/gridplot/scale"
)

// Default domainer settings of quantitative x and y scales.
const (
	defaultPadding   = 0.05
	defaultNiceTicks = 10
)

// XY is a plot with an "x" and a "y" projection. Its layout sets the
// range of the x scale to [0, width] and of the y scale to [height, 0].
type XY struct {
	Plot

	x, y scale.Scale

	autoAdjustY bool
	xSub        gridplot.Subscription
}

// kindComponent is a concrete plot.
type kindComponent interface {
	component.Component
	Kind
}

func (p *XY) initXY(this kindComponent, name string, x, y scale.Scale) {
	p.init(this, this, name)
	for _, s := range []scale.Scale{x, y} {
		if q, ok := s.(*scale.Quantitative); ok && !q.UserSetDomainer() {
			_ = q.Domainer().Pad(defaultPadding)
			_ = q.Domainer().Nice(defaultNiceTicks)
		}
	}
	p.Attr("x", gridplot.Field("x"), x)
	p.Attr("y", gridplot.Field("y"), y)
}

// Attr implements Plot.Attr. A new scale for "x" or "y" becomes the x or
// y scale of p.
func (p *XY) Attr(attr string, acc gridplot.Accessor, sc scale.Scale) {
	switch strings.ToLower(attr) {
	case "x":
		if sc != nil && sc != p.x {
			if p.autoAdjustY {
				p.x.OffUpdate(p.xSub)
				p.xSub = sc.OnUpdate(func(scale.Scale) { p.adjustYDomain() })
			}
			p.x = sc
		}
	case "y":
		if sc != nil {
			p.y = sc
		}
	}
	p.Plot.Attr(attr, acc, sc)
}

// XScale returns the x scale.
func (p *XY) XScale() scale.Scale { return p.x }

// YScale returns the y scale.
func (p *XY) YScale() scale.Scale { return p.y }

// ComputeLayout implements component.Component.
func (p *XY) ComputeLayout(origin gridplot.Point, w, h float64) {
	p.Plot.ComputeLayout(origin, w, h)
	if r, ok := p.x.(scale.Ranger); ok {
		r.SetRange(0, p.Width())
	}
	if r, ok := p.y.(scale.Ranger); ok {
		r.SetRange(p.Height(), 0)
	}
}

// SetAutoAdjustYOverVisiblePoints makes the y domain follow the points
// whose x lies inside the x domain whenever the x scale or the data
// changes.
func (p *XY) SetAutoAdjustYOverVisiblePoints(adjust bool) {
	if adjust == p.autoAdjustY {
		return
	}
	p.autoAdjustY = adjust
	if adjust {
		p.xSub = p.x.OnUpdate(func(scale.Scale) { p.adjustYDomain() })
		p.adjustYDomain()
	} else {
		p.x.OffUpdate(p.xSub)
	}
}

// ShowAllData puts both scales back into automatic mode.
func (p *XY) ShowAllData() {
	p.y.AutoDomain()
	p.x.AutoDomain()
}

// visibleX returns a predicate reporting whether a raw x value lies in
// the domain of the x scale.
func (p *XY) visibleX() func(v any) bool {
	switch x := p.x.(type) {
	case *scale.Quantitative:
		lo, hi := x.Domain()
		lo, hi = min(lo, hi), max(lo, hi)
		return func(v any) bool {
			f, ok := gridplot.ToFloat(v)
			return ok && lo <= f && f <= hi
		}
	case *scale.Category:
		dom := x.Domain()
		return func(v any) bool { return slices.Contains(dom, gridplot.ToString(v)) }
	}
	return func(any) bool { return true }
}

// extentsChanged re-adjusts y: new data may not change the x domain.
func (p *XY) extentsChanged() { p.adjustYDomain() }

func (p *XY) adjustYDomain() {
	if !p.autoAdjustY {
		return
	}
	y, ok := p.y.(*scale.Quantitative)
	if !ok {
		return
	}
	xp, _ := p.Projection("x")
	yp, _ := p.Projection("y")
	visible := p.visibleX()
	iv := gridplot.UnsetInterval()
	for _, k := range p.order {
		dk := p.keys[k]
		ctx := dk.context()
		for i, d := range dk.dataset.Data() {
			if !visible(xp.raw(d, i, ctx)) {
				continue
			}
			if f, ok := gridplot.ToFloat(yp.raw(d, i, ctx)); ok && gridplot.IsValidNumber(f) {
				iv.Update(f)
			}
		}
	}
	if !iv.IsSet() {
		return
	}
	d := y.Domainer().ComputeDomain([][2]float64{{iv.Min, iv.Max}}, y)
	y.SetDomain(d[0], d[1])
}

// Destroy implements component.Component.
func (p *XY) Destroy() {
	if p.autoAdjustY {
		p.x.OffUpdate(p.xSub)
	}
	p.Plot.Destroy()
}
