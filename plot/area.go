package plot

import (
	"fmt"
	"strings"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/drawer"
	"github.com/vdobler/gridplot/scale"
)

// Area fills the region between "y" and "y0" along "x" and draws the
// "y" line on top. A constant "y0" is exempt from the padding of the y
// scale.
type Area struct {
	XY

	id       string
	drawLine bool
}

// NewArea returns an area plot over the scales x and y with y0 = 0.
func NewArea(x, y scale.Scale) *Area {
	a := &Area{}
	a.initArea(a, "area", x, y)
	return a
}

func (a *Area) initArea(this kindComponent, name string, x, y scale.Scale) {
	a.drawLine = true
	a.id = fmt.Sprintf("%s-%p", name, a)
	a.initXY(this, name, x, y)
	a.Attr("y0", gridplot.Constant(0.0), y)
}

// Attr implements Plot.Attr.
func (a *Area) Attr(attr string, acc gridplot.Accessor, sc scale.Scale) {
	attr = strings.ToLower(attr)
	if attr == "y0" || attr == "y" {
		a.removeY0PaddingException()
	}
	a.XY.Attr(attr, acc, sc)
	if attr == "y0" || attr == "y" {
		a.updateY0PaddingException()
	}
}

// SetDrawLine controls whether the upper line is drawn.
func (a *Area) SetDrawLine(draw bool) {
	a.drawLine = draw
	a.Render()
}

func (a *Area) removeY0PaddingException() {
	if q, ok := a.y.(*scale.Quantitative); ok {
		q.Domainer().RemovePaddingExceptionKey(a.id)
	}
}

func (a *Area) updateY0PaddingException() {
	q, ok := a.y.(*scale.Quantitative)
	pr, has := a.Projection("y0")
	if !ok || !has {
		return
	}
	if v, isConst := pr.Accessor.IsConstant(); isConst {
		if f, ok := gridplot.ToFloat(v); ok {
			q.Domainer().AddPaddingExceptionKey(a.id, f)
			q.AutoDomainIfAutomatic()
		}
	}
}

// NewDrawer implements Kind.
func (a *Area) NewDrawer(key string) drawer.Drawer {
	d := drawer.NewArea(key)
	d.SetDrawLine(a.drawLine)
	return d
}

// DrawSteps implements Kind. Animated areas rise from the baseline.
func (a *Area) DrawSteps() []drawer.DrawStep {
	a.syncDrawLine()
	return a.xyDrawSteps(a.Projectors(), "y", "y0")
}

func (a *Area) syncDrawLine() {
	for _, k := range a.order {
		if d, ok := a.keys[k].drawer.(*drawer.Area); ok {
			d.SetDrawLine(a.drawLine)
		}
	}
}

func (a *Area) distance(query gridplot.Point, e Entry) [2]float64 { return xDominant(query, e) }
