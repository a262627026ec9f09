package plot

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/drawer"
	"github.com/vdobler/gridplot/scale"
)

// BarAlignment positions a bar relative to its position value.
type BarAlignment int

const (
	AlignLeft BarAlignment = iota
	AlignCenter
	AlignRight
)

func (a BarAlignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "unknown"
}

// ParseBarAlignment parses "left", "center" or "right".
func ParseBarAlignment(s string) (BarAlignment, error) {
	switch strings.ToLower(s) {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignCenter, gridplot.Invalidf("plot: unsupported bar alignment %q", s)
}

// factor is the share of the bar width left of the position.
func (a BarAlignment) factor() float64 { return float64(a) / 2 }

const (
	barWidthRatio       = 0.95
	singleBarDimRatio   = 0.4
	barContainTolerance = 0.5
)

// Bar draws a rectangle per datum from its position to the baseline.
// Vertical bars take their position from "x" and their value from "y",
// horizontal bars the other way round.
type Bar struct {
	XY

	id        string
	vertical  bool
	baseline  float64
	alignment BarAlignment

	// pixelWidth is the bar width of the current render.
	pixelWidth float64

	// span returns the pixel start and width of a bar along the position
	// axis.
	span func(d any, i int, ctx gridplot.Context) (start, width float64)
	// ends returns the raw value at the end and at the base of a bar.
	ends func(d any, i int, ctx gridplot.Context) (value, base float64)
}

// NewBar returns a bar plot. The baseline is 0 and bars are centered on
// their position.
func NewBar(x, y scale.Scale, vertical bool) *Bar {
	b := &Bar{}
	b.initBar(b, "bar", x, y, vertical)
	return b
}

func (b *Bar) initBar(this kindComponent, name string, x, y scale.Scale, vertical bool) {
	b.id = fmt.Sprintf("%s-%p", name, b)
	b.vertical = vertical
	b.alignment = AlignCenter
	b.span = b.alignedSpan
	b.ends = b.valueEnds
	b.initXY(this, name, x, y)
	b.applyBaseline()
}

func (b *Bar) positionAttr() string {
	if b.vertical {
		return "x"
	}
	return "y"
}

func (b *Bar) valueAttr() string {
	if b.vertical {
		return "y"
	}
	return "x"
}

func (b *Bar) positionScale() scale.Scale {
	if b.vertical {
		return b.x
	}
	return b.y
}

func (b *Bar) valueScale() scale.Scale {
	if b.vertical {
		return b.y
	}
	return b.x
}

// IsVertical reports whether the bars are vertical.
func (b *Bar) IsVertical() bool { return b.vertical }

// Baseline returns the value bars grow from.
func (b *Bar) Baseline() float64 { return b.baseline }

// SetBaseline sets the value bars grow from. The value scale always
// includes it and does not pad beyond it.
func (b *Bar) SetBaseline(v float64) error {
	if !gridplot.IsValidNumber(v) {
		return gridplot.Invalidf("plot: bar baseline %v must be finite", v)
	}
	b.removeBaseline()
	b.baseline = v
	b.applyBaseline()
	b.updateExtents()
	b.Render()
	return nil
}

func (b *Bar) removeBaseline() {
	if q, ok := b.valueScale().(*scale.Quantitative); ok {
		q.Domainer().RemoveIncludedValueKey(b.id)
		q.Domainer().RemovePaddingExceptionKey(b.id)
		q.AutoDomainIfAutomatic()
	}
}

func (b *Bar) applyBaseline() {
	if q, ok := b.valueScale().(*scale.Quantitative); ok {
		q.Domainer().AddIncludedValueKey(b.id, b.baseline)
		q.Domainer().AddPaddingExceptionKey(b.id, b.baseline)
		q.AutoDomainIfAutomatic()
	}
}

// Attr implements Plot.Attr. The baseline moves along with the value
// scale.
func (b *Bar) Attr(attr string, acc gridplot.Accessor, sc scale.Scale) {
	isValue := strings.ToLower(attr) == b.valueAttr()
	if isValue {
		b.removeBaseline()
	}
	b.XY.Attr(attr, acc, sc)
	if isValue {
		b.applyBaseline()
	}
}

// BarAlignment returns the alignment of the bars.
func (b *Bar) BarAlignment() BarAlignment { return b.alignment }

// SetBarAlignment sets the alignment by name: "left", "center" or
// "right".
func (b *Bar) SetBarAlignment(s string) error {
	a, err := ParseBarAlignment(s)
	if err != nil {
		return err
	}
	b.alignment = a
	b.Render()
	return nil
}

// barPixelWidth is the band width of a category position scale.
// Otherwise it is a share of the smallest gap between the positions of
// all data or, for a single position, a share of the plot size.
func (b *Bar) barPixelWidth() float64 {
	if c, ok := b.positionScale().(*scale.Category); ok {
		return c.RangeBand()
	}
	pr, ok := b.Projection(b.positionAttr())
	if !ok {
		return 0
	}
	var pixels []float64
	for _, k := range b.order {
		dk := b.keys[k]
		ctx := dk.context()
		for i, d := range dk.dataset.Data() {
			if px := gridplot.Float(pr.apply(d, i, ctx)); gridplot.IsValidNumber(px) {
				pixels = append(pixels, px)
			}
		}
	}
	slices.Sort(pixels)
	pixels = slices.Compact(pixels)
	if len(pixels) < 2 {
		dim := b.Height()
		if b.vertical {
			dim = b.Width()
		}
		return singleBarDimRatio * dim
	}
	gap := math.Inf(1)
	for i := 1; i < len(pixels); i++ {
		gap = min(gap, pixels[i]-pixels[i-1])
	}
	return barWidthRatio * gap
}

func (b *Bar) alignedSpan(d any, i int, ctx gridplot.Context) (float64, float64) {
	pr, _ := b.Projection(b.positionAttr())
	pos := gridplot.Float(pr.apply(d, i, ctx))
	return pos - b.pixelWidth*b.alignment.factor(), b.pixelWidth
}

func (b *Bar) valueEnds(d any, i int, ctx gridplot.Context) (float64, float64) {
	pr, _ := b.Projection(b.valueAttr())
	return gridplot.Float(pr.raw(d, i, ctx)), b.baseline
}

// barRect returns the rectangle of a datum and the pixel of its value
// end.
func (b *Bar) barRect(d any, i int, ctx gridplot.Context) (gridplot.Bounds, gridplot.Point) {
	start, width := b.span(d, i, ctx)
	value, base := b.ends(d, i, ctx)
	vs := b.valueScale()
	vpx, bpx := gridplot.Float(vs.Apply(value)), gridplot.Float(vs.Apply(base))
	lo, length := min(vpx, bpx), math.Abs(vpx-bpx)
	if b.vertical {
		return gridplot.Bounds{
				Origin: gridplot.Point{X: start, Y: lo},
				Size:   gridplot.Size{Width: width, Height: length},
			},
			gridplot.Point{X: start + width/2, Y: vpx}
	}
	return gridplot.Bounds{
			Origin: gridplot.Point{X: lo, Y: start},
			Size:   gridplot.Size{Width: length, Height: width},
		},
		gridplot.Point{X: vpx, Y: start + width/2}
}

// NewDrawer implements Kind.
func (b *Bar) NewDrawer(key string) drawer.Drawer { return drawer.NewRect(key, b.vertical) }

// DrawSteps implements Kind. Animated bars grow from the baseline.
func (b *Bar) DrawSteps() []drawer.DrawStep {
	b.pixelWidth = b.barPixelWidth()
	attrs := b.Projectors()
	rect := func(pick func(gridplot.Bounds) float64) drawer.Projector {
		return func(d any, i int, ctx gridplot.Context) any {
			r, _ := b.barRect(d, i, ctx)
			return pick(r)
		}
	}
	attrs["x"] = rect(func(r gridplot.Bounds) float64 { return r.Origin.X })
	attrs["y"] = rect(func(r gridplot.Bounds) float64 { return r.Origin.Y })
	attrs["width"] = rect(func(r gridplot.Bounds) float64 { return r.Size.Width })
	attrs["height"] = rect(func(r gridplot.Bounds) float64 { return r.Size.Height })
	if !b.animating() {
		return []drawer.DrawStep{{Attrs: attrs, Animator: b.Animator("main")}}
	}

	reset := make(drawer.AttrToProjector, len(attrs))
	for k, v := range attrs {
		reset[k] = v
	}
	basePixel := func(d any, i int, ctx gridplot.Context) float64 {
		_, base := b.ends(d, i, ctx)
		return gridplot.Float(b.valueScale().Apply(base))
	}
	if b.vertical {
		reset["y"] = func(d any, i int, ctx gridplot.Context) any { return basePixel(d, i, ctx) }
		reset["height"] = func(any, int, gridplot.Context) any { return 0.0 }
	} else {
		reset["x"] = func(d any, i int, ctx gridplot.Context) any { return basePixel(d, i, ctx) }
		reset["width"] = func(any, int, gridplot.Context) any { return 0.0 }
	}
	return []drawer.DrawStep{
		{Attrs: reset, Animator: b.Animator("reset")},
		{Attrs: attrs, Animator: b.Animator("main")},
	}
}

func (b *Bar) pixelPoint(e Entry) gridplot.Point {
	_, p := b.barRect(e.Datum, e.Index, b.keys[e.DatasetKey].context())
	return p
}

// distance treats a query inside a bar as distance 0. Otherwise the
// distance along the position axis decides and the value axis breaks
// ties.
func (b *Bar) distance(query gridplot.Point, e Entry) [2]float64 {
	r, _ := b.barRect(e.Datum, e.Index, b.keys[e.DatasetKey].context())
	if r.Contains(query, barContainTolerance) {
		return [2]float64{0, 0}
	}
	dx, dy := math.Abs(query.X-e.Pixel.X), math.Abs(query.Y-e.Pixel.Y)
	if b.vertical {
		return [2]float64{dx, dy}
	}
	return [2]float64{dy, dx}
}

// ----------------------------------------------------------------------------
// ClusteredBar

// ClusteredBar places the bars of the datasets side by side inside the
// band of each position. The slot of a dataset is its "position" plot
// metadata, recomputed before every draw.
type ClusteredBar struct {
	Bar

	inner *scale.Category
}

// NewClusteredBar returns a clustered bar plot.
func NewClusteredBar(x, y scale.Scale, vertical bool) *ClusteredBar {
	c := &ClusteredBar{inner: scale.NewCategory()}
	c.initBar(c, "clustered-bar", x, y, vertical)
	c.span = c.clusterSpan
	return c
}

func (c *ClusteredBar) prepare() {
	outer := c.barPixelWidth()
	c.inner.SetDomain(c.order...)
	c.inner.SetRange(0, outer)
	for _, k := range c.order {
		c.keys[k].metadata["position"] = c.inner.Scale(k) - c.inner.RangeBand()/2
	}
}

func (c *ClusteredBar) clusterSpan(d any, i int, ctx gridplot.Context) (float64, float64) {
	start, _ := c.alignedSpan(d, i, ctx)
	pos, _ := ctx.PlotMetadata["position"].(float64)
	return start + pos, c.inner.RangeBand()
}
