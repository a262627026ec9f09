package scale

import (
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/vdobler/gridplot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotutil"
)

// ----------------------------------------------------------------------------
// Color

// Color maps categories to the colors of a palette. Categories not in the
// domain are appended to it on first use.
type Color struct {
	base

	domain  []string
	index   map[string]int
	palette []color.Color
}

// NewColor returns a categorical color scale using the named palette:
// "default", "soft" or "dark". The empty name selects "default".
func NewColor(name string) (*Color, error) {
	var pal []color.Color
	switch strings.ToLower(name) {
	case "", "default":
		pal = plotutil.DefaultColors
	case "soft":
		pal = plotutil.SoftColors
	case "dark":
		pal = plotutil.DarkColors
	default:
		return nil, gridplot.Invalidf("scale: unknown color palette %q", name)
	}
	return NewColorPalette(pal)
}

// NewColorPalette returns a categorical color scale cycling through pal.
func NewColorPalette(pal []color.Color) (*Color, error) {
	if len(pal) == 0 {
		return nil, gridplot.Invalidf("scale: empty color palette")
	}
	c := &Color{palette: slices.Clone(pal), index: make(map[string]int)}
	c.base.self = c
	c.base.automatic = true
	return c, nil
}

// Domain returns the categories in order.
func (c *Color) Domain() []string { return slices.Clone(c.domain) }

// SetDomain pins the categories.
func (c *Color) SetDomain(cats ...string) {
	c.automatic = false
	c.setDomain(gridplot.Uniq(cats))
}

func (c *Color) setDomain(cats []string) {
	if slices.Equal(cats, c.domain) {
		return
	}
	c.domain = cats
	c.index = make(map[string]int, len(cats))
	for i, v := range cats {
		c.index[v] = i
	}
	c.dispatch()
}

// Palette returns the colors of c.
func (c *Color) Palette() []color.Color { return slices.Clone(c.palette) }

// Scale returns the color of cat.
func (c *Color) Scale(cat string) color.Color {
	i, ok := c.index[cat]
	if !ok {
		i = len(c.domain)
		c.domain = append(c.domain, cat)
		c.index[cat] = i
	}
	return c.palette[i%len(c.palette)]
}

// Apply implements Scale.
func (c *Color) Apply(v any) any { return c.Scale(gridplot.ToString(v)) }

// ExtentOf implements Scale.
func (c *Color) ExtentOf(values []any) []any {
	return (&Category{}).ExtentOf(values)
}

// AutoDomain implements Scale.
func (c *Color) AutoDomain() {
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
func (c *Color) AutoDomainIfAutomatic() {
	if c.automatic {
		c.AutoDomain()
	}
}

// ----------------------------------------------------------------------------
// InterpolatedColor

// InterpolatedColor maps numbers onto a continuous color map. The position
// inside the domain is computed in the visual space of a transformation.
type InterpolatedColor struct {
	base

	domain   [2]float64
	trans    Transformation
	colorMap palette.ColorMap
}

// NewInterpolatedColor returns a scale using the named color map and scale
// type. Color maps: "bluered", "bluetan", "greenpurple", "greenred",
// "purpleorange", "kindlmann", "blackbody". Scale types: "linear", "log",
// "sqrt", "pow".
func NewInterpolatedColor(colorMap, scaleType string) (*InterpolatedColor, error) {
	cm, err := namedColorMap(colorMap)
	if err != nil {
		return nil, err
	}
	return newInterpolatedColor(cm, scaleType)
}

// NewInterpolatedColorRange interpolates linearly between the given colors.
func NewInterpolatedColorRange(colors []color.Color, scaleType string) (*InterpolatedColor, error) {
	if len(colors) < 2 {
		return nil, gridplot.Invalidf("scale: need at least two colors to interpolate, got %d", len(colors))
	}
	return newInterpolatedColor(&colorRange{colors: slices.Clone(colors), max: 1, alpha: 1}, scaleType)
}

func newInterpolatedColor(cm palette.ColorMap, scaleType string) (*InterpolatedColor, error) {
	var t Transformation
	switch strings.ToLower(scaleType) {
	case "", "linear":
		t = LinearTrans
	case "log":
		t = Log10Trans
	case "sqrt":
		t = SqrtTrans
	case "pow":
		t = PowTrans(2)
	default:
		return nil, gridplot.Invalidf("scale: unknown interpolated color scale type %q", scaleType)
	}
	cm.SetMin(0)
	cm.SetMax(1)
	ic := &InterpolatedColor{domain: [2]float64{0, 1}, trans: t, colorMap: cm}
	ic.base.self = ic
	ic.base.automatic = true
	return ic, nil
}

func namedColorMap(name string) (palette.ColorMap, error) {
	switch strings.ToLower(name) {
	case "", "bluered", "posneg":
		return moreland.SmoothBlueRed(), nil
	case "bluetan":
		return moreland.SmoothBlueTan(), nil
	case "greenpurple":
		return moreland.SmoothGreenPurple(), nil
	case "greenred":
		return moreland.SmoothGreenRed(), nil
	case "purpleorange":
		return moreland.SmoothPurpleOrange(), nil
	case "kindlmann":
		return moreland.Kindlmann(), nil
	case "blackbody":
		return moreland.BlackBody(), nil
	}
	return nil, gridplot.Invalidf("scale: unknown color map %q", name)
}

// Domain returns the current domain.
func (ic *InterpolatedColor) Domain() (float64, float64) { return ic.domain[0], ic.domain[1] }

// SetDomain pins the domain.
func (ic *InterpolatedColor) SetDomain(a, b float64) error {
	if !ic.trans.valid(a) || !ic.trans.valid(b) {
		return gridplot.Invalidf("scale: invalid color domain [%v, %v]", a, b)
	}
	ic.automatic = false
	ic.setDomain(a, b)
	return nil
}

func (ic *InterpolatedColor) setDomain(a, b float64) {
	if ic.domain[0] == a && ic.domain[1] == b {
		return
	}
	ic.domain = [2]float64{a, b}
	ic.dispatch()
}

// Scale returns the color for x.
func (ic *InterpolatedColor) Scale(x float64) color.Color {
	u := ic.trans.Map(gridplot.Interval{Min: ic.domain[0], Max: ic.domain[1]},
		gridplot.Interval{Min: 0, Max: 1}, x)
	if math.IsNaN(u) {
		return color.Transparent
	}
	col, err := ic.colorMap.At(gridplot.Clamp(u, 0, 1))
	if err != nil {
		return color.Transparent
	}
	return col
}

// Apply implements Scale.
func (ic *InterpolatedColor) Apply(v any) any {
	f, ok := gridplot.ToFloat(v)
	if !ok {
		return color.Transparent
	}
	return ic.Scale(f)
}

// ExtentOf implements Scale.
func (ic *InterpolatedColor) ExtentOf(values []any) []any {
	iv := gridplot.UnsetInterval()
	for _, v := range values {
		if f, ok := gridplot.ToFloat(v); ok && ic.trans.valid(f) {
			iv.Update(f)
		}
	}
	if !iv.IsSet() {
		return nil
	}
	return []any{iv.Min, iv.Max}
}

// AutoDomain implements Scale. The domain is the plain union of all
// extents; color scales are neither padded nor rounded.
func (ic *InterpolatedColor) AutoDomain() {
	ic.automatic = true
	iv := gridplot.UnsetInterval()
	for _, e := range ic.allExtents() {
		for _, v := range e {
			if f, ok := gridplot.ToFloat(v); ok && ic.trans.valid(f) {
				iv.Update(f)
			}
		}
	}
	if !iv.IsSet() {
		ic.setDomain(0, 1)
		return
	}
	ic.setDomain(iv.Min, iv.Max)
}

// AutoDomainIfAutomatic implements Scale.
func (ic *InterpolatedColor) AutoDomainIfAutomatic() {
	if ic.automatic {
		ic.AutoDomain()
	}
}

// ColorMap returns the underlying color map.
func (ic *InterpolatedColor) ColorMap() palette.ColorMap { return ic.colorMap }

// colorRange is a palette.ColorMap interpolating linearly in RGB between
// equidistant colors.
type colorRange struct {
	colors   []color.Color
	min, max float64
	alpha    float64
}

func (cr *colorRange) At(v float64) (color.Color, error) {
	if v < cr.min || v > cr.max || cr.min >= cr.max {
		return nil, palette.ErrOverflow
	}
	u := (v - cr.min) / (cr.max - cr.min) * float64(len(cr.colors)-1)
	i := int(math.Floor(u))
	if i >= len(cr.colors)-1 {
		i = len(cr.colors) - 2
	}
	f := u - float64(i)
	r0, g0, b0, _ := cr.colors[i].RGBA()
	r1, g1, b1, _ := cr.colors[i+1].RGBA()
	mix := func(a, b uint32) uint16 { return uint16(float64(a)*(1-f) + float64(b)*f) }
	return color.NRGBA64{R: mix(r0, r1), G: mix(g0, g1), B: mix(b0, b1), A: uint16(cr.alpha * 0xffff)}, nil
}

func (cr *colorRange) Max() float64          { return cr.max }
func (cr *colorRange) SetMax(v float64)      { cr.max = v }
func (cr *colorRange) Min() float64          { return cr.min }
func (cr *colorRange) SetMin(v float64)      { cr.min = v }
func (cr *colorRange) Alpha() float64        { return cr.alpha }
func (cr *colorRange) SetAlpha(alpha float64) { cr.alpha = alpha }

func (cr *colorRange) Palette(n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := range colors {
		v := cr.min
		if n > 1 {
			v += (cr.max - cr.min) * float64(i) / float64(n-1)
		}
		colors[i], _ = cr.At(v)
	}
	return colorList(colors)
}

type colorList []color.Color

func (c colorList) Colors() []color.Color { return c }
