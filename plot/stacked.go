package plot

import (
	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/drawer"
	"github.com/vdobler/gridplot/scale"
)

// StackedDatum is the stacking result of one datum.
type StackedDatum struct {
	Key    string
	Value  float64
	Offset float64
}

// Stacker stacks the values of all datasets of a plot on top of each
// other, per key and in dataset order. Positive and negative values are
// stacked on separate tracks. Zero values go on the positive track
// unless no value of their dataset is positive.
//
// The results are kept in the plot metadata of each dataset: "offsets"
// maps a key to its offset and "stacked" lists a StackedDatum per datum.
type Stacker struct {
	keyAttr, valueAttr string

	keys     []string
	pos, neg map[string]float64
}

// NewStacker returns a stacker grouping by keyAttr and stacking
// valueAttr.
func NewStacker(keyAttr, valueAttr string) *Stacker {
	return &Stacker{keyAttr: keyAttr, valueAttr: valueAttr}
}

// Keys returns the stacking keys in order of first appearance.
func (s *Stacker) Keys() []string { return s.keys }

// Stack recomputes the offsets of all datasets of p.
func (s *Stacker) Stack(p *Plot) {
	s.keys = nil
	s.pos = make(map[string]float64)
	s.neg = make(map[string]float64)
	keyPr, ok1 := p.Projection(s.keyAttr)
	valPr, ok2 := p.Projection(s.valueAttr)
	if !ok1 || !ok2 {
		return
	}

	seen := make(map[string]bool)
	for _, k := range p.order {
		dk := p.keys[k]
		ctx := dk.context()
		for i, d := range dk.dataset.Data() {
			key := gridplot.ToString(keyPr.raw(d, i, ctx))
			if !seen[key] {
				seen[key] = true
				s.keys = append(s.keys, key)
			}
		}
	}

	for _, k := range p.order {
		dk := p.keys[k]
		ctx := dk.context()
		data := dk.dataset.Data()
		keys := make([]string, len(data))
		values := make([]float64, len(data))
		allNonPositive := true
		for i, d := range data {
			keys[i] = gridplot.ToString(keyPr.raw(d, i, ctx))
			v, ok := gridplot.ToFloat(valPr.raw(d, i, ctx))
			if !ok || !gridplot.IsValidNumber(v) {
				v = 0
			}
			values[i] = v
			if v > 0 {
				allNonPositive = false
			}
		}

		offsets := make(map[string]float64, len(data))
		stacked := make([]StackedDatum, len(data))
		for i, v := range values {
			key := keys[i]
			var off float64
			if v > 0 || v == 0 && !allNonPositive {
				off = s.pos[key]
				s.pos[key] += v
			} else {
				off = s.neg[key]
				s.neg[key] += v
			}
			offsets[key] = off
			stacked[i] = StackedDatum{Key: key, Value: v, Offset: off}
		}
		dk.metadata["offsets"] = offsets
		dk.metadata["stacked"] = stacked
	}
}

// Extent returns [min(negative totals, 0), max(positive totals, 0)].
func (s *Stacker) Extent() [2]float64 {
	var lo, hi float64
	for _, v := range s.neg {
		lo = min(lo, v)
	}
	for _, v := range s.pos {
		hi = max(hi, v)
	}
	return [2]float64{lo, hi}
}

// extent overrides the extent of the value attribute.
func (s *Stacker) extent(attr string) ([]any, bool) {
	if attr != s.valueAttr {
		return nil, false
	}
	if len(s.keys) == 0 {
		return nil, true
	}
	e := s.Extent()
	return []any{e[0], e[1]}, true
}

// stackedAt returns the stacking result of datum i.
func stackedAt(i int, ctx gridplot.Context) (StackedDatum, bool) {
	st, ok := ctx.PlotMetadata["stacked"].([]StackedDatum)
	if !ok || i < 0 || i >= len(st) {
		return StackedDatum{}, false
	}
	return st[i], true
}

// ----------------------------------------------------------------------------
// StackedBar

// StackedBar stacks the bars of all datasets per position.
type StackedBar struct {
	Bar

	stacker *Stacker
}

// NewStackedBar returns a stacked bar plot.
func NewStackedBar(x, y scale.Scale, vertical bool) *StackedBar {
	s := &StackedBar{}
	pos, val := "y", "x"
	if vertical {
		pos, val = "x", "y"
	}
	s.stacker = NewStacker(pos, val)
	s.initBar(s, "stacked-bar", x, y, vertical)
	s.ends = s.stackedEnds
	return s
}

// Stacker returns the stacker of s.
func (s *StackedBar) Stacker() *Stacker { return s.stacker }

func (s *StackedBar) prepare() { s.stacker.Stack(&s.Plot) }

func (s *StackedBar) extent(attr, _ string, _ []any, _ scale.Scale) ([]any, bool) {
	return s.stacker.extent(attr)
}

func (s *StackedBar) stackedEnds(_ any, i int, ctx gridplot.Context) (float64, float64) {
	st, ok := stackedAt(i, ctx)
	if !ok {
		return 0, 0
	}
	return st.Offset + st.Value, st.Offset
}

// ----------------------------------------------------------------------------
// StackedArea

// StackedArea stacks the areas of all datasets along x.
type StackedArea struct {
	Area

	stacker *Stacker
}

// NewStackedArea returns a stacked area plot.
func NewStackedArea(x, y scale.Scale) *StackedArea {
	s := &StackedArea{stacker: NewStacker("x", "y")}
	s.initArea(s, "stacked-area", x, y)
	return s
}

// Stacker returns the stacker of s.
func (s *StackedArea) Stacker() *Stacker { return s.stacker }

func (s *StackedArea) prepare() { s.stacker.Stack(&s.Plot) }

func (s *StackedArea) extent(attr, _ string, _ []any, _ scale.Scale) ([]any, bool) {
	if attr == "y0" {
		attr = "y"
	}
	return s.stacker.extent(attr)
}

// DrawSteps implements Kind.
func (s *StackedArea) DrawSteps() []drawer.DrawStep {
	s.syncDrawLine()
	attrs := s.Projectors()
	stackedPixel := func(top bool) drawer.Projector {
		return func(_ any, i int, ctx gridplot.Context) any {
			st, ok := stackedAt(i, ctx)
			if !ok {
				return nil
			}
			v := st.Offset
			if top {
				v += st.Value
			}
			return s.y.Apply(v)
		}
	}
	attrs["y"] = stackedPixel(true)
	attrs["y0"] = stackedPixel(false)
	return s.xyDrawSteps(attrs, "y", "y0")
}
