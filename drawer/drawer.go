// Package drawer turns projected attributes of data into surface
// operations.
//
// A plot hands a drawer its data and a list of draw steps. Each step maps
// attribute names ("x", "y", "width", "fill", ...) to projectors yielding
// pixel or color values and carries an Animator. Steps run one after the
// other; the operations written to the surface carry the attributes of
// the final step and the start delay of that step.
package drawer

import (
	"image/color"
	"math"
	"time"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
)

// A Projector yields the scaled value of an attribute.
type Projector func(datum any, index int, ctx gridplot.Context) any

// AttrToProjector maps attribute names to projectors.
type AttrToProjector map[string]Projector

// A DrawStep describes one stage of drawing a dataset.
type DrawStep struct {
	Attrs    AttrToProjector
	Animator Animator
}

// Apply binds the dataset context to the projectors of s.
func (s DrawStep) Apply(ctx gridplot.Context) AppliedDrawStep {
	attrs := make(map[string]AppliedProjector, len(s.Attrs))
	for name, p := range s.Attrs {
		p := p
		attrs[name] = func(datum any, index int) any { return p(datum, index, ctx) }
	}
	a := s.Animator
	if a == nil {
		a = Null{}
	}
	return AppliedDrawStep{Attrs: attrs, Animator: a}
}

// An AppliedProjector is a Projector bound to a dataset.
type AppliedProjector func(datum any, index int) any

// An AppliedDrawStep is a DrawStep bound to a dataset.
type AppliedDrawStep struct {
	Attrs    map[string]AppliedProjector
	Animator Animator
}

// Float returns attribute attr of the datum as number. Missing attributes
// and non-numeric values yield NaN.
func (s AppliedDrawStep) Float(attr string, datum any, index int) float64 {
	p, ok := s.Attrs[attr]
	if !ok {
		return math.NaN()
	}
	return gridplot.Float(p(datum, index))
}

// FloatOr is like Float but returns def for missing attributes.
func (s AppliedDrawStep) FloatOr(attr string, datum any, index int, def float64) float64 {
	if _, ok := s.Attrs[attr]; !ok {
		return def
	}
	return s.Float(attr, datum, index)
}

// Color returns attribute attr as color or def.
func (s AppliedDrawStep) Color(attr string, datum any, index int, def color.Color) color.Color {
	p, ok := s.Attrs[attr]
	if !ok {
		return def
	}
	if c, ok := p(datum, index).(color.Color); ok && c != nil {
		return c
	}
	return def
}

// A Drawer draws one dataset of a plot into a surface node of its own.
type Drawer interface {
	// Setup creates the node of the drawer below parent.
	Setup(parent *surface.Node)

	// Remove deletes the node of the drawer.
	Remove()

	// Draw replaces the operations of the node and returns the total
	// animation time of all steps.
	Draw(data []any, steps []AppliedDrawStep) time.Duration

	// PixelPoint returns the position of a datum as last drawn.
	PixelPoint(datum any, index int) gridplot.Point

	// Visible reports whether element index was drawn.
	Visible(index int) bool

	// Node returns the node of the drawer or nil before Setup.
	Node() *surface.Node
}

// base implements the step bookkeeping shared by all drawers.
type base struct {
	key     string
	node    *surface.Node
	last    AppliedDrawStep
	visible []bool
}

func (b *base) Setup(parent *surface.Node) {
	if b.node == nil {
		b.node = surface.New(b.key, parent.Width, parent.Height)
	}
	parent.Append(b.node)
}

func (b *base) Remove() {
	if b.node != nil {
		b.node.Remove()
	}
}

func (b *base) Node() *surface.Node { return b.node }

func (b *base) Visible(index int) bool {
	return index >= 0 && index < len(b.visible) && b.visible[index]
}

// prepare resets the node to the size of its parent and returns the
// final step, its start and the total time of all steps for n animated
// elements.
func (b *base) prepare(steps []AppliedDrawStep, n int) (final AppliedDrawStep, start, total time.Duration) {
	if b.node != nil {
		b.node.Clear()
		if p := b.node.Parent(); p != nil {
			b.node.Width, b.node.Height = p.Width, p.Height
		}
	}
	for i, s := range steps {
		if s.Animator == nil {
			s.Animator = Null{}
			steps[i] = s
		}
		if i == len(steps)-1 {
			start = total
		}
		total += s.Animator.Timing(n)
	}
	if len(steps) > 0 {
		final = steps[len(steps)-1]
	} else {
		final = AppliedDrawStep{Animator: Null{}}
	}
	b.last = final
	return final, start, total
}

func (b *base) add(ops ...surface.Op) {
	if b.node != nil {
		b.node.Add(ops...)
	}
}

// point returns the x and y attribute of a datum under s.
func point(s AppliedDrawStep, datum any, index int) (gridplot.Point, bool) {
	p := gridplot.Point{X: s.Float("x", datum, index), Y: s.Float("y", datum, index)}
	return p, gridplot.IsValidNumber(p.X) && gridplot.IsValidNumber(p.Y)
}
