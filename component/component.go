// Package component implements the layout tree of a chart.
//
// Components negotiate space top down: a container offers its children a
// width and height, the children answer with a SpaceRequest and the
// container finally assigns an origin and a size with ComputeLayout.
// Fixed-size components only take what they request; all others fill
// the offered space. Leaves draw into their own surface node when the
// RenderController of their Root calls RenderImmediately.
package component

import (
	"fmt"
	"strings"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
)

// Component is a rectangular element of a chart.
type Component interface {
	// Anchor attaches the component below the surface node parent of
	// root r.
	Anchor(r *Root, parent *surface.Node)
	// Detach removes the component from its parent container and from
	// the surface tree.
	Detach()

	// RequestedSpace returns the minimum space needed if w x h is offered.
	RequestedSpace(w, h float64) gridplot.SpaceRequest
	// ComputeLayout assigns the space w x h at origin (relative to the
	// parent) and lays out children.
	ComputeLayout(origin gridplot.Point, w, h float64)
	FixedWidth() bool
	FixedHeight() bool

	// Render queues the component for rendering.
	Render()
	// RenderImmediately redraws the component's surface node.
	RenderImmediately() error
	// Redraw queues a new layout of the whole tree and a render.
	Redraw()
	// Destroy detaches the component and drops all subscriptions.
	Destroy()

	Origin() gridplot.Point
	OriginToRoot() gridplot.Point
	Width() float64
	Height() float64
	Parent() Container

	// Above returns a Group showing c below this component.
	Above(c Component) Component
	// Below returns a Group showing c above this component.
	Below(c Component) Component

	base() *Base
}

// Container is a Component owning an ordered list of children.
type Container interface {
	Component
	Components() []Component
	Has(c Component) bool
	Remove(c Component)
}

// Base implements the bookkeeping common to all components. Concrete
// components embed Base and call Init with themselves.
type Base struct {
	this   Component
	name   string
	root   *Root
	node   *surface.Node
	parent Container

	origin        gridplot.Point
	width, height float64
	xAlign        float64
	yAlign        float64
	xOffset       float64
	yOffset       float64
	fixedWidth    bool
	fixedHeight   bool
	destroyed     bool
}

// Init sets the concrete component this and the surface node name.
func (b *Base) Init(this Component, name string) {
	b.this = this
	b.name = name
}

func (b *Base) base() *Base { return b }

// Name returns the surface node name of the component.
func (b *Base) Name() string { return b.name }

// Root returns the root the component is anchored to or nil.
func (b *Base) Root() *Root { return b.root }

// Node returns the surface node or nil if the component was never
// anchored.
func (b *Base) Node() *surface.Node { return b.node }

// IsAnchored reports whether the component is attached to a root.
func (b *Base) IsAnchored() bool { return b.root != nil }

// Anchor implements Component.
func (b *Base) Anchor(r *Root, parent *surface.Node) {
	if b.destroyed {
		panic(fmt.Sprintf("component: cannot anchor destroyed %s", b.name))
	}
	if b.node == nil {
		b.node = surface.New(b.name, 0, 0)
	}
	parent.Append(b.node)
	b.root = r
}

// Detach implements Component.
func (b *Base) Detach() {
	if b.parent != nil {
		// Remove calls Detach again with the parent cleared.
		b.parent.Remove(b.this)
		return
	}
	if b.node != nil {
		b.node.Remove()
	}
	b.root = nil
}

// Destroy implements Component.
func (b *Base) Destroy() {
	b.this.Detach()
	b.destroyed = true
}

// RequestedSpace implements Component. The default asks for nothing.
func (b *Base) RequestedSpace(w, h float64) gridplot.SpaceRequest {
	return gridplot.SpaceRequest{}
}

// ComputeLayout implements Component.
func (b *Base) ComputeLayout(origin gridplot.Point, w, h float64) {
	Place(b.this, origin, w, h)
}

// FixedWidth implements Component.
func (b *Base) FixedWidth() bool { return b.fixedWidth }

// FixedHeight implements Component.
func (b *Base) FixedHeight() bool { return b.fixedHeight }

// SetFixedSize marks the component as taking only its requested width
// and/or height.
func (b *Base) SetFixedSize(width, height bool) {
	b.fixedWidth, b.fixedHeight = width, height
}

// Render implements Component.
func (b *Base) Render() {
	if b.root == nil || b.destroyed {
		return
	}
	b.root.controller.RegisterToRender(b.this)
}

// RenderImmediately implements Component. The default draws nothing.
func (b *Base) RenderImmediately() error { return nil }

// Redraw implements Component. The request bubbles up to the top
// component which is then laid out again.
func (b *Base) Redraw() {
	if b.root == nil || b.destroyed {
		return
	}
	if b.parent != nil {
		b.parent.Redraw()
		return
	}
	b.root.controller.RegisterToComputeLayout(b.this)
}

// Origin implements Component.
func (b *Base) Origin() gridplot.Point { return b.origin }

// OriginToRoot implements Component.
func (b *Base) OriginToRoot() gridplot.Point {
	p := b.origin
	for c := b.parent; c != nil; c = c.Parent() {
		p = p.Add(c.Origin())
	}
	return p
}

// Width implements Component.
func (b *Base) Width() float64 { return b.width }

// Height implements Component.
func (b *Base) Height() float64 { return b.height }

// Bounds returns the bounds relative to the parent.
func (b *Base) Bounds() gridplot.Bounds {
	return gridplot.Bounds{Origin: b.origin, Size: gridplot.Size{Width: b.width, Height: b.height}}
}

// Parent implements Component.
func (b *Base) Parent() Container { return b.parent }

// Above implements Component.
func (b *Base) Above(c Component) Component { return merge(b.this, c, false) }

// Below implements Component.
func (b *Base) Below(c Component) Component { return merge(b.this, c, true) }

// SetXAlignment positions the component horizontally inside the offered
// space if it is narrower: "left", "center" or "right".
func (b *Base) SetXAlignment(align string) error {
	p, ok := map[string]float64{"left": 0, "center": 0.5, "right": 1}[strings.ToLower(align)]
	if !ok {
		return gridplot.Invalidf("component: unsupported x alignment %q", align)
	}
	b.xAlign = p
	b.this.Redraw()
	return nil
}

// SetYAlignment positions the component vertically inside the offered
// space if it is lower: "top", "center" or "bottom".
func (b *Base) SetYAlignment(align string) error {
	p, ok := map[string]float64{"top": 0, "center": 0.5, "bottom": 1}[strings.ToLower(align)]
	if !ok {
		return gridplot.Invalidf("component: unsupported y alignment %q", align)
	}
	b.yAlign = p
	b.this.Redraw()
	return nil
}

// SetOffset shifts the component by (dx, dy) after alignment.
func (b *Base) SetOffset(dx, dy float64) {
	b.xOffset, b.yOffset = dx, dy
	b.this.Redraw()
}

// measurer returns the measurer of the root or the default one.
func (b *Base) measurer() Measurer {
	if b.root != nil && b.root.measurer != nil {
		return b.root.measurer
	}
	return defaultMeasurer
}

// style returns the style of the root or the default one.
func (b *Base) style() *Style {
	if b.root != nil {
		return &b.root.style
	}
	return defaultStyle()
}

// Place is the standard layout step: it sizes c from the offer w x h,
// aligns it inside the offered space and updates its surface node.
// Placing a component which is not anchored panics.
func Place(c Component, origin gridplot.Point, w, h float64) {
	b := c.base()
	if b.root == nil {
		panic(fmt.Sprintf("component: layout of %s before anchoring", b.name))
	}
	req := c.RequestedSpace(w, h)
	width, height := w, h
	if c.FixedWidth() {
		width = min(w, req.MinWidth)
	}
	if c.FixedHeight() {
		height = min(h, req.MinHeight)
	}
	b.width, b.height = width, height
	b.origin = gridplot.Point{
		X: origin.X + (w-width)*b.xAlign + b.xOffset,
		Y: origin.Y + (h-height)*b.yAlign + b.yOffset,
	}
	b.node.SetBounds(b.origin, b.width, b.height)
}

// ToLocal converts the root coordinate p into the coordinates of c.
func ToLocal(c Component, p gridplot.Point) gridplot.Point {
	o := c.OriginToRoot()
	return gridplot.Point{X: p.X - o.X, Y: p.Y - o.Y}
}
