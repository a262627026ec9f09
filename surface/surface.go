// Package surface provides the render tree components draw into.
//
// A Node has an origin relative to its parent, a size and a list of
// drawing operations in node-local pixel coordinates (x to the right,
// y downwards). Components own one node each and rewrite its operations
// on every render. The tree can be painted onto any gonum draw.Canvas.
package surface

import (
	"image/color"
	"slices"
	"time"

	"github.com/vdobler/gridplot"
	"gonum.org/v1/plot/vg/draw"
)

// A Node is one element of the render tree.
type Node struct {
	Name   string
	Origin gridplot.Point
	Width  float64
	Height float64
	Hidden bool

	parent   *Node
	children []*Node
	ops      []Op
}

// New returns an empty root node of the given size.
func New(name string, width, height float64) *Node {
	return &Node{Name: name, Width: width, Height: height}
}

// AddChild appends a new child named name to n.
func (n *Node) AddChild(name string) *Node {
	c := &Node{Name: name}
	n.Append(c)
	return c
}

// Append adds c as the topmost child of n, detaching it from its previous
// parent.
func (n *Node) Append(c *Node) {
	c.Remove()
	c.parent = n
	n.children = append(n.children, c)
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// Parent returns the parent of n or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the children of n in paint order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// SetBounds positions n inside its parent.
func (n *Node) SetBounds(origin gridplot.Point, width, height float64) {
	n.Origin, n.Width, n.Height = origin, width, height
}

// Bounds returns the bounds of n relative to its parent.
func (n *Node) Bounds() gridplot.Bounds {
	return gridplot.Bounds{Origin: n.Origin, Size: gridplot.Size{Width: n.Width, Height: n.Height}}
}

// AbsoluteOrigin returns the origin of n in root coordinates.
func (n *Node) AbsoluteOrigin() gridplot.Point {
	var p gridplot.Point
	for m := n; m != nil; m = m.parent {
		p = p.Add(m.Origin)
	}
	return p
}

// Add appends drawing operations to n.
func (n *Node) Add(ops ...Op) { n.ops = append(n.ops, ops...) }

// Ops returns the drawing operations of n.
func (n *Node) Ops() []Op { return slices.Clone(n.ops) }

// Clear drops all drawing operations of n. Children are kept.
func (n *Node) Clear() { n.ops = n.ops[:0] }

// Find returns the first node named name in depth first order.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(m *Node, _ gridplot.Point) bool {
		if found != nil {
			return false
		}
		if m.Name == name {
			found = m
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants depth first. The origin passed to
// visit is the node's origin in the coordinates of the node Walk was
// called on. Returning false skips the children of the visited node.
func (n *Node) Walk(visit func(m *Node, origin gridplot.Point) bool) {
	n.walk(gridplot.Point{}, visit)
}

func (n *Node) walk(parentOrigin gridplot.Point, visit func(*Node, gridplot.Point) bool) {
	o := parentOrigin.Add(n.Origin)
	if !visit(n, o) {
		return
	}
	for _, c := range n.children {
		c.walk(o, visit)
	}
}

// ----------------------------------------------------------------------------
// Operations

// An Op is a drawing operation in node-local coordinates. Start is the
// delay after which an animated renderer would show the operation.
type Op interface {
	paint(c draw.Canvas, tr func(gridplot.Point) gridplot.Point)
	start() time.Duration
}

// Rect is a filled and optionally outlined rectangle.
type Rect struct {
	Min    gridplot.Point // top-left corner
	Width  float64
	Height float64
	Fill   color.Color
	Line   draw.LineStyle
	Start  time.Duration
}

// Path is an open polyline.
type Path struct {
	Points []gridplot.Point
	Line   draw.LineStyle
	Start  time.Duration
}

// Polygon is a filled closed polygon.
type Polygon struct {
	Points []gridplot.Point
	Fill   color.Color
	Start  time.Duration
}

// Glyph is a symbol centred at Center.
type Glyph struct {
	Center gridplot.Point
	Style  draw.GlyphStyle
	Start  time.Duration
}

// Text is a string anchored at At. The alignment and rotation of Style
// are relative to the anchor.
type Text struct {
	At    gridplot.Point
	Text  string
	Style draw.TextStyle
	Start time.Duration
}

func (r Rect) start() time.Duration    { return r.Start }
func (p Path) start() time.Duration    { return p.Start }
func (p Polygon) start() time.Duration { return p.Start }
func (g Glyph) start() time.Duration   { return g.Start }
func (t Text) start() time.Duration    { return t.Start }

// StartOf returns the start delay of op.
func StartOf(op Op) time.Duration { return op.start() }
