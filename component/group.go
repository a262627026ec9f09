package component

import (
	"slices"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
)

// A Group overlays its children on the same space. Earlier children are
// drawn below later ones.
type Group struct {
	Base
	children []Component
}

// NewGroup returns a Group of cs in z-order, bottom first.
func NewGroup(cs ...Component) *Group {
	g := &Group{}
	g.Init(g, "group")
	for _, c := range cs {
		g.Append(c)
	}
	return g
}

// Components implements Container.
func (g *Group) Components() []Component { return slices.Clone(g.children) }

// Has implements Container.
func (g *Group) Has(c Component) bool { return slices.Contains(g.children, c) }

// Append puts c on top of all other children.
func (g *Group) Append(c Component) {
	if c == nil {
		return
	}
	adopt(g, c)
	g.children = append(g.children, c)
	g.attachChild(c)
}

// Prepend puts c below all other children.
func (g *Group) Prepend(c Component) {
	if c == nil {
		return
	}
	adopt(g, c)
	g.children = slices.Insert(g.children, 0, c)
	g.attachChild(c)
}

func (g *Group) attachChild(c Component) {
	if g.root != nil {
		defer g.root.controller.hold()()
		c.Anchor(g.root, g.node)
		g.syncNodes()
	}
	g.Redraw()
}

// syncNodes orders the surface nodes of the children like the children.
func (g *Group) syncNodes() {
	for _, c := range g.children {
		if n := c.base().node; n != nil && n.Parent() == g.node {
			g.node.Append(n)
		}
	}
}

// Remove implements Container. Removing a non-child is a no-op.
func (g *Group) Remove(c Component) {
	i := slices.Index(g.children, c)
	if i < 0 {
		return
	}
	g.children = slices.Delete(g.children, i, i+1)
	c.base().parent = nil
	c.Detach()
	g.Redraw()
}

// Anchor implements Component.
func (g *Group) Anchor(r *Root, parent *surface.Node) {
	g.Base.Anchor(r, parent)
	for _, c := range g.children {
		c.Anchor(r, g.node)
	}
	g.syncNodes()
}

// RequestedSpace implements Component: the largest request of all children.
func (g *Group) RequestedSpace(w, h float64) gridplot.SpaceRequest {
	var req gridplot.SpaceRequest
	for _, c := range g.children {
		r := c.RequestedSpace(w, h)
		req.MinWidth = max(req.MinWidth, r.MinWidth)
		req.MinHeight = max(req.MinHeight, r.MinHeight)
	}
	return req
}

// ComputeLayout implements Component. Every child gets the full space of g.
func (g *Group) ComputeLayout(origin gridplot.Point, w, h float64) {
	Place(g, origin, w, h)
	for _, c := range g.children {
		c.ComputeLayout(gridplot.Point{}, g.width, g.height)
	}
}

// FixedWidth implements Component: a group is fixed if all children are.
func (g *Group) FixedWidth() bool {
	for _, c := range g.children {
		if !c.FixedWidth() {
			return false
		}
	}
	return true
}

// FixedHeight implements Component.
func (g *Group) FixedHeight() bool {
	for _, c := range g.children {
		if !c.FixedHeight() {
			return false
		}
	}
	return true
}

// Destroy implements Component.
func (g *Group) Destroy() {
	for _, c := range slices.Clone(g.children) {
		c.Destroy()
	}
	g.Base.Destroy()
}

// adopt makes container the parent of c, detaching c from a previous
// parent. Adopting the container itself or one of its ancestors panics.
func adopt(container Container, c Component) {
	for p := Component(container); p != nil; {
		if p == c {
			panic("component: adding a component to itself or a descendant")
		}
		parent := p.Parent()
		if parent == nil {
			break
		}
		p = parent
	}
	if old := c.Parent(); old != nil {
		old.Remove(c)
	}
	c.base().parent = container
}

// merge combines this and other into one Group. If below is false, other
// is placed below this, otherwise above it.
func merge(this, other Component, below bool) Component {
	tg, thisIsGroup := this.(*Group)
	og, otherIsGroup := other.(*Group)
	switch {
	case thisIsGroup && !otherIsGroup:
		if below {
			tg.Append(other)
		} else {
			tg.Prepend(other)
		}
		return tg
	case !thisIsGroup && otherIsGroup:
		if below {
			og.Prepend(this)
		} else {
			og.Append(this)
		}
		return og
	}
	if below {
		return NewGroup(this, other)
	}
	return NewGroup(other, this)
}
