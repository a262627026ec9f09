package component

import (
	"log/slog"
	"strings"

	"github.com/vdobler/gridplot"
)

// RenderPolicy decides when queued work is flushed.
type RenderPolicy int

const (
	// Immediate flushes synchronously on every request.
	Immediate RenderPolicy = iota
	// Deferred flushes on the next Tick or when the scheduler runs.
	Deferred
)

func (p RenderPolicy) String() string {
	switch p {
	case Immediate:
		return "immediate"
	case Deferred:
		return "deferred"
	}
	return "unknown"
}

// ParseRenderPolicy parses "immediate" or "deferred".
func ParseRenderPolicy(s string) (RenderPolicy, error) {
	switch strings.ToLower(s) {
	case "immediate":
		return Immediate, nil
	case "deferred":
		return Deferred, nil
	}
	return Immediate, gridplot.Invalidf("component: unknown render policy %q", s)
}

// maxFlushRounds bounds how often Immediate re-flushes work queued
// during a flush.
const maxFlushRounds = 8

// orderedSet is an insertion ordered set of components.
type orderedSet struct {
	list []Component
	seen map[Component]bool
}

func (s *orderedSet) add(c Component) bool {
	if s.seen == nil {
		s.seen = make(map[Component]bool)
	}
	if s.seen[c] {
		return false
	}
	s.seen[c] = true
	s.list = append(s.list, c)
	return true
}

func (s *orderedSet) len() int { return len(s.list) }

func (s *orderedSet) take() []Component {
	l := s.list
	s.list, s.seen = nil, nil
	return l
}

// A RenderController batches layout and render requests of one Root.
// Requests are coalesced by component identity and processed in the
// order of their first registration.
type RenderController struct {
	policy    RenderPolicy
	scheduler func(func())
	logger    *slog.Logger

	layout    orderedSet
	render    orderedSet
	scheduled bool
	rendering bool // inside the render phase of a flush
	flushing  bool
	held      int // nesting depth of hold

	// layoutFn lays out a queued top level component.
	layoutFn func(Component)
}

func newRenderController(policy RenderPolicy, scheduler func(func()), logger *slog.Logger, layoutFn func(Component)) *RenderController {
	return &RenderController{
		policy:    policy,
		scheduler: scheduler,
		logger:    logger,
		layoutFn:  layoutFn,
	}
}

// Policy returns the render policy.
func (rc *RenderController) Policy() RenderPolicy { return rc.policy }

// SetPolicy changes the render policy. Switching to Immediate flushes
// pending work.
func (rc *RenderController) SetPolicy(p RenderPolicy) {
	rc.policy = p
	if p == Immediate && rc.Pending() {
		rc.Flush()
	}
}

// Pending reports whether work is queued.
func (rc *RenderController) Pending() bool {
	return rc.layout.len() > 0 || rc.render.len() > 0
}

// RegisterToRender queues c for rendering.
func (rc *RenderController) RegisterToRender(c Component) {
	if rc.rendering {
		rc.logger.Debug("component: render requested during flush, deferring to next round",
			"component", c.base().name)
	}
	rc.render.add(c)
	rc.request()
}

// RegisterToComputeLayout queues c for layout and rendering.
func (rc *RenderController) RegisterToComputeLayout(c Component) {
	rc.layout.add(c)
	rc.request()
}

// hold postpones flushing until the returned release has been called.
// Requests made in between are flushed on release. Anchoring a subtree
// holds the controller, so no layout sees a partly anchored tree.
func (rc *RenderController) hold() (release func()) {
	rc.held++
	return func() {
		rc.held--
		if rc.held == 0 && rc.Pending() {
			rc.request()
		}
	}
}

func (rc *RenderController) request() {
	if rc.flushing || rc.held > 0 {
		return
	}
	switch rc.policy {
	case Immediate:
		rc.Flush()
	case Deferred:
		if rc.scheduled {
			return
		}
		rc.scheduled = true
		if rc.scheduler != nil {
			rc.scheduler(rc.Flush)
		}
	}
}

// Tick flushes work queued under the Deferred policy.
func (rc *RenderController) Tick() {
	if rc.scheduled || rc.Pending() {
		rc.Flush()
	}
}

// Flush lays out the queued components, then renders every queued
// component and the descendants of queued containers once. Components
// failing to render are logged and queued again. Work queued while
// rendering is handled by the next round; the Immediate policy runs that
// round right away.
func (rc *RenderController) Flush() {
	if rc.flushing {
		return
	}
	rc.flushing = true
	defer func() { rc.flushing = false }()
	rc.scheduled = false

	for round := 0; round < maxFlushRounds && rc.Pending(); round++ {
		failed := rc.flushOnce()
		// Failures alone wait for the next request.
		idle := !rc.Pending()
		for _, c := range failed {
			rc.render.add(c)
		}
		if rc.policy != Immediate || idle {
			break
		}
	}
	if rc.Pending() && rc.policy == Deferred && rc.scheduler != nil {
		rc.scheduled = true
		rc.scheduler(rc.Flush)
	}
}

func (rc *RenderController) flushOnce() (failed []Component) {
	for _, c := range rc.layout.take() {
		rc.layoutFn(c)
		rc.render.add(c)
	}

	queue := orderedSet{}
	for _, c := range rc.render.take() {
		addWithDescendants(&queue, c)
	}

	rc.rendering = true
	defer func() { rc.rendering = false }()
	for _, c := range queue.list {
		if !c.base().IsAnchored() {
			continue
		}
		if err := c.RenderImmediately(); err != nil {
			rc.logger.Warn("component: render failed", "component", c.base().name, "err", err)
			failed = append(failed, c)
		}
	}
	return failed
}

func addWithDescendants(s *orderedSet, c Component) {
	s.add(c)
	if cont, ok := c.(Container); ok {
		for _, child := range cont.Components() {
			addWithDescendants(s, child)
		}
	}
}

// clear drops all queued work.
func (rc *RenderController) clear() {
	rc.layout.take()
	rc.render.take()
	rc.scheduled = false
}
