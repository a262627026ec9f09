package component

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// relay asks another component to render while it is rendered itself.
type relay struct {
	box
	target Component
}

func newRelay(target Component) *relay {
	r := &relay{target: target}
	r.Init(r, "relay")
	return r
}

func (r *relay) RenderImmediately() error {
	r.rendered++
	r.target.Render()
	return nil
}

func TestParseRenderPolicy(t *testing.T) {
	for _, p := range []RenderPolicy{Immediate, Deferred} {
		got, err := ParseRenderPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParseRenderPolicy("eventually")
	assert.Error(t, err)
}

func TestRenderRequestsAreCoalesced(t *testing.T) {
	root := newTestRoot(t, 100, 100, WithPolicy(Deferred))
	b := newBox("b", 0, 0, false)
	root.RenderTo(b)
	b.Render()
	b.Render()
	assert.True(t, root.Controller().Pending())
	assert.Equal(t, 0, b.rendered)

	root.Tick()
	assert.Equal(t, 1, b.rendered)
	assert.Equal(t, 100.0, b.Width())
	root.Tick()
	assert.Equal(t, 1, b.rendered)
}

func TestRenderContainerRendersDescendantsOnce(t *testing.T) {
	root := newTestRoot(t, 100, 100, WithPolicy(Deferred))
	a, b := newBox("a", 0, 0, false), newBox("b", 0, 0, false)
	g := NewGroup(a, b)
	root.RenderTo(g)
	root.Tick()
	assert.Equal(t, 1, a.rendered)
	assert.Equal(t, 1, b.rendered)

	a.Render()
	g.Render()
	root.Tick()
	assert.Equal(t, 2, a.rendered)
	assert.Equal(t, 2, b.rendered)
}

func TestDeferredScheduler(t *testing.T) {
	var scheduled []func()
	root := newTestRoot(t, 100, 100, WithPolicy(Deferred), WithScheduler(func(f func()) {
		scheduled = append(scheduled, f)
	}))
	b := newBox("b", 0, 0, false)
	root.RenderTo(b)
	b.Render()
	require.Len(t, scheduled, 1)

	scheduled[0]()
	assert.Equal(t, 1, b.rendered)
	assert.False(t, root.Controller().Pending())
	assert.Len(t, scheduled, 1)

	b.Render()
	assert.Len(t, scheduled, 2)
}

func TestRenderDuringFlushRunsInNextRound(t *testing.T) {
	root := newTestRoot(t, 100, 100, WithPolicy(Deferred), quiet)
	target := newBox("target", 0, 0, false)
	r := newRelay(target)
	root.RenderTo(NewGroup(r, target))

	root.Tick()
	assert.Equal(t, 1, r.rendered)
	assert.Equal(t, 1, target.rendered)
	assert.True(t, root.Controller().Pending())

	root.Tick()
	assert.Equal(t, 1, r.rendered)
	assert.Equal(t, 2, target.rendered)
}

func TestImmediateRoundsAreBounded(t *testing.T) {
	root := newTestRoot(t, 100, 100, quiet)
	r := newRelay(nil)
	r.target = r
	root.RenderTo(r)
	assert.Equal(t, maxFlushRounds, r.rendered)
}

func TestFailedRenderIsRetried(t *testing.T) {
	root := newTestRoot(t, 100, 100, quiet)
	b := newBox("b", 0, 0, false)
	b.err = errors.New("not ready")
	root.RenderTo(b)
	assert.Equal(t, 1, b.rendered)
	assert.True(t, root.Controller().Pending())

	b.err = nil
	root.Flush()
	assert.Equal(t, 2, b.rendered)
	assert.False(t, root.Controller().Pending())
}

func TestSwitchToImmediateFlushes(t *testing.T) {
	root := newTestRoot(t, 100, 100, WithPolicy(Deferred))
	b := newBox("b", 0, 0, false)
	root.RenderTo(b)
	assert.Equal(t, 0, b.rendered)
	root.Controller().SetPolicy(Immediate)
	assert.Equal(t, 1, b.rendered)
	assert.Equal(t, Immediate, root.Controller().Policy())
}

func TestDetachedAndDestroyedComponentsAreNotRendered(t *testing.T) {
	root := newTestRoot(t, 100, 100, WithPolicy(Deferred))
	a, b := newBox("a", 0, 0, false), newBox("b", 0, 0, false)
	g := NewGroup(a, b)
	root.RenderTo(g)
	g.Remove(b)
	root.Tick()
	assert.Equal(t, 1, a.rendered)
	assert.Equal(t, 0, b.rendered)

	a.Destroy()
	a.Render()
	root.Tick()
	assert.Equal(t, 1, a.rendered)
	assert.Panics(t, func() { a.Anchor(root, root.Node()) })
}

func TestResize(t *testing.T) {
	root := newTestRoot(t, 100, 100)
	b := newBox("b", 0, 0, false)
	root.RenderTo(b)
	require.NoError(t, root.Resize(300, 50))
	assert.Equal(t, 300.0, b.Width())
	assert.Equal(t, 50.0, b.Height())
	assert.Error(t, root.Resize(0, 10))

	_, err := NewRoot(-1, 10)
	assert.Error(t, err)
}

func TestRootReplacesTop(t *testing.T) {
	root := newTestRoot(t, 100, 100)
	a, b := newBox("a", 0, 0, false), newBox("b", 0, 0, false)
	root.RenderTo(a)
	root.RenderTo(b)
	assert.False(t, a.IsAnchored())
	assert.Equal(t, Component(b), root.Top())
	assert.Len(t, root.Node().Children(), 1)

	root.Destroy()
	assert.Nil(t, root.Top())
	assert.False(t, b.IsAnchored())
}
