package gridplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	X      float64
	Label  string
	hidden int
}

func TestAccessorResolve(t *testing.T) {
	ctx := Context{DatasetKey: "k"}

	m := map[string]any{"x": 3.0, "y": "b"}
	assert.Equal(t, 3.0, Field("x").Resolve()(m, 0, ctx))
	assert.Nil(t, Field("z").Resolve()(m, 0, ctx))

	s := sample{X: 2, Label: "two", hidden: 1}
	assert.Equal(t, 2.0, Field("X").Resolve()(s, 0, ctx))
	assert.Equal(t, "two", Field("Label").Resolve()(&s, 0, ctx))
	assert.Nil(t, Field("hidden").Resolve()(s, 0, ctx))
	assert.Nil(t, Field("X").Resolve()((*sample)(nil), 0, ctx))

	assert.Equal(t, 1.5, Field("v").Resolve()(map[string]float64{"v": 1.5}, 0, ctx))

	idx := Func(func(d any, i int, c Context) any { return c.DatasetKey + string(rune('a'+i)) })
	assert.Equal(t, "kc", idx.Resolve()(nil, 2, ctx))

	c := Constant(7)
	assert.Equal(t, 7, c.Resolve()(m, 5, ctx))
	v, ok := c.IsConstant()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	_, ok = Field("x").IsConstant()
	assert.False(t, ok)
}

func TestDatasetSubscriptions(t *testing.T) {
	ds := Records(map[string]any{"x": 1})
	var calls []string
	s1 := ds.OnUpdate(func(*Dataset) { calls = append(calls, "one") })
	ds.OnUpdate(func(d *Dataset) { calls = append(calls, "two") })

	ds.SetData([]any{1, 2})
	assert.Equal(t, []string{"one", "two"}, calls)
	assert.Equal(t, 2, ds.Len())

	ds.OffUpdate(s1)
	ds.OffUpdate(s1) // no-op
	ds.OffUpdate(Subscription(999))
	calls = nil
	ds.SetMetadata("meta")
	assert.Equal(t, []string{"two"}, calls)
	assert.Equal(t, "meta", ds.Metadata())
}

func TestCallbackSetRemoveWhileIterating(t *testing.T) {
	var cs CallbackSet[func()]
	var s2 Subscription
	n := 0
	cs.Add(func() { n++; cs.Remove(s2) })
	s2 = cs.Add(func() { n += 10 })
	cs.Each(func(f func()) { f() })
	assert.Equal(t, 1, n, "removed callback is not called")
	assert.Equal(t, 1, cs.Len())

	var added bool
	cs.Add(func() { cs.Add(func() { added = true }) })
	n = 0
	cs.Each(func(f func()) { f() })
	assert.Equal(t, 1, n)
	assert.False(t, added, "added callback waits for the next round")
	cs.Each(func(f func()) { f() })
	assert.True(t, added)
}
