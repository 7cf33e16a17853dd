package reactivity_test

import (
	"testing"

	"github.com/delaneyj/treeparty/reactivity"
	"github.com/stretchr/testify/assert"
)

// should pause tracking
func TestShouldPauseTracking(t *testing.T) {
	rs := newSystem(t)

	src := reactivity.Ref(rs, 0)
	c := reactivity.Computed(rs, func() any {
		rs.PauseTracking()
		value := src.Value()
		rs.ResetTracking()
		return value
	})
	assert.Equal(t, 0, c.Value())

	src.SetValue(1)
	assert.Equal(t, 0, c.Value())
}

// should not subscribe reads made inside Untracked
func TestUntracked(t *testing.T) {
	rs := newSystem(t)
	obj := reactivity.Reactive(rs, object(map[string]any{"a": 1, "b": 1}))

	runs := 0
	mustEffect(t, rs, func() {
		runs++
		obj.Get("a")
		rs.Untracked(func() { obj.Get("b") })
		obj.Get("a")
	})

	obj.Set("b", 2)
	assert.Equal(t, 1, runs)
	obj.Set("a", 2)
	assert.Equal(t, 2, runs)
}

// should resume tracking when the stack is empty
func TestResetTrackingOnEmptyStack(t *testing.T) {
	rs := newSystem(t)
	obj := reactivity.Reactive(rs, object(map[string]any{"a": 1}))

	rs.ResetTracking()
	runs := 0
	mustEffect(t, rs, func() {
		runs++
		obj.Get("a")
	})
	obj.Set("a", 2)
	assert.Equal(t, 2, runs)
}
