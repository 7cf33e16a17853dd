package reactivity_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/delaneyj/treeparty/reactivity"
	"github.com/stretchr/testify/assert"
)

func loggingSystem(t *testing.T) (*reactivity.ReactiveSystem, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	rs := reactivity.CreateReactiveSystem(
		func(from *reactivity.Effect, err error) {
			assert.FailNow(t, err.Error())
		},
		reactivity.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)
	return rs, &buf
}

// should return the same wrapper for the same raw object
func TestWrapperIdentity(t *testing.T) {
	rs := newSystem(t)
	raw := reactivity.NewObject()

	p1 := reactivity.Reactive(rs, raw)
	p2 := reactivity.Reactive(rs, raw)
	assert.Same(t, p1, p2)

	r1 := reactivity.Readonly(rs, raw)
	assert.NotSame(t, p1, r1)
	assert.Same(t, r1, reactivity.Readonly(rs, raw))
	assert.Same(t, raw, reactivity.ToRaw(r1))
	assert.Same(t, raw, p1.Raw())

	arr := reactivity.NewArray()
	assert.Same(t, reactivity.ReactiveArray(rs, arr), reactivity.ReactiveArray(rs, arr))
}

// should wrap nested values lazily with the parent's variant
func TestNestedWrapping(t *testing.T) {
	rs := newSystem(t)
	nested := reactivity.NewObject()
	list := reactivity.NewArray()
	raw := object(map[string]any{"nested": nested, "list": list, "n": 1})

	mutable := reactivity.Reactive(rs, raw)
	assert.True(t, reactivity.IsReactive(mutable.Get("nested")))
	assert.True(t, reactivity.IsReactive(mutable.Get("list")))
	assert.Equal(t, 1, mutable.Get("n"))

	ro := reactivity.Readonly(rs, raw)
	assert.True(t, reactivity.IsReadonly(ro.Get("nested")))
	assert.True(t, reactivity.IsReadonly(ro.Get("list")))

	shallow := reactivity.ShallowReadonly(rs, raw)
	assert.True(t, shallow.IsShallow())
	assert.Same(t, nested, shallow.Get("nested"))
	assert.False(t, reactivity.IsProxy(shallow.Get("nested")))
}

// should reject writes through read-only wrappers with a warning
func TestReadonlyRejectsWrites(t *testing.T) {
	rs, logs := loggingSystem(t)
	raw := object(map[string]any{"foo": 1})
	ro := reactivity.Readonly(rs, raw)

	ro.Set("foo", 2)
	ro.Delete("foo")
	assert.Equal(t, 1, ro.Get("foo"))
	assert.Contains(t, logs.String(), "readonly")
	assert.Contains(t, logs.String(), "key=foo")

	arr := reactivity.ReadonlyArray(rs, reactivity.NewArray(1))
	arr.Push(2)
	arr.Set(0, 5)
	assert.Equal(t, []any{1}, arr.Raw().Items())
}

// should track reads through read-only wrappers
func TestReadonlyTracksReads(t *testing.T) {
	rs := newSystem(t)
	raw := object(map[string]any{"foo": 1})
	ro := reactivity.Readonly(rs, raw)
	mutable := reactivity.Reactive(rs, raw)

	var dummy any
	mustEffect(t, rs, func() { dummy = ro.Get("foo") })
	mutable.Set("foo", 2)
	assert.Equal(t, 2, dummy)
}

// should store the raw form of wrapped values
func TestSetStoresRaw(t *testing.T) {
	rs := newSystem(t)
	inner := reactivity.NewObject()
	outer := reactivity.Reactive(rs, reactivity.NewObject())

	outer.Set("inner", reactivity.Reactive(rs, inner))
	v, _ := outer.Raw().Get("inner")
	assert.Same(t, inner, v)
}

// should range over keys in insertion order
func TestObjectRange(t *testing.T) {
	rs := newSystem(t)
	obj := reactivity.Reactive(rs, reactivity.NewObject())
	obj.Set("z", 1)
	obj.Set("a", 2)

	var keys []string
	obj.Range(func(key string, value any) bool {
		keys = append(keys, key)
		return true
	})
	assert.Equal(t, []string{"z", "a"}, keys)
	assert.Equal(t, 2, obj.Len())
}
