package reactivity

import (
	"runtime"
	"slices"
	"sort"
	"weak"
)

// target is a raw aggregate that can carry dependency edges.
type target interface {
	weakKey() any
	addCleanup(fn func(key any), key any)
	isArray() bool
}

// Object is a plain string-keyed record. Keys keep insertion order.
// Reads and writes on an Object are never tracked; wrap it with Reactive,
// Readonly or ShallowReadonly to observe it.
type Object struct {
	keys   []string
	values map[string]any
}

func NewObject() *Object {
	return &Object{values: map[string]any{}}
}

// ObjectOf copies m into a new Object. Keys are inserted in sorted order.
func ObjectOf(m map[string]any) *Object {
	o := &Object{
		keys:   make([]string, 0, len(m)),
		values: make(map[string]any, len(m)),
	}
	for k, v := range m {
		o.keys = append(o.keys, k)
		o.values[k] = v
	}
	sort.Strings(o.keys)
	return o
}

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *Object) Delete(key string) bool {
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	if i := slices.Index(o.keys, key); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
	return true
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) weakKey() any {
	return weak.Make(o)
}

func (o *Object) addCleanup(fn func(key any), key any) {
	runtime.AddCleanup(o, fn, key)
}

func (o *Object) isArray() bool { return false }

// Array is a plain ordered sequence.
type Array struct {
	items []any
}

func NewArray(items ...any) *Array {
	return &Array{items: slices.Clone(items)}
}

func (a *Array) Len() int {
	return len(a.items)
}

// At returns the item at i, or nil when i is out of range.
func (a *Array) At(i int) any {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

func (a *Array) Items() []any {
	return slices.Clone(a.items)
}

func (a *Array) weakKey() any {
	return weak.Make(a)
}

func (a *Array) addCleanup(fn func(key any), key any) {
	runtime.AddCleanup(a, fn, key)
}

func (a *Array) isArray() bool { return true }

func (a *Array) setLength(n int) {
	if n <= len(a.items) {
		clear(a.items[n:])
		a.items = a.items[:n]
		return
	}
	a.items = append(a.items, make([]any, n-len(a.items))...)
}
