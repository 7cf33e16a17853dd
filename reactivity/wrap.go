package reactivity

import "weak"

type variant uint8

const (
	variantMutable variant = iota
	variantReadonly
	variantShallowReadonly
	variantCount
)

func (v variant) readonly() bool {
	return v != variantMutable
}

// Reactive returns the mutable wrapper of o. Wrapping the same Object twice
// returns the same wrapper while it is reachable.
func Reactive(rs *ReactiveSystem, o *Object) *ObjectProxy {
	return wrapObject(rs, o, variantMutable)
}

// Readonly returns a wrapper of o that tracks reads and rejects writes.
// Nested aggregates are returned read-only as well.
func Readonly(rs *ReactiveSystem, o *Object) *ObjectProxy {
	return wrapObject(rs, o, variantReadonly)
}

// ShallowReadonly is Readonly without wrapping nested values.
func ShallowReadonly(rs *ReactiveSystem, o *Object) *ObjectProxy {
	return wrapObject(rs, o, variantShallowReadonly)
}

func ReactiveArray(rs *ReactiveSystem, a *Array) *ArrayProxy {
	return wrapArray(rs, a, variantMutable)
}

func ReadonlyArray(rs *ReactiveSystem, a *Array) *ArrayProxy {
	return wrapArray(rs, a, variantReadonly)
}

func ShallowReadonlyArray(rs *ReactiveSystem, a *Array) *ArrayProxy {
	return wrapArray(rs, a, variantShallowReadonly)
}

func wrapObject(rs *ReactiveSystem, o *Object, v variant) *ObjectProxy {
	ts := rs.state(o, true)
	if p := ts.wrappers[v].Value(); p != nil {
		return p
	}
	p := &ObjectProxy{rs: rs, raw: o, variant: v}
	ts.wrappers[v] = weak.Make(p)
	return p
}

func wrapArray(rs *ReactiveSystem, a *Array, v variant) *ArrayProxy {
	ts := rs.state(a, true)
	if p := ts.arrays[v].Value(); p != nil {
		return p
	}
	p := &ArrayProxy{rs: rs, raw: a, variant: v}
	ts.arrays[v] = weak.Make(p)
	return p
}

// wrapValue wraps aggregate values read through a wrapper of variant v.
func (rs *ReactiveSystem) wrapValue(value any, v variant) any {
	if v == variantShallowReadonly {
		return value
	}
	switch value := value.(type) {
	case *Object:
		return wrapObject(rs, value, v)
	case *Array:
		return wrapArray(rs, value, v)
	}
	return value
}

// ToRaw returns the raw aggregate behind a wrapper, or v itself.
func ToRaw(v any) any {
	switch p := v.(type) {
	case *ObjectProxy:
		return p.raw
	case *ArrayProxy:
		return p.raw
	}
	return v
}

// IsReactive reports whether v is a mutable wrapper.
func IsReactive(v any) bool {
	switch p := v.(type) {
	case *ObjectProxy:
		return p.variant == variantMutable
	case *ArrayProxy:
		return p.variant == variantMutable
	}
	return false
}

// IsReadonly reports whether v is a read-only or shallow read-only wrapper.
func IsReadonly(v any) bool {
	switch p := v.(type) {
	case *ObjectProxy:
		return p.variant.readonly()
	case *ArrayProxy:
		return p.variant.readonly()
	}
	return false
}

func IsProxy(v any) bool {
	return IsReactive(v) || IsReadonly(v)
}
