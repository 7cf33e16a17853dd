package reactivity

import "reflect"

// HasChanged reports whether next differs from prev. Two NaNs are equal.
// Values that cannot be compared with == (slices, maps, funcs, or structs
// holding them) are equal only when they share the same backing storage;
// funcs are always considered changed.
func HasChanged(prev, next any) bool {
	if isNaN(prev) && isNaN(next) {
		return false
	}
	return !strictEqual(prev, next)
}

func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Map, reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}

func isNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return f != f
	case float32:
		return f != f
	}
	return false
}
