package reactivity

// RefImpl is a single reactive slot. It keeps its own subscriber set since
// it has no owning object or key.
type RefImpl struct {
	rs       *ReactiveSystem
	rawValue any
	value    any
	dep      dep
}

// Ref boxes v. Objects and Arrays are stored behind their mutable wrapper.
func Ref(rs *ReactiveSystem, v any) *RefImpl {
	r := &RefImpl{
		rs:  rs,
		dep: newDep(),
	}
	r.rawValue = ToRaw(v)
	r.value = rs.wrapValue(r.rawValue, variantMutable)
	return r
}

func (r *RefImpl) Value() any {
	r.rs.trackRef(r.dep)
	return r.value
}

// SetValue stores v and notifies subscribers if it differs from the
// current value.
func (r *RefImpl) SetValue(v any) {
	raw := ToRaw(v)
	if !HasChanged(r.rawValue, raw) {
		return
	}
	r.rawValue = raw
	r.value = r.rs.wrapValue(raw, variantMutable)
	r.rs.triggerEffects(r.dep)
}

func (rs *ReactiveSystem) trackRef(d dep) {
	if rs.isTracking() {
		rs.trackEffects(d)
	}
}

// IsRef reports whether v is a ref or a computed value.
func IsRef(v any) bool {
	_, ok := v.(refLike)
	return ok
}

// Unref returns the value held by a ref, or v itself.
func Unref(v any) any {
	if r, ok := v.(refLike); ok {
		return r.anyValue()
	}
	return v
}

type refLike interface {
	anyValue() any
}

type settableRef interface {
	refLike
	SetValue(v any)
}

func (r *RefImpl) anyValue() any {
	return r.Value()
}

// RefsProxy exposes a state record with its refs unwrapped: reading a ref
// field yields the ref's value and writing a plain value to a ref field
// writes through the ref.
type RefsProxy struct {
	state fieldStore
}

type fieldStore interface {
	get(key string) (any, bool)
	set(key string, v any)
}

// ProxyRefs accepts a map[string]any, an *Object or an *ObjectProxy.
// Anything else yields an empty view.
func ProxyRefs(rs *ReactiveSystem, state any) *RefsProxy {
	switch s := state.(type) {
	case *RefsProxy:
		return s
	case *ObjectProxy:
		return &RefsProxy{state: proxyStore{s}}
	case *Object:
		return &RefsProxy{state: objectStore{s}}
	case map[string]any:
		return &RefsProxy{state: objectStore{ObjectOf(s)}}
	}
	return &RefsProxy{state: objectStore{NewObject()}}
}

func (p *RefsProxy) Get(key string) (any, bool) {
	v, ok := p.state.get(key)
	if !ok {
		return nil, false
	}
	return Unref(v), true
}

func (p *RefsProxy) Set(key string, v any) {
	old, ok := p.state.get(key)
	if ok {
		if r, isRef := old.(settableRef); isRef && !IsRef(v) {
			r.SetValue(v)
			return
		}
	}
	p.state.set(key, v)
}

type objectStore struct{ o *Object }

func (s objectStore) get(key string) (any, bool) { return s.o.Get(key) }
func (s objectStore) set(key string, v any)      { s.o.Set(key, v) }

type proxyStore struct{ p *ObjectProxy }

func (s proxyStore) get(key string) (any, bool) {
	if !s.p.Has(key) {
		return nil, false
	}
	return s.p.Get(key), true
}

func (s proxyStore) set(key string, v any) { s.p.Set(key, v) }
