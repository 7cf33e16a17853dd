package reactivity

// ObjectProxy is a tracked view of an Object. Reads subscribe the running
// effect, writes notify subscribers when the value actually changed.
type ObjectProxy struct {
	rs      *ReactiveSystem
	raw     *Object
	variant variant
}

func (p *ObjectProxy) Raw() *Object {
	return p.raw
}

func (p *ObjectProxy) IsReadonly() bool {
	return p.variant.readonly()
}

func (p *ObjectProxy) IsShallow() bool {
	return p.variant == variantShallowReadonly
}

// Get returns the value at key. Objects and Arrays come back wrapped in the
// same variant as p, except through a shallow read-only wrapper.
func (p *ObjectProxy) Get(key string) any {
	v, _ := p.raw.Get(key)
	p.rs.track(p.raw, key)
	return p.rs.wrapValue(v, p.variant)
}

// Has reports whether key is present.
func (p *ObjectProxy) Has(key string) bool {
	p.rs.track(p.raw, key)
	return p.raw.Has(key)
}

// Keys returns the keys in insertion order and subscribes to key additions
// and removals.
func (p *ObjectProxy) Keys() []string {
	p.rs.track(p.raw, iterateKey{})
	return p.raw.Keys()
}

func (p *ObjectProxy) Len() int {
	p.rs.track(p.raw, iterateKey{})
	return p.raw.Len()
}

// Range calls fn for each key in order until fn returns false.
func (p *ObjectProxy) Range(fn func(key string, value any) bool) {
	for _, key := range p.Keys() {
		if !fn(key, p.Get(key)) {
			return
		}
	}
}

// Set stores the raw form of v at key.
func (p *ObjectProxy) Set(key string, v any) {
	if p.variant.readonly() {
		p.rs.warnReadonly("set", key)
		return
	}
	v = ToRaw(v)
	old, had := p.raw.Get(key)
	p.raw.Set(key, v)
	switch {
	case !had:
		p.rs.trigger(p.raw, key, TriggerAdd, v)
	case HasChanged(old, v):
		p.rs.trigger(p.raw, key, TriggerSet, v)
	}
}

func (p *ObjectProxy) Delete(key string) {
	if p.variant.readonly() {
		p.rs.warnReadonly("delete", key)
		return
	}
	if p.raw.Delete(key) {
		p.rs.trigger(p.raw, key, TriggerDelete, nil)
	}
}
