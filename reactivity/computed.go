package reactivity

// ComputedRef is a lazily evaluated, cached derivation. The getter runs on
// the first Value call and again only after an upstream change.
type ComputedRef[T any] struct {
	rs     *ReactiveSystem
	effect *Effect
	dep    dep
	dirty  bool
	value  T
}

func Computed[T any](rs *ReactiveSystem, getter func() T) *ComputedRef[T] {
	c := &ComputedRef[T]{
		rs:    rs,
		dep:   newDep(),
		dirty: true,
	}
	// A lazy effect never runs on creation, so there is no error to check.
	c.effect, _ = NewEffect(rs,
		func() error {
			c.value = getter()
			return nil
		},
		Lazy(),
		WithScheduler(func(*Effect) {
			if !c.dirty {
				c.dirty = true
				rs.triggerEffects(c.dep)
			}
		}),
	)
	return c
}

func (c *ComputedRef[T]) Value() T {
	c.rs.trackRef(c.dep)
	if c.dirty {
		_ = c.effect.Run()
		c.dirty = false
	}
	return c.value
}

// Stop detaches the computed from its sources. The cached value is kept.
func (c *ComputedRef[T]) Stop() {
	c.effect.Stop()
}

func (c *ComputedRef[T]) anyValue() any {
	return c.Value()
}
