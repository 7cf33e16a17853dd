package reactivity

import (
	"cmp"
	"slices"
	"weak"

	mapset "github.com/deckarep/golang-set/v2"
)

type TriggerKind uint8

const (
	TriggerSet TriggerKind = iota
	TriggerAdd
	TriggerDelete
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerSet:
		return "set"
	case TriggerAdd:
		return "add"
	case TriggerDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Synthetic dependency keys. iterateKey stands for enumeration and
// existence checks on records, lengthKey for the length of a sequence.
type (
	iterateKey struct{}
	lengthKey  struct{}
)

type dep = mapset.Set[*Effect]

func newDep() dep {
	return mapset.NewThreadUnsafeSet[*Effect]()
}

// targetState is everything the system knows about one raw aggregate.
type targetState struct {
	deps     map[any]dep
	wrappers [variantCount]weak.Pointer[ObjectProxy]
	arrays   [variantCount]weak.Pointer[ArrayProxy]
}

// state returns the bookkeeping for t, creating it when create is set. The
// entry is dropped once t becomes unreachable.
func (rs *ReactiveSystem) state(t target, create bool) *targetState {
	key := t.weakKey()

	rs.targetsMu.Lock()
	defer rs.targetsMu.Unlock()

	ts, ok := rs.targets[key]
	if ok || !create {
		return ts
	}
	ts = &targetState{deps: map[any]dep{}}
	rs.targets[key] = ts
	t.addCleanup(rs.dropTarget, key)
	return ts
}

func (rs *ReactiveSystem) dropTarget(key any) {
	rs.targetsMu.Lock()
	delete(rs.targets, key)
	rs.targetsMu.Unlock()
}

func (rs *ReactiveSystem) trackedTargets() int {
	rs.targetsMu.Lock()
	defer rs.targetsMu.Unlock()
	return len(rs.targets)
}

// track subscribes the active effect to (t, key).
func (rs *ReactiveSystem) track(t target, key any) {
	if !rs.isTracking() {
		return
	}
	ts := rs.state(t, true)
	d, ok := ts.deps[key]
	if !ok {
		d = newDep()
		ts.deps[key] = d
	}
	rs.trackEffects(d)
}

func (rs *ReactiveSystem) trackEffects(d dep) {
	e := rs.activeEffect
	if e == nil || e.state == stateStopped {
		return
	}
	if d.Contains(e) {
		return
	}
	d.Add(e)
	e.deps = append(e.deps, d)
}

// trigger notifies every effect affected by a kind change of (t, key).
// newValue is only consulted for sequence length writes, where it holds
// the new length.
func (rs *ReactiveSystem) trigger(t target, key any, kind TriggerKind, newValue any) {
	ts := rs.state(t, false)
	if ts == nil {
		return
	}

	effects := newDep()
	add := func(d dep) {
		if d == nil {
			return
		}
		for _, e := range d.ToSlice() {
			effects.Add(e)
		}
	}

	if _, isLength := key.(lengthKey); isLength && t.isArray() {
		newLength, _ := newValue.(int)
		for k, d := range ts.deps {
			switch k := k.(type) {
			case int:
				if k >= newLength {
					add(d)
				}
			case lengthKey:
				add(d)
			}
		}
	} else {
		add(ts.deps[key])
	}

	switch kind {
	case TriggerAdd:
		if t.isArray() {
			add(ts.deps[lengthKey{}])
		} else {
			add(ts.deps[iterateKey{}])
		}
	case TriggerDelete:
		add(ts.deps[iterateKey{}])
	}

	rs.triggerEffects(effects)
}

// triggerEffects runs or schedules every effect in d except the one that is
// currently running. Effects run in creation order. The first synchronous
// failure stops the fan-out and goes to the error handler.
func (rs *ReactiveSystem) triggerEffects(d dep) {
	effects := d.ToSlice()
	slices.SortFunc(effects, func(a, b *Effect) int {
		return cmp.Compare(a.id, b.id)
	})

	for _, e := range effects {
		if e == rs.activeEffect || e.state == stateStopped {
			continue
		}
		if e.scheduler != nil {
			e.scheduler(e)
			continue
		}
		if err := e.Run(); err != nil {
			rs.reportError(e, err)
			return
		}
	}
}
