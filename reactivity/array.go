package reactivity

import "slices"

// ArrayProxy is a tracked view of an Array. Index reads subscribe to that
// index, length reads to the length. Mutating helpers run untracked because
// they read the length and indices they are about to write.
type ArrayProxy struct {
	rs      *ReactiveSystem
	raw     *Array
	variant variant
}

func (p *ArrayProxy) Raw() *Array {
	return p.raw
}

func (p *ArrayProxy) IsReadonly() bool {
	return p.variant.readonly()
}

func (p *ArrayProxy) IsShallow() bool {
	return p.variant == variantShallowReadonly
}

// At returns the item at i, or nil when i is out of range.
func (p *ArrayProxy) At(i int) any {
	p.rs.track(p.raw, i)
	return p.rs.wrapValue(p.raw.At(i), p.variant)
}

func (p *ArrayProxy) Len() int {
	p.rs.track(p.raw, lengthKey{})
	return p.raw.Len()
}

// Values returns every item, wrapped like At would.
func (p *ArrayProxy) Values() []any {
	n := p.Len()
	values := make([]any, n)
	for i := range n {
		values[i] = p.At(i)
	}
	return values
}

// Range calls fn for each index in order until fn returns false.
func (p *ArrayProxy) Range(fn func(i int, value any) bool) {
	n := p.Len()
	for i := 0; i < n; i++ {
		if !fn(i, p.At(i)) {
			return
		}
	}
}

// Includes reports whether v is an item. The wrapped items are searched
// first, then the raw ones, so both a wrapper and its raw aggregate are
// found.
func (p *ArrayProxy) Includes(v any) bool {
	for _, item := range p.Values() {
		if !HasChanged(item, v) {
			return true
		}
	}
	for _, item := range p.raw.items {
		if !HasChanged(item, v) {
			return true
		}
	}
	return false
}

// IndexOf returns the first index of v, or -1. See Includes.
func (p *ArrayProxy) IndexOf(v any) int {
	values := p.Values()
	for i, item := range values {
		if strictEqual(item, v) {
			return i
		}
	}
	for i, item := range p.raw.items {
		if strictEqual(item, v) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the last index of v, or -1. See Includes.
func (p *ArrayProxy) LastIndexOf(v any) int {
	values := p.Values()
	for i := len(values) - 1; i >= 0; i-- {
		if strictEqual(values[i], v) {
			return i
		}
	}
	for i := len(p.raw.items) - 1; i >= 0; i-- {
		if strictEqual(p.raw.items[i], v) {
			return i
		}
	}
	return -1
}

// Set stores the raw form of v at i, growing the array with nils when i is
// past the end. It panics when i is negative.
func (p *ArrayProxy) Set(i int, v any) {
	if p.variant.readonly() {
		p.rs.warnReadonly("set", i)
		return
	}
	if i < 0 {
		panic("reactivity: negative array index")
	}
	p.set(i, ToRaw(v))
}

func (p *ArrayProxy) set(i int, v any) {
	items := p.raw.items
	if i < len(items) {
		old := items[i]
		items[i] = v
		if HasChanged(old, v) {
			p.rs.trigger(p.raw, i, TriggerSet, v)
		}
		return
	}
	p.raw.setLength(i + 1)
	p.raw.items[i] = v
	p.rs.trigger(p.raw, i, TriggerAdd, v)
}

// SetLength truncates or grows the array. Truncating notifies every index
// at or past n.
func (p *ArrayProxy) SetLength(n int) {
	if p.variant.readonly() {
		p.rs.warnReadonly("set", "length")
		return
	}
	p.setLength(n)
}

func (p *ArrayProxy) setLength(n int) {
	if n < 0 {
		panic("reactivity: negative array length")
	}
	if n == p.raw.Len() {
		return
	}
	p.raw.setLength(n)
	p.rs.trigger(p.raw, lengthKey{}, TriggerSet, n)
}

// Push appends items and returns the new length.
func (p *ArrayProxy) Push(items ...any) int {
	if p.variant.readonly() {
		p.rs.warnReadonly("push", "length")
		return p.raw.Len()
	}
	p.rs.PauseTracking()
	defer p.rs.ResetTracking()

	for _, item := range items {
		p.set(p.raw.Len(), ToRaw(item))
	}
	return p.raw.Len()
}

// Pop removes and returns the last item, or nil when empty.
func (p *ArrayProxy) Pop() any {
	if p.variant.readonly() {
		p.rs.warnReadonly("pop", "length")
		return nil
	}
	p.rs.PauseTracking()
	defer p.rs.ResetTracking()

	n := p.raw.Len()
	if n == 0 {
		return nil
	}
	last := p.At(n - 1)
	p.setLength(n - 1)
	return last
}

// Shift removes and returns the first item, or nil when empty.
func (p *ArrayProxy) Shift() any {
	if p.variant.readonly() {
		p.rs.warnReadonly("shift", "length")
		return nil
	}
	p.rs.PauseTracking()
	defer p.rs.ResetTracking()

	n := p.raw.Len()
	if n == 0 {
		return nil
	}
	first := p.At(0)
	p.replace(p.raw.items[1:])
	return first
}

// Unshift prepends items and returns the new length.
func (p *ArrayProxy) Unshift(items ...any) int {
	if p.variant.readonly() {
		p.rs.warnReadonly("unshift", "length")
		return p.raw.Len()
	}
	p.rs.PauseTracking()
	defer p.rs.ResetTracking()

	next := make([]any, 0, len(items)+p.raw.Len())
	for _, item := range items {
		next = append(next, ToRaw(item))
	}
	p.replace(append(next, p.raw.items...))
	return p.raw.Len()
}

// Splice removes deleteCount items at start, inserts items in their place
// and returns the removed items. start and deleteCount are clamped to the
// array bounds.
func (p *ArrayProxy) Splice(start, deleteCount int, items ...any) []any {
	if p.variant.readonly() {
		p.rs.warnReadonly("splice", "length")
		return nil
	}
	p.rs.PauseTracking()
	defer p.rs.ResetTracking()

	n := p.raw.Len()
	start = min(max(start, 0), n)
	deleteCount = min(max(deleteCount, 0), n-start)

	removed := make([]any, deleteCount)
	for i := range removed {
		removed[i] = p.rs.wrapValue(p.raw.items[start+i], p.variant)
	}

	next := make([]any, 0, n-deleteCount+len(items))
	next = append(next, p.raw.items[:start]...)
	for _, item := range items {
		next = append(next, ToRaw(item))
	}
	next = append(next, p.raw.items[start+deleteCount:]...)
	p.replace(next)
	return removed
}

// Replace swaps the contents for items, writing only the indices that
// changed and then the length.
func (p *ArrayProxy) Replace(items ...any) {
	if p.variant.readonly() {
		p.rs.warnReadonly("replace", "length")
		return
	}
	p.rs.PauseTracking()
	defer p.rs.ResetTracking()

	next := make([]any, len(items))
	for i, item := range items {
		next[i] = ToRaw(item)
	}
	p.replace(next)
}

func (p *ArrayProxy) replace(next []any) {
	next = slices.Clone(next)
	for i, item := range next {
		p.set(i, item)
	}
	if len(next) < p.raw.Len() {
		p.setLength(len(next))
	}
}
