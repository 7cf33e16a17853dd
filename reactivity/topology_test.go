package reactivity_test

import (
	"testing"

	"github.com/delaneyj/treeparty/reactivity"
	"github.com/stretchr/testify/assert"
)

// should only update every computed once in a diamond
func TestTopologyDiamond(t *testing.T) {
	rs := newSystem(t)

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	a := reactivity.Ref(rs, "a")
	b := reactivity.Computed(rs, func() string { return a.Value().(string) })
	c := reactivity.Computed(rs, func() string { return a.Value().(string) })

	calls := 0
	d := reactivity.Computed(rs, func() string {
		calls++
		return b.Value() + " " + c.Value()
	})

	assert.Equal(t, "a a", d.Value())
	assert.Equal(t, 1, calls)

	a.SetValue("aa")
	assert.Equal(t, "aa aa", d.Value())
	assert.Equal(t, 2, calls)
}

// should only update the tail of a diamond once
func TestTopologyDiamondTail(t *testing.T) {
	rs := newSystem(t)

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	//     |
	//     E
	a := reactivity.Ref(rs, "a")
	b := reactivity.Computed(rs, func() string { return a.Value().(string) })
	c := reactivity.Computed(rs, func() string { return a.Value().(string) })
	d := reactivity.Computed(rs, func() string { return b.Value() + " " + c.Value() })

	calls := 0
	e := reactivity.Computed(rs, func() string {
		calls++
		return d.Value()
	})

	assert.Equal(t, "a a", e.Value())
	assert.Equal(t, 1, calls)

	a.SetValue("aa")
	assert.Equal(t, "aa aa", e.Value())
	assert.Equal(t, 2, calls)
}

// should never compute a derivation nobody reads
func TestTopologyUnreadBranch(t *testing.T) {
	rs := newSystem(t)

	//    *A
	//   /   \
	// *B     C <- never read
	a := reactivity.Ref(rs, "a")
	b := reactivity.Computed(rs, func() string { return a.Value().(string) })
	calls := 0
	reactivity.Computed(rs, func() string {
		calls++
		return a.Value().(string)
	})

	assert.Equal(t, "a", b.Value())
	a.SetValue("aa")
	assert.Equal(t, "aa", b.Value())
	assert.Equal(t, 0, calls)
}

// should drop dependencies of branches no longer taken
func TestTopologyConditionalBranch(t *testing.T) {
	rs := newSystem(t)
	useA := reactivity.Ref(rs, true)
	a := reactivity.Ref(rs, "a")
	b := reactivity.Ref(rs, "b")

	runs := 0
	var got any
	mustEffect(t, rs, func() {
		runs++
		if useA.Value().(bool) {
			got = a.Value()
			return
		}
		got = b.Value()
	})
	assert.Equal(t, "a", got)

	useA.SetValue(false)
	assert.Equal(t, "b", got)
	assert.Equal(t, 2, runs)

	a.SetValue("aa")
	assert.Equal(t, 2, runs)

	b.SetValue("bb")
	assert.Equal(t, "bb", got)
	assert.Equal(t, 3, runs)
}
