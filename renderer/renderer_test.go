package renderer_test

import (
	"testing"

	"github.com/delaneyj/treeparty/memhost"
	"github.com/delaneyj/treeparty/metrics"
	"github.com/delaneyj/treeparty/reactivity"
	"github.com/delaneyj/treeparty/renderer"
	"github.com/delaneyj/treeparty/scheduler"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	host  *memhost.Host
	root  *memhost.Node
	loop  *scheduler.Loop
	rs    *reactivity.ReactiveSystem
	sched *scheduler.Scheduler
	r     *renderer.Renderer
}

func newFixture(t *testing.T, opts ...renderer.Option) *fixture {
	t.Helper()
	host := memhost.New()
	loop := scheduler.NewLoop()
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	sched := scheduler.New(loop)
	return &fixture{
		host:  host,
		root:  host.NewContainer(),
		loop:  loop,
		rs:    rs,
		sched: sched,
		r:     renderer.New(host, rs, sched, opts...),
	}
}

func (f *fixture) render(t *testing.T, v *renderer.VNode) {
	t.Helper()
	require.NoError(t, f.r.Render(v, f.root))
}

func (f *fixture) assertOps(t *testing.T, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, f.host.Log()); diff != "" {
		t.Errorf("host ops mismatch (-want +got):\n%s", diff)
	}
}

func li(key string) *renderer.VNode {
	return renderer.H("li", renderer.Props{"key": key}, key)
}

func list(keys ...string) *renderer.VNode {
	children := make([]*renderer.VNode, len(keys))
	for i, key := range keys {
		children[i] = li(key)
	}
	return renderer.H("ul", nil, children)
}

func texts(n *memhost.Node) []string {
	var out []string
	for _, c := range n.ElementChildren() {
		out = append(out, c.TextContent())
	}
	return out
}

// should mount a tree into the container
func TestRenderMount(t *testing.T) {
	f := newFixture(t)
	f.render(t, renderer.H("div", renderer.Props{"key": "k", "id": "a", "class": "x"}, nil))

	f.assertOps(t,
		"create_element div",
		"patch_prop div class=x",
		"patch_prop div id=a",
		"insert div into root",
	)
}

// should mount exactly one node when appending
func TestDiffAppend(t *testing.T) {
	f := newFixture(t)
	f.render(t, list("A", "B"))
	f.host.Reset()

	f.render(t, list("A", "B", "C"))
	f.assertOps(t,
		"create_element li",
		`set_element_text li "C"`,
		"insert li(C) into ul(AB)",
	)
}

// should mount new nodes before the common suffix
func TestDiffPrepend(t *testing.T) {
	f := newFixture(t)
	f.render(t, list("B", "C"))
	f.host.Reset()

	f.render(t, list("A", "B", "C"))
	f.assertOps(t,
		"create_element li",
		`set_element_text li "A"`,
		"insert li(A) into ul(BC) before li(B)",
	)
}

// should remove exactly the truncated nodes
func TestDiffTruncate(t *testing.T) {
	f := newFixture(t)
	f.render(t, list("A", "B", "C", "D"))
	f.host.Reset()

	f.render(t, list("A", "B"))
	f.assertOps(t,
		"remove li(C)",
		"remove li(D)",
	)
}

// should move only the nodes outside the longest stable run
func TestDiffReorder(t *testing.T) {
	f := newFixture(t)
	f.render(t, list("A", "B", "C", "D"))
	f.host.Reset()

	f.render(t, list("D", "B", "C", "A"))
	f.assertOps(t,
		"move li(A) into ul(ABCD)",
		"move li(D) into ul(BCDA) before li(B)",
	)
	assert.Equal(t, []string{"D", "B", "C", "A"}, texts(f.root.Children[0]))
}

// should mount, remove and move within the unknown middle
func TestDiffMiddle(t *testing.T) {
	f := newFixture(t)
	f.render(t, list("A", "B", "C", "D", "E"))
	ul := f.root.Children[0]
	nodes := map[string]*memhost.Node{}
	for _, c := range ul.ElementChildren() {
		nodes[c.TextContent()] = c
	}
	f.host.Reset()

	f.render(t, list("A", "C", "F", "B", "E"))
	assert.Equal(t, []string{"A", "C", "F", "B", "E"}, texts(ul))
	counts := f.host.Counts()
	assert.Equal(t, 1, counts[memhost.OpCreateElement])
	assert.Equal(t, 1, counts[memhost.OpRemove])
	assert.Equal(t, 1, counts[memhost.OpMove])
	for _, key := range []string{"A", "B", "C", "E"} {
		assert.Contains(t, ul.ElementChildren(), nodes[key])
	}
}

// should match unkeyed nodes by type
func TestDiffUnkeyed(t *testing.T) {
	f := newFixture(t)
	f.render(t, renderer.H("div", nil, []*renderer.VNode{
		renderer.H("p", nil, "x"),
		renderer.H("span", nil, "y"),
	}))
	f.host.Reset()

	f.render(t, renderer.H("div", nil, []*renderer.VNode{
		renderer.H("span", nil, "y"),
		renderer.H("p", nil, "z"),
	}))
	counts := f.host.Counts()
	assert.Zero(t, counts[memhost.OpCreateElement])
	assert.Zero(t, counts[memhost.OpRemove])
	assert.Equal(t, []string{"y", "z"}, texts(f.root.Children[0]))
}

// should replace a node whose type changed under the same key
func TestDiffTypeChange(t *testing.T) {
	f := newFixture(t)
	f.render(t, renderer.H("ul", nil, []*renderer.VNode{li("A")}))
	f.host.Reset()

	f.render(t, renderer.H("ul", nil, []*renderer.VNode{
		renderer.H("p", renderer.Props{"key": "A"}, "A"),
	}))
	f.assertOps(t,
		"remove li(A)",
		"create_element p",
		`set_element_text p "A"`,
		"insert p(A) into ul",
	)
}

// should replace the root when its tag changes
func TestRenderRootTypeChange(t *testing.T) {
	f := newFixture(t)
	f.render(t, renderer.H("div", nil, "a"))
	f.render(t, renderer.H("section", nil, "b"))

	require.Len(t, f.root.Children, 1)
	assert.Equal(t, "section", f.root.Children[0].Tag)
	assert.Equal(t, "b", f.root.TextContent())
}

// should handle every children shape transition
func TestChildrenTransitions(t *testing.T) {
	f := newFixture(t)
	f.render(t, renderer.H("div", nil, "a"))
	div := f.root.Children[0]
	assert.Equal(t, "a", div.TextContent())

	f.render(t, renderer.H("div", nil, []*renderer.VNode{li("x")}))
	assert.Equal(t, []string{"x"}, texts(div))

	f.render(t, renderer.H("div", nil, "b"))
	assert.Empty(t, div.ElementChildren())
	assert.Equal(t, "b", div.TextContent())

	f.host.Reset()
	f.render(t, renderer.H("div", nil, "b"))
	assert.Empty(t, f.host.Ops())

	f.render(t, renderer.H("div", nil, nil))
	assert.Empty(t, div.Children)

	f.render(t, renderer.H("div", nil, []*renderer.VNode{li("y")}))
	f.render(t, renderer.H("div", nil, nil))
	assert.Empty(t, div.Children)
}

// should ignore slot maps on elements
func TestElementSlotChildrenIgnored(t *testing.T) {
	f := newFixture(t)
	f.render(t, renderer.H("div", nil, []*renderer.VNode{li("x")}))
	f.host.Reset()

	f.render(t, renderer.H("div", nil, renderer.Slots{}))
	assert.Empty(t, f.host.Ops())
}

// should patch changed props and clear removed ones
func TestPatchProps(t *testing.T) {
	f := newFixture(t)
	clicks := 0
	onClick := func() { clicks++ }
	f.render(t, renderer.H("button", renderer.Props{"id": "a", "class": "x", "onClick": onClick}, nil))
	btn := f.root.Children[0]
	require.NoError(t, f.host.Dispatch(btn, "click"))
	assert.Equal(t, 1, clicks)
	f.host.Reset()

	f.render(t, renderer.H("button", renderer.Props{"id": "b"}, nil))
	f.assertOps(t,
		"patch_prop button id=b",
		"patch_prop button class=<nil>",
		"patch_prop button onClick=<nil>",
	)
	assert.Equal(t, "b", btn.Attr("id"))
	assert.ErrorIs(t, f.host.Dispatch(btn, "click"), memhost.ErrNoListener)
}

// should mount fragments between anchors and move them as a unit
func TestFragments(t *testing.T) {
	f := newFixture(t)
	frag := func(key string, items ...string) *renderer.VNode {
		children := make([]*renderer.VNode, len(items))
		for i, item := range items {
			children[i] = li(item)
		}
		return renderer.H(renderer.Fragment, renderer.Props{"key": key}, children)
	}

	f.render(t, renderer.H("ul", nil, []*renderer.VNode{frag("f1", "A", "B"), frag("f2", "C")}))
	ul := f.root.Children[0]
	assert.Equal(t, []string{"A", "B", "C"}, texts(ul))
	assert.Len(t, ul.Children, 7)
	f.host.Reset()

	f.render(t, renderer.H("ul", nil, []*renderer.VNode{frag("f2", "C"), frag("f1", "A", "B")}))
	assert.Equal(t, []string{"C", "A", "B"}, texts(ul))
	assert.Zero(t, f.host.Counts()[memhost.OpCreateElement])
	f.host.Reset()

	f.render(t, renderer.H("ul", nil, []*renderer.VNode{frag("f2", "C")}))
	assert.Equal(t, []string{"C"}, texts(ul))
	assert.Equal(t, 4, f.host.Counts()[memhost.OpRemove])
	assert.Len(t, ul.Children, 3)
}

// should turn fragment text children into a text node
func TestFragmentText(t *testing.T) {
	f := newFixture(t)
	f.render(t, renderer.H("div", nil, []*renderer.VNode{
		renderer.H(renderer.Fragment, nil, "hi"),
		renderer.TextVNode(" there"),
	}))
	assert.Equal(t, "hi there", f.root.TextContent())

	f.render(t, renderer.H("div", nil, []*renderer.VNode{
		renderer.H(renderer.Fragment, nil, "hi"),
		renderer.TextVNode(" you"),
	}))
	assert.Equal(t, "hi you", f.root.TextContent())
}

// should unmount when rendering nil
func TestRenderNilUnmounts(t *testing.T) {
	f := newFixture(t)
	f.render(t, list("A", "B"))
	f.render(t, nil)
	assert.Empty(t, f.root.Children)
	f.render(t, nil)
}

// should report host operations to the recorder
func TestRendererRecordsHostOps(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	f := newFixture(t, renderer.WithRecorder(collector))

	f.render(t, list("A", "B"))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.HostOps().WithLabelValues("create_element")))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.HostOps().WithLabelValues("insert")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.HostOps().WithLabelValues("set_element_text")))
}

// should panic on unsupported node types, children types and keys
func TestHPanics(t *testing.T) {
	assert.Panics(t, func() { renderer.H(42, nil, nil) })
	assert.Panics(t, func() { renderer.H("div", nil, 42) })
	assert.PanicsWithValue(t, "renderer: key of type []string is not comparable", func() {
		renderer.H("li", renderer.Props{"key": []string{"a"}}, nil)
	})
	assert.NotPanics(t, func() { renderer.H("li", renderer.Props{"key": [2]int{1, 2}}, nil) })
}
