package renderer

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/delaneyj/treeparty/reactivity"
	"github.com/delaneyj/treeparty/scheduler"
)

type Option func(*Renderer)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithRecorder reports host mutations and component lifecycle events to
// rec.
func WithRecorder(rec Recorder) Option {
	return func(r *Renderer) {
		r.recorder = rec
	}
}

// Renderer turns node trees into host mutations. Component render effects
// are created on rs and re-run through sched.
type Renderer struct {
	host     Host
	rs       *reactivity.ReactiveSystem
	sched    *scheduler.Scheduler
	logger   *slog.Logger
	recorder Recorder

	current *Instance
	roots   map[HostNode]*VNode
}

func New(host Host, rs *reactivity.ReactiveSystem, sched *scheduler.Scheduler, opts ...Option) *Renderer {
	r := &Renderer{
		host:   host,
		rs:     rs,
		sched:  sched,
		logger: slog.Default(),
		roots:  map[HostNode]*VNode{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.recorder != nil {
		r.host = recordingHost{Host: host, rec: r.recorder}
	}
	return r
}

// CurrentInstance returns the component whose setup or render is running.
func (r *Renderer) CurrentInstance() *Instance {
	return r.current
}

// Render patches vnode against whatever was last rendered into container.
// A nil vnode unmounts it.
func (r *Renderer) Render(vnode *VNode, container HostNode) error {
	prev := r.roots[container]
	if vnode == nil {
		if prev != nil {
			r.unmount(prev, true)
			delete(r.roots, container)
		}
		return nil
	}
	r.roots[container] = vnode
	return r.patch(prev, vnode, container, nil, nil)
}

func (r *Renderer) patch(n1, n2 *VNode, container, anchor HostNode, parent *Instance) error {
	if n1 == n2 {
		return nil
	}
	if n1 != nil && !isSameVNodeType(n1, n2) {
		anchor = r.nextHostNode(n1)
		r.unmount(n1, true)
		n1 = nil
	}

	switch n2.Kind {
	case KindText:
		r.processText(n1, n2, container, anchor)
		return nil
	case KindFragment:
		return r.processFragment(n1, n2, container, anchor, parent)
	case KindElement:
		return r.processElement(n1, n2, container, anchor, parent)
	case KindComponent:
		return r.processComponent(n1, n2, container, anchor, parent)
	}
	return nil
}

func (r *Renderer) processText(n1, n2 *VNode, container, anchor HostNode) {
	if n1 == nil {
		n2.El = r.host.CreateText(n2.text())
		r.host.Insert(n2.El, container, anchor)
		return
	}
	n2.El = n1.El
	if n2.text() != n1.text() {
		r.host.SetText(n2.El, n2.text())
	}
}

// processFragment mounts children between an empty start and end text
// node so the fragment can be moved and removed as a unit.
func (r *Renderer) processFragment(n1, n2 *VNode, container, anchor HostNode, parent *Instance) error {
	if n1 == nil {
		n2.El = r.host.CreateText("")
		n2.Anchor = r.host.CreateText("")
		r.host.Insert(n2.El, container, anchor)
		r.host.Insert(n2.Anchor, container, anchor)
		return r.mountChildren(n2.children(), container, n2.Anchor, parent)
	}
	n2.El = n1.El
	n2.Anchor = n1.Anchor
	return r.patchChildren(n1, n2, container, n2.Anchor, parent)
}

func (r *Renderer) processElement(n1, n2 *VNode, container, anchor HostNode, parent *Instance) error {
	if n1 == nil {
		return r.mountElement(n2, container, anchor, parent)
	}
	return r.patchElement(n1, n2, parent)
}

func (r *Renderer) mountElement(v *VNode, container, anchor HostNode, parent *Instance) error {
	el := r.host.CreateElement(v.Tag)
	v.El = el

	switch {
	case v.ShapeFlag&ShapeTextChildren != 0:
		r.host.SetElementText(el, v.text())
	case v.ShapeFlag&ShapeArrayChildren != 0:
		if err := r.mountChildren(v.children(), el, nil, parent); err != nil {
			return err
		}
	}

	for _, key := range slices.Sorted(maps.Keys(v.Props)) {
		if key == "key" {
			continue
		}
		r.host.PatchProp(el, key, nil, v.Props[key])
	}

	r.host.Insert(el, container, anchor)
	return nil
}

func (r *Renderer) mountChildren(children []*VNode, container, anchor HostNode, parent *Instance) error {
	for _, child := range children {
		if err := r.patch(nil, child, container, anchor, parent); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) patchElement(n1, n2 *VNode, parent *Instance) error {
	el := n1.El
	n2.El = el
	if err := r.patchChildren(n1, n2, el, nil, parent); err != nil {
		return err
	}
	r.patchProps(el, n1.Props, n2.Props)
	return nil
}

// patchProps patches every changed key and clears keys that are gone.
func (r *Renderer) patchProps(el HostNode, prev, next Props) {
	for _, key := range slices.Sorted(maps.Keys(next)) {
		if key == "key" {
			continue
		}
		prevValue, nextValue := prev[key], next[key]
		if reactivity.HasChanged(prevValue, nextValue) {
			r.host.PatchProp(el, key, prevValue, nextValue)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(prev)) {
		if key == "key" {
			continue
		}
		if _, ok := next[key]; !ok {
			r.host.PatchProp(el, key, prev[key], nil)
		}
	}
}

// patchChildren handles every transition between no children, text
// children and array children. Slot maps on elements are left alone.
func (r *Renderer) patchChildren(n1, n2 *VNode, container, anchor HostNode, parent *Instance) error {
	if _, isSlots := n2.Children.(Slots); isSlots {
		return nil
	}
	prevShape, shape := n1.ShapeFlag, n2.ShapeFlag

	switch {
	case shape&ShapeTextChildren != 0:
		if prevShape&ShapeArrayChildren != 0 {
			r.unmountChildren(n1.children())
		}
		if prevShape&ShapeTextChildren == 0 || n1.text() != n2.text() {
			r.host.SetElementText(container, n2.text())
		}
	case shape&ShapeArrayChildren != 0:
		if prevShape&ShapeArrayChildren != 0 {
			return r.patchKeyedChildren(n1.children(), n2.children(), container, anchor, parent)
		}
		if prevShape&ShapeTextChildren != 0 {
			r.host.SetElementText(container, "")
		}
		return r.mountChildren(n2.children(), container, anchor, parent)
	default:
		if prevShape&ShapeArrayChildren != 0 {
			r.unmountChildren(n1.children())
		} else if prevShape&ShapeTextChildren != 0 {
			r.host.SetElementText(container, "")
		}
	}
	return nil
}

// unmount tears down v. Host nodes are only removed when doRemove is set;
// descendants of a removed element go with it.
func (r *Renderer) unmount(v *VNode, doRemove bool) {
	switch v.Kind {
	case KindComponent:
		r.unmountComponent(v.Component, doRemove)
	case KindFragment:
		for _, child := range v.children() {
			r.unmount(child, doRemove)
		}
		if doRemove {
			r.host.Remove(v.El)
			r.host.Remove(v.Anchor)
		}
	case KindElement:
		for _, child := range v.children() {
			r.unmount(child, false)
		}
		if doRemove {
			r.host.Remove(v.El)
		}
	case KindText:
		if doRemove {
			r.host.Remove(v.El)
		}
	}
}

func (r *Renderer) unmountChildren(children []*VNode) {
	for _, child := range children {
		r.unmount(child, true)
	}
}

// move inserts every host node of v before anchor.
func (r *Renderer) move(v *VNode, container, anchor HostNode) {
	switch v.Kind {
	case KindComponent:
		r.move(v.Component.subTree, container, anchor)
	case KindFragment:
		r.host.Insert(v.El, container, anchor)
		for _, child := range v.children() {
			r.move(child, container, anchor)
		}
		r.host.Insert(v.Anchor, container, anchor)
	default:
		r.host.Insert(v.El, container, anchor)
	}
}

// nextHostNode returns the host node right after everything v rendered.
func (r *Renderer) nextHostNode(v *VNode) HostNode {
	switch v.Kind {
	case KindComponent:
		return r.nextHostNode(v.Component.subTree)
	case KindFragment:
		return r.host.NextSibling(v.Anchor)
	default:
		return r.host.NextSibling(v.El)
	}
}
