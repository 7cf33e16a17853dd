package renderer

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/delaneyj/treeparty/reactivity"
	"github.com/google/uuid"
)

var ErrSetupResult = errors.New("renderer: unsupported setup result")

// Component describes a stateful component. Setup runs once per instance
// and returns its state: a map[string]any, *reactivity.Object,
// *reactivity.ObjectProxy or *reactivity.RefsProxy whose refs are
// unwrapped on read, or a render function that replaces Render.
type Component struct {
	Name   string
	Setup  func(props *reactivity.ObjectProxy, ctx *SetupContext) (any, error)
	Render func(self *Self) *VNode
}

// Instance is a mounted component.
type Instance struct {
	UID    uuid.UUID
	def    *Component
	vnode  *VNode
	next   *VNode
	parent *Instance

	props     *reactivity.Object
	propsView *reactivity.ObjectProxy
	state     *reactivity.RefsProxy
	slots     Slots
	render    func(self *Self) *VNode
	self      *Self

	inherited *provides
	provides  *provides

	subTree   *VNode
	update    *reactivity.Effect
	mounted   bool
	unmounted bool
}

func (i *Instance) Name() string {
	return i.def.Name
}

func (i *Instance) Parent() *Instance {
	return i.parent
}

func (i *Instance) IsMounted() bool {
	return i.mounted && !i.unmounted
}

// Self is what a render function sees as its receiver.
type Self struct {
	instance *Instance
}

// Get resolves key against the setup state, then the props, then the
// built-ins $el, $slots and $props.
func (s *Self) Get(key string) any {
	inst := s.instance
	if v, ok := inst.state.Get(key); ok {
		return v
	}
	if inst.props.Has(key) {
		return inst.propsView.Get(key)
	}
	switch key {
	case "$el":
		return inst.vnode.El
	case "$slots":
		return inst.slots
	case "$props":
		return inst.propsView
	}
	return nil
}

// Set writes to the setup state. A plain value written over a ref updates
// the ref.
func (s *Self) Set(key string, v any) {
	s.instance.state.Set(key, v)
}

func (s *Self) Props() *reactivity.ObjectProxy {
	return s.instance.propsView
}

func (s *Self) Slots() Slots {
	return s.instance.slots
}

func (s *Self) Emit(event string, args ...any) error {
	return s.instance.emit(event, args...)
}

// SetupContext is handed to Setup.
type SetupContext struct {
	instance *Instance
}

func (c *SetupContext) Instance() *Instance {
	return c.instance
}

func (c *SetupContext) Slots() Slots {
	return c.instance.slots
}

// Emit calls the handler prop for event: "add-foo" calls "onAddFoo".
// Missing handlers are ignored.
func (c *SetupContext) Emit(event string, args ...any) error {
	return c.instance.emit(event, args...)
}

// Provide makes value available to every descendant's Inject.
func (c *SetupContext) Provide(key, value any) {
	inst := c.instance
	if inst.provides == inst.inherited {
		inst.provides = &provides{parent: inst.inherited, values: map[any]any{}}
	}
	inst.provides.values[key] = value
}

// Inject looks key up through the ancestors' provides. When it is missing
// def is returned, or called when it is a func() any.
func (c *SetupContext) Inject(key, def any) any {
	if v, ok := c.instance.inherited.lookup(key); ok {
		return v
	}
	if fn, ok := def.(func() any); ok {
		return fn()
	}
	return def
}

type provides struct {
	parent *provides
	values map[any]any
}

func (p *provides) lookup(key any) (any, bool) {
	for cur := p; cur != nil; cur = cur.parent {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func (i *Instance) emit(event string, args ...any) error {
	handler, ok := i.props.Get(handlerKey(event))
	if !ok || handler == nil {
		return nil
	}
	switch fn := handler.(type) {
	case func():
		fn()
	case func(...any):
		fn(args...)
	case func(...any) error:
		return fn(args...)
	default:
		return fmt.Errorf("renderer: handler for %q has unsupported type %T", event, handler)
	}
	return nil
}

// handlerKey maps "add-foo" to "onAddFoo".
func handlerKey(event string) string {
	parts := strings.Split(event, "-")
	var sb strings.Builder
	sb.WriteString("on")
	for _, part := range parts {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	return sb.String()
}

func (r *Renderer) processComponent(n1, n2 *VNode, container, anchor HostNode, parent *Instance) error {
	if n1 == nil {
		return r.mountComponent(n2, container, anchor, parent)
	}
	return r.updateComponent(n1, n2)
}

func (r *Renderer) mountComponent(v *VNode, container, anchor HostNode, parent *Instance) error {
	inst := r.createComponentInstance(v, parent)
	v.Component = inst
	if err := r.setupComponent(inst); err != nil {
		return err
	}
	return r.setupRenderEffect(inst, container, anchor)
}

func (r *Renderer) createComponentInstance(v *VNode, parent *Instance) *Instance {
	inst := &Instance{
		UID:    uuid.New(),
		def:    v.Def,
		vnode:  v,
		parent: parent,
		props:  reactivity.NewObject(),
	}
	if parent != nil {
		inst.inherited = parent.provides
	} else if v.app != nil {
		inst.inherited = v.app.provides
	}
	inst.provides = inst.inherited
	inst.self = &Self{instance: inst}
	return inst
}

func (r *Renderer) setupComponent(inst *Instance) error {
	v := inst.vnode
	for _, key := range slices.Sorted(maps.Keys(v.Props)) {
		if key != "key" {
			inst.props.Set(key, v.Props[key])
		}
	}
	inst.propsView = reactivity.ShallowReadonly(r.rs, inst.props)
	inst.slots, _ = v.Children.(Slots)
	inst.render = inst.def.Render

	var result any
	if setup := inst.def.Setup; setup != nil {
		prev := r.current
		r.current = inst
		r.rs.PauseTracking()
		defer func() {
			r.rs.ResetTracking()
			r.current = prev
		}()

		var err error
		result, err = setup(inst.propsView, &SetupContext{instance: inst})
		if err != nil {
			return fmt.Errorf("setup %s: %w", inst.def.Name, err)
		}
	}

	switch state := result.(type) {
	case func(self *Self) *VNode:
		inst.render = state
		inst.state = reactivity.ProxyRefs(r.rs, nil)
	case nil, map[string]any, *reactivity.Object, *reactivity.ObjectProxy, *reactivity.RefsProxy:
		inst.state = reactivity.ProxyRefs(r.rs, state)
	default:
		return fmt.Errorf("%w: %s returned %T", ErrSetupResult, inst.def.Name, result)
	}
	return nil
}

// setupRenderEffect creates the effect that renders the component and
// patches its subtree. Later invalidations go through the scheduler.
func (r *Renderer) setupRenderEffect(inst *Instance, container, anchor HostNode) error {
	update, _ := reactivity.NewEffect(r.rs,
		func() error {
			return r.componentEffect(inst, container, anchor)
		},
		reactivity.Lazy(),
		reactivity.WithScheduler(func(e *reactivity.Effect) {
			r.sched.QueueJob(e)
		}),
	)
	inst.update = update
	return update.Run()
}

func (r *Renderer) componentEffect(inst *Instance, container, anchor HostNode) error {
	if inst.unmounted {
		return nil
	}

	if !inst.mounted {
		tree := r.renderComponentRoot(inst)
		if err := r.patch(nil, tree, container, anchor, inst); err != nil {
			return fmt.Errorf("mount %s: %w", inst.def.Name, err)
		}
		inst.subTree = tree
		inst.vnode.El = tree.El
		inst.mounted = true
		r.logger.Debug("mounted component", "component", inst.def.Name, "uid", inst.UID)
		r.observeComponent("mount")
		return nil
	}

	if next := inst.next; next != nil {
		next.El = inst.vnode.El
		r.updateComponentPreRender(inst, next)
	}
	prevTree := inst.subTree
	nextTree := r.renderComponentRoot(inst)
	inst.subTree = nextTree
	if err := r.patch(prevTree, nextTree, r.host.ParentNode(prevTree.El), r.nextHostNode(prevTree), inst); err != nil {
		return fmt.Errorf("update %s: %w", inst.def.Name, err)
	}
	inst.vnode.El = nextTree.El
	updateAncestorEl(inst, nextTree.El)
	r.logger.Debug("updated component", "component", inst.def.Name, "uid", inst.UID)
	r.observeComponent("update")
	return nil
}

// updateAncestorEl hands el to every ancestor whose root is the
// component that just re-rendered.
func updateAncestorEl(inst *Instance, el HostNode) {
	v := inst.vnode
	for p := inst.parent; p != nil && p.subTree == v; p = p.parent {
		v = p.vnode
		v.El = el
	}
}

func (r *Renderer) renderComponentRoot(inst *Instance) *VNode {
	prev := r.current
	r.current = inst
	defer func() {
		r.current = prev
	}()

	tree := inst.render(inst.self)
	if tree == nil {
		tree = TextVNode("")
	}
	return tree
}

// updateComponent re-renders the instance right away when its inputs
// changed. Otherwise the new node just takes over the mounted state.
func (r *Renderer) updateComponent(n1, n2 *VNode) error {
	inst := n1.Component
	n2.Component = inst
	if !shouldUpdateComponent(n1, n2) {
		n2.El = n1.El
		inst.vnode = n2
		return nil
	}
	inst.next = n2
	r.sched.Invalidate(inst.update)
	return inst.update.Run()
}

// updateComponentPreRender moves the instance onto next and syncs its
// props through a mutable wrapper so that anything reading them is
// notified.
func (r *Renderer) updateComponentPreRender(inst *Instance, next *VNode) {
	inst.vnode = next
	inst.next = nil

	props := reactivity.Reactive(r.rs, inst.props)
	for _, key := range slices.Sorted(maps.Keys(next.Props)) {
		if key != "key" {
			props.Set(key, next.Props[key])
		}
	}
	for _, key := range inst.props.Keys() {
		if _, ok := next.Props[key]; !ok {
			props.Delete(key)
		}
	}
	inst.slots, _ = next.Children.(Slots)
}

func shouldUpdateComponent(prev, next *VNode) bool {
	if _, ok := next.Children.(Slots); ok {
		return true
	}
	prevProps, nextProps := prev.Props, next.Props
	if samePropsMap(prevProps, nextProps) {
		return false
	}
	if len(prevProps) != len(nextProps) {
		return true
	}
	for key, v := range nextProps {
		prevValue, ok := prevProps[key]
		if !ok || reactivity.HasChanged(prevValue, v) {
			return true
		}
	}
	return false
}

func samePropsMap(a, b Props) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return !reactivity.HasChanged(a, b)
}

func (r *Renderer) unmountComponent(inst *Instance, doRemove bool) {
	if inst == nil || inst.unmounted {
		return
	}
	inst.unmounted = true
	if inst.update != nil {
		r.sched.Invalidate(inst.update)
		inst.update.Stop()
	}
	if inst.subTree != nil {
		r.unmount(inst.subTree, doRemove)
	}
	r.logger.Debug("unmounted component", "component", inst.def.Name, "uid", inst.UID)
	r.observeComponent("unmount")
}

func (r *Renderer) observeComponent(event string) {
	if r.recorder != nil {
		r.recorder.ObserveComponent(event)
	}
}
