package renderer

import (
	"fmt"
	"reflect"
)

// Kind is the closed set of node kinds the renderer knows how to patch.
type Kind uint8

const (
	KindElement Kind = iota
	KindText
	KindFragment
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindFragment:
		return "fragment"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

type ShapeFlags uint16

const (
	ShapeElement ShapeFlags = 1 << iota
	ShapeStatefulComponent
	ShapeTextChildren
	ShapeArrayChildren
	ShapeSlotsChildren
)

// Props are the attributes, listeners and component inputs of a node. The
// "key" entry is the node's identity among its siblings and is never
// patched onto the host. Keys must be comparable with ==.
type Props map[string]any

// Slot renders the nodes for one named slot.
type Slot func(props Props) []*VNode

// Slots are the children of a component node.
type Slots map[string]Slot

type nodeType struct{ name string }

func (t *nodeType) String() string { return t.name }

// Type markers for H.
var (
	Fragment = &nodeType{"Fragment"}
	Text     = &nodeType{"Text"}
)

// VNode is one node of a rendered tree snapshot. El, Anchor and Component
// are filled in by the renderer once the node is mounted.
type VNode struct {
	Kind      Kind
	Tag       string
	Def       *Component
	Props     Props
	Children  any
	Key       any
	ShapeFlag ShapeFlags

	// El is the host node for elements and text, the start anchor for
	// fragments and the root host node of a component's subtree.
	El HostNode
	// Anchor is the end anchor of a fragment.
	Anchor    HostNode
	Component *Instance

	app *App
}

// H builds a node. typ is an element tag, a *Component, Fragment or Text.
// children may be nil, a string, a *VNode, a []*VNode or, for components,
// Slots.
func H(typ any, props Props, children any) *VNode {
	v := &VNode{Props: props, Children: children}
	if key, ok := props["key"]; ok {
		if key != nil && !reflect.ValueOf(key).Comparable() {
			panic(fmt.Sprintf("renderer: key of type %T is not comparable", key))
		}
		v.Key = key
	}

	switch t := typ.(type) {
	case string:
		v.Kind = KindElement
		v.Tag = t
		v.ShapeFlag = ShapeElement
	case *Component:
		v.Kind = KindComponent
		v.Def = t
		v.ShapeFlag = ShapeStatefulComponent
	case *nodeType:
		switch t {
		case Fragment:
			v.Kind = KindFragment
		case Text:
			v.Kind = KindText
		}
	default:
		panic(fmt.Sprintf("renderer: unsupported node type %T", typ))
	}

	switch c := children.(type) {
	case nil:
	case string:
		if v.Kind == KindFragment {
			v.Children = []*VNode{TextVNode(c)}
			v.ShapeFlag |= ShapeArrayChildren
		} else {
			v.ShapeFlag |= ShapeTextChildren
		}
	case *VNode:
		v.Children = []*VNode{c}
		v.ShapeFlag |= ShapeArrayChildren
	case []*VNode:
		v.ShapeFlag |= ShapeArrayChildren
	case Slots:
		if v.Kind == KindComponent {
			v.ShapeFlag |= ShapeSlotsChildren
		}
	default:
		panic(fmt.Sprintf("renderer: unsupported children type %T", children))
	}
	return v
}

// TextVNode builds a text node.
func TextVNode(text string) *VNode {
	return &VNode{Kind: KindText, Children: text, ShapeFlag: ShapeTextChildren}
}

// RenderSlots wraps the named slot's output in a fragment. A missing slot
// renders an empty fragment.
func RenderSlots(slots Slots, name string, props Props) *VNode {
	slot, ok := slots[name]
	if !ok || slot == nil {
		return H(Fragment, nil, []*VNode{})
	}
	return H(Fragment, nil, slot(props))
}

func isSameVNodeType(a, b *VNode) bool {
	return a.Kind == b.Kind && a.Tag == b.Tag && a.Def == b.Def && a.Key == b.Key
}

func (v *VNode) text() string {
	s, _ := v.Children.(string)
	return s
}

func (v *VNode) children() []*VNode {
	c, _ := v.Children.([]*VNode)
	return c
}
