// Package memhost is an in-memory tree that implements the renderer's host
// capabilities and records every mutation it receives.
package memhost

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrNoListener = errors.New("memhost: no listener for event")

type OpKind string

const (
	OpCreateElement  OpKind = "create_element"
	OpCreateText     OpKind = "create_text"
	OpInsert         OpKind = "insert"
	OpMove           OpKind = "move"
	OpRemove         OpKind = "remove"
	OpPatchProp      OpKind = "patch_prop"
	OpSetElementText OpKind = "set_element_text"
	OpSetText        OpKind = "set_text"
)

// Op is one recorded host call. Node labels are captured when the call is
// made.
type Op struct {
	Kind   OpKind
	Node   string
	Parent string
	Anchor string
	Key    string
	Value  any
}

func (o Op) String() string {
	switch o.Kind {
	case OpInsert, OpMove:
		if o.Anchor == "" {
			return fmt.Sprintf("%s %s into %s", o.Kind, o.Node, o.Parent)
		}
		return fmt.Sprintf("%s %s into %s before %s", o.Kind, o.Node, o.Parent, o.Anchor)
	case OpPatchProp:
		return fmt.Sprintf("%s %s %s=%s", o.Kind, o.Node, o.Key, formatValue(o.Value))
	case OpSetElementText, OpSetText:
		return fmt.Sprintf("%s %s %q", o.Kind, o.Node, o.Value)
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.Node)
	}
}

// Host owns the nodes it creates and an append-only op log.
type Host struct {
	nextID int
	ops    []Op
}

func New() *Host {
	return &Host{}
}

// NewContainer returns a detached element to mount into. It is not logged.
func (h *Host) NewContainer() *Node {
	return h.newNode("root")
}

func (h *Host) newNode(tag string) *Node {
	h.nextID++
	return &Node{
		ID:        h.nextID,
		Tag:       tag,
		Attrs:     map[string]any{},
		Listeners: map[string]any{},
	}
}

func (h *Host) log(op Op) {
	h.ops = append(h.ops, op)
}

// Ops returns the recorded operations.
func (h *Host) Ops() []Op {
	return h.ops
}

// Log returns the op log as strings.
func (h *Host) Log() []string {
	out := make([]string, len(h.ops))
	for i, op := range h.ops {
		out[i] = op.String()
	}
	return out
}

// Reset clears the op log.
func (h *Host) Reset() {
	h.ops = nil
}

// Counts tallies the op log by kind.
func (h *Host) Counts() map[OpKind]int {
	counts := map[OpKind]int{}
	for _, op := range h.ops {
		counts[op.Kind]++
	}
	return counts
}

func (h *Host) CreateElement(tag string) any {
	n := h.newNode(tag)
	h.log(Op{Kind: OpCreateElement, Node: tag})
	return n
}

func (h *Host) CreateText(text string) any {
	n := h.newNode("")
	n.Text = text
	h.log(Op{Kind: OpCreateText, Node: n.Label()})
	return n
}

// PatchProp sets or removes an attribute. Keys of the form onXxx register
// a listener for the event "xxx" instead. A nil next removes either.
func (h *Host) PatchProp(el any, key string, prev, next any) {
	n := el.(*Node)
	h.log(Op{Kind: OpPatchProp, Node: n.Label(), Key: key, Value: next})

	if event, ok := listenerEvent(key); ok {
		if next == nil {
			delete(n.Listeners, event)
		} else {
			n.Listeners[event] = next
		}
		return
	}
	if next == nil {
		delete(n.Attrs, key)
	} else {
		n.Attrs[key] = next
	}
}

// Insert places child before anchor in parent, or last when anchor is
// nil. A child that is already attached is moved.
func (h *Host) Insert(child, parent, anchor any) {
	c, p := child.(*Node), parent.(*Node)
	a, _ := anchor.(*Node)

	kind := OpInsert
	if c.Parent != nil {
		kind = OpMove
	}
	h.log(Op{Kind: kind, Node: c.Label(), Parent: p.Label(), Anchor: a.Label()})

	c.detach()
	c.Parent = p
	if a == nil || a.Parent != p {
		p.Children = append(p.Children, c)
		return
	}
	i := p.indexOf(a)
	p.Children = append(p.Children, nil)
	copy(p.Children[i+1:], p.Children[i:])
	p.Children[i] = c
}

func (h *Host) Remove(child any) {
	c := child.(*Node)
	h.log(Op{Kind: OpRemove, Node: c.Label()})
	c.detach()
}

// SetElementText replaces every child of el with a single text node, or
// with nothing when text is empty.
func (h *Host) SetElementText(el any, text string) {
	n := el.(*Node)
	h.log(Op{Kind: OpSetElementText, Node: n.Label(), Value: text})

	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	if text == "" {
		return
	}
	t := h.newNode("")
	t.Text = text
	t.Parent = n
	n.Children = []*Node{t}
}

func (h *Host) SetText(node any, text string) {
	n := node.(*Node)
	h.log(Op{Kind: OpSetText, Node: n.Label(), Value: text})
	n.Text = text
}

// ParentNode returns the parent of node, or nil when it is detached.
func (h *Host) ParentNode(node any) any {
	n := node.(*Node)
	if n.Parent == nil {
		return nil
	}
	return n.Parent
}

// NextSibling returns the node after node in its parent, or nil.
func (h *Host) NextSibling(node any) any {
	n := node.(*Node)
	if n.Parent == nil {
		return nil
	}
	siblings := n.Parent.Children
	i := n.Parent.indexOf(n)
	if i < 0 || i+1 >= len(siblings) {
		return nil
	}
	return siblings[i+1]
}

// Dispatch calls the listener registered on n for event. Listeners may be
// func(), func(...any) or func(...any) error.
func (h *Host) Dispatch(n *Node, event string, args ...any) error {
	l, ok := n.Listeners[event]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrNoListener, event, n.Label())
	}
	switch fn := l.(type) {
	case func():
		fn()
	case func(...any):
		fn(args...)
	case func(...any) error:
		return fn(args...)
	default:
		return fmt.Errorf("memhost: listener for %s has unsupported type %T", event, l)
	}
	return nil
}

func listenerEvent(key string) (string, bool) {
	if len(key) < 3 || !strings.HasPrefix(key, "on") {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(key[2:])
	if !unicode.IsUpper(r) {
		return "", false
	}
	return strings.ToLower(key[2:]), true
}

func formatValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.(string); ok {
		return s
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return "<func>"
	}
	return fmt.Sprint(v)
}
