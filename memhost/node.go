package memhost

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Node is an element or a text node in the in-memory tree. Text nodes have
// an empty Tag.
type Node struct {
	ID        int
	Tag       string
	Text      string
	Attrs     map[string]any
	Listeners map[string]any
	Parent    *Node
	Children  []*Node
}

func (n *Node) IsText() bool {
	return n.Tag == ""
}

// TextContent concatenates the text of n and all its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.IsText() {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.writeText(sb)
	}
}

// Attr returns the attribute value for key, or nil.
func (n *Node) Attr(key string) any {
	return n.Attrs[key]
}

// ElementChildren returns the children that are elements, skipping text
// nodes such as fragment anchors.
func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.IsText() {
			out = append(out, c)
		}
	}
	return out
}

// Label is a short human readable name: the quoted text of a text node, or
// the tag followed by the text content in parentheses.
func (n *Node) Label() string {
	if n == nil {
		return ""
	}
	if n.IsText() {
		return strconv.Quote(n.Text)
	}
	if text := n.TextContent(); text != "" {
		return n.Tag + "(" + text + ")"
	}
	return n.Tag
}

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.Children, child)
}

func (n *Node) detach() {
	if n.Parent == nil {
		return
	}
	p := n.Parent
	if i := p.indexOf(n); i >= 0 {
		p.Children = slices.Delete(p.Children, i, i+1)
	}
	n.Parent = nil
}

// Dump renders the subtree rooted at n, one node per line, indented by
// depth. Attributes are sorted by key; empty text nodes are skipped.
func (n *Node) Dump() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	if n.IsText() && n.Text == "" {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	if n.IsText() {
		sb.WriteString(strconv.Quote(n.Text))
		sb.WriteByte('\n')
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(formatValue(n.Attrs[k])))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Listeners)) {
		sb.WriteString(" @")
		sb.WriteString(k)
	}
	sb.WriteString(">\n")
	for _, c := range n.Children {
		c.dump(sb, depth+1)
	}
}
