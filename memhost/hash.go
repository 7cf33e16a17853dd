package memhost

import "github.com/cespare/xxhash/v2"

// Hash fingerprints the subtree rooted at n. Two trees with the same
// structure, attributes, listener names and text hash the same regardless
// of node ids.
func (n *Node) Hash() uint64 {
	d := xxhash.New()
	d.WriteString(n.Dump())
	return d.Sum64()
}
