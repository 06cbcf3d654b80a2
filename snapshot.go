package brainmap

import (
	"encoding/json"
	"fmt"
)

// SetData replaces the tree contents with a deep copy of root. The caller's
// value is never aliased: later edits do not touch it. Missing ids are
// generated, duplicate ids are regenerated (a strict tree cannot share
// nodes), empty names fall back to the placeholder, and empty child slices
// are normalized to nil.
func (t *Tree) SetData(root *Node) error {
	if root == nil {
		return fmt.Errorf("brainmap: SetData: nil root")
	}
	seen := make(map[string]bool)
	t.root = t.adopt(root, seen)
	return nil
}

func (t *Tree) adopt(n *Node, seen map[string]bool) *Node {
	cp := &Node{ID: n.ID, Name: normalizeName(n.Name)}
	if cp.ID == "" || seen[cp.ID] {
		cp.ID = t.generateID()
	}
	seen[cp.ID] = true
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		cp.Children = append(cp.Children, t.adopt(c, seen))
	}
	return cp
}

// Data returns a deep copy of the tree. Mutating the result never affects
// the live tree.
func (t *Tree) Data() *Node {
	return cloneNode(t.root)
}

func cloneNode(n *Node) *Node {
	cp := &Node{ID: n.ID, Name: n.Name}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = cloneNode(c)
		}
	}
	return cp
}

// JSON returns the tree serialized as indented JSON. The snapshot carries
// only ids, names and child order.
func (t *Tree) JSON() ([]byte, error) {
	return json.MarshalIndent(t.root, "", "  ")
}

// LoadJSON replaces the tree contents with the given snapshot.
func (t *Tree) LoadJSON(data []byte) error {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("brainmap: parse snapshot: %w", err)
	}
	return t.SetData(&root)
}
