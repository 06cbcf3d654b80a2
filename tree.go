package brainmap

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// placeholderName is used whenever a node is created or renamed with an
// empty (or whitespace-only) name.
const placeholderName = "New Node"

var (
	// ErrNotFound is returned when an operation references a node id that is
	// not present in the tree.
	ErrNotFound = errors.New("brainmap: node not found")

	// ErrDeleteRoot is returned when attempting to delete the root node.
	// The root always exists; deleting it is rejected, not ignored.
	ErrDeleteRoot = errors.New("brainmap: cannot delete the root node")
)

// Node is one element of the mind map. Only ID, Name and Children persist;
// positions, depths and leaf counts are recomputed by ComputeLayout after
// every change and never stored on the node.
//
// Child order is meaningful: it determines clockwise angular placement.
// A nil Children slice marks a leaf.
type Node struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Children []*Node `json:"children,omitempty"`
}

// Tree owns a mind map's root node and generates ids for new nodes. All
// structural mutation goes through Tree so id uniqueness holds for the
// lifetime of the instance. A Tree always has exactly one root.
type Tree struct {
	root *Node
	// idCounter is a plain counter seeded from the wall clock at
	// construction (no atomic — single goroutine model). Ids are unique
	// within one tree, not across processes.
	idCounter uint64
}

// NewTree creates a tree with a single root node.
func NewTree(rootName string) *Tree {
	t := &Tree{idCounter: uint64(time.Now().UnixMilli())}
	t.root = &Node{ID: t.generateID(), Name: normalizeName(rootName)}
	return t
}

func (t *Tree) generateID() string {
	t.idCounter++
	return "n" + strconv.FormatUint(t.idCounter, 10)
}

// Root returns the root node. The returned node and its descendants MUST NOT
// be mutated by the caller; use the Tree operations instead.
func (t *Tree) Root() *Node {
	return t.root
}

// FindByID returns the node with the given id, or nil. Pre-order search;
// ids are unique, so the first match is the only match.
func (t *Tree) FindByID(id string) *Node {
	return findByID(t.root, id)
}

func findByID(n *Node, id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if m := findByID(c, id); m != nil {
			return m
		}
	}
	return nil
}

// FindParent returns the node whose immediate children include childID.
// Returns nil for the root id and for unknown ids.
func (t *Tree) FindParent(childID string) *Node {
	return findParent(t.root, childID)
}

func findParent(n *Node, childID string) *Node {
	for _, c := range n.Children {
		if c.ID == childID {
			return n
		}
		if p := findParent(c, childID); p != nil {
			return p
		}
	}
	return nil
}

// AddChild appends a new node with a fresh id to parentID's children and
// returns it. Returns ErrNotFound if the parent does not exist.
func (t *Tree) AddChild(parentID, name string) (*Node, error) {
	parent := t.FindByID(parentID)
	if parent == nil {
		return nil, ErrNotFound
	}
	child := &Node{ID: t.generateID(), Name: normalizeName(name)}
	parent.Children = append(parent.Children, child)
	return child, nil
}

// AddSibling inserts a new node immediately after nodeID among its parent's
// children. The root has no parent, so a sibling of the root is ErrNotFound.
func (t *Tree) AddSibling(nodeID, name string) (*Node, error) {
	parent := t.FindParent(nodeID)
	if parent == nil {
		return nil, ErrNotFound
	}
	sibling := &Node{ID: t.generateID(), Name: normalizeName(name)}
	for i, c := range parent.Children {
		if c.ID != nodeID {
			continue
		}
		parent.Children = append(parent.Children, nil)
		copy(parent.Children[i+2:], parent.Children[i+1:])
		parent.Children[i+1] = sibling
		return sibling, nil
	}
	return nil, ErrNotFound
}

// Delete removes nodeID and its entire subtree from the tree.
// Deleting the root is rejected with ErrDeleteRoot.
func (t *Tree) Delete(nodeID string) error {
	if nodeID == t.root.ID {
		return ErrDeleteRoot
	}
	parent := t.FindParent(nodeID)
	if parent == nil {
		return ErrNotFound
	}
	for i, c := range parent.Children {
		if c.ID != nodeID {
			continue
		}
		copy(parent.Children[i:], parent.Children[i+1:])
		parent.Children[len(parent.Children)-1] = nil
		parent.Children = parent.Children[:len(parent.Children)-1]
		if len(parent.Children) == 0 {
			parent.Children = nil
		}
		return nil
	}
	return ErrNotFound
}

// Rename sets the node's display name. Empty or whitespace-only names fall
// back to the placeholder.
func (t *Tree) Rename(nodeID, newName string) error {
	n := t.FindByID(nodeID)
	if n == nil {
		return ErrNotFound
	}
	n.Name = normalizeName(newName)
	return nil
}

// Size returns the total number of nodes in the tree.
func (t *Tree) Size() int {
	return countNodes(t.root)
}

func countNodes(n *Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return placeholderName
	}
	return name
}
