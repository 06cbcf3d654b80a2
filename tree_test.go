package brainmap

import (
	"errors"
	"testing"
)

// buildTree returns root → (a → (a1, a2), b) with fixed ids.
func buildTree(t *testing.T) *Tree {
	t.Helper()
	tr := NewTree("root")
	err := tr.SetData(&Node{
		ID: "root", Name: "root",
		Children: []*Node{
			{ID: "a", Name: "a", Children: []*Node{
				{ID: "a1", Name: "a1"},
				{ID: "a2", Name: "a2"},
			}},
			{ID: "b", Name: "b"},
		},
	})
	if err != nil {
		t.Fatalf("SetData: %v", err)
	}
	return tr
}

func childIDs(n *Node) []string {
	ids := make([]string, len(n.Children))
	for i, c := range n.Children {
		ids[i] = c.ID
	}
	return ids
}

func TestNewTreeHasSingleRoot(t *testing.T) {
	tr := NewTree("idea")
	if tr.Root() == nil {
		t.Fatal("no root")
	}
	if tr.Root().Name != "idea" {
		t.Errorf("root name = %q, want %q", tr.Root().Name, "idea")
	}
	if tr.Root().ID == "" {
		t.Error("root has no id")
	}
	if tr.Size() != 1 {
		t.Errorf("size = %d, want 1", tr.Size())
	}
}

func TestNewTreeEmptyNameGetsPlaceholder(t *testing.T) {
	tr := NewTree("   ")
	if tr.Root().Name != placeholderName {
		t.Errorf("root name = %q, want %q", tr.Root().Name, placeholderName)
	}
}

func TestFindByID(t *testing.T) {
	tr := buildTree(t)
	if n := tr.FindByID("a2"); n == nil || n.Name != "a2" {
		t.Errorf("FindByID(a2) = %v", n)
	}
	if n := tr.FindByID("missing"); n != nil {
		t.Errorf("FindByID(missing) = %v, want nil", n)
	}
}

func TestFindParent(t *testing.T) {
	tr := buildTree(t)
	if p := tr.FindParent("a1"); p == nil || p.ID != "a" {
		t.Errorf("FindParent(a1) = %v, want a", p)
	}
	if p := tr.FindParent("root"); p != nil {
		t.Errorf("FindParent(root) = %v, want nil", p)
	}
	if p := tr.FindParent("missing"); p != nil {
		t.Errorf("FindParent(missing) = %v, want nil", p)
	}
}

func TestAddChildAppends(t *testing.T) {
	tr := buildTree(t)
	c, err := tr.AddChild("a", "a3")
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	a := tr.FindByID("a")
	got := childIDs(a)
	want := []string{"a1", "a2", c.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestAddChildUnknownParent(t *testing.T) {
	tr := buildTree(t)
	if _, err := tr.AddChild("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddChildGeneratesUniqueIDs(t *testing.T) {
	tr := NewTree("root")
	seen := map[string]bool{tr.Root().ID: true}
	for i := 0; i < 100; i++ {
		c, err := tr.AddChild(tr.Root().ID, "n")
		if err != nil {
			t.Fatalf("AddChild: %v", err)
		}
		if seen[c.ID] {
			t.Fatalf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestAddSiblingInsertsAfter(t *testing.T) {
	tr := buildTree(t)
	s, err := tr.AddSibling("a", "C")
	if err != nil {
		t.Fatalf("AddSibling: %v", err)
	}
	got := childIDs(tr.Root())
	want := []string{"a", s.ID, "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestAddSiblingOfLastChild(t *testing.T) {
	tr := buildTree(t)
	s, err := tr.AddSibling("b", "c")
	if err != nil {
		t.Fatalf("AddSibling: %v", err)
	}
	got := childIDs(tr.Root())
	if got[len(got)-1] != s.ID {
		t.Errorf("children = %v, want %s last", got, s.ID)
	}
}

func TestAddSiblingOfRootFails(t *testing.T) {
	tr := buildTree(t)
	if _, err := tr.AddSibling("root", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if tr.FindByID("a") != nil || tr.FindByID("a1") != nil || tr.FindByID("a2") != nil {
		t.Error("subtree nodes still present")
	}
	if tr.Size() != 2 {
		t.Errorf("size = %d, want 2", tr.Size())
	}
}

func TestDeleteLastChildLeavesNilSlice(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Delete("a1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := tr.Delete("a2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if tr.FindByID("a").Children != nil {
		t.Error("children slice not normalized to nil")
	}
}

func TestDeleteRootRejected(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Delete("root"); !errors.Is(err, ErrDeleteRoot) {
		t.Errorf("err = %v, want ErrDeleteRoot", err)
	}
	if tr.FindByID("root") == nil {
		t.Error("root gone after rejected delete")
	}
}

func TestDeleteUnknownNode(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRename(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Rename("a", "Alpha"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got := tr.FindByID("a").Name; got != "Alpha" {
		t.Errorf("name = %q, want %q", got, "Alpha")
	}
}

func TestRenameEmptyFallsBackToPlaceholder(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Rename("a", ""); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got := tr.FindByID("a").Name; got != placeholderName {
		t.Errorf("name = %q, want %q", got, placeholderName)
	}
	if err := tr.Rename("a", "  \t "); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got := tr.FindByID("a").Name; got != placeholderName {
		t.Errorf("name = %q, want %q", got, placeholderName)
	}
}

func TestRenameTrimsWhitespace(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Rename("a", "  Alpha  "); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got := tr.FindByID("a").Name; got != "Alpha" {
		t.Errorf("name = %q, want %q", got, "Alpha")
	}
}

func TestRenameUnknownNode(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Rename("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
