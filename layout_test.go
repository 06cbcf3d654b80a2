package brainmap

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want, epsilon) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// layoutTree is the reference shape: root → (A → (A1, A2), B).
func layoutTree(t *testing.T) *Node {
	t.Helper()
	tr := NewTree("root")
	err := tr.SetData(&Node{
		ID: "root", Name: "root",
		Children: []*Node{
			{ID: "A", Name: "A", Children: []*Node{
				{ID: "A1", Name: "A1"},
				{ID: "A2", Name: "A2"},
			}},
			{ID: "B", Name: "B"},
		},
	})
	if err != nil {
		t.Fatalf("SetData: %v", err)
	}
	return tr.Root()
}

// --- annotate ---

func TestAnnotateLeafCounts(t *testing.T) {
	info := annotate(layoutTree(t))
	cases := []struct {
		id     string
		leaves int
		leaf   bool
	}{
		{"root", 3, false},
		{"A", 2, false},
		{"A1", 1, true},
		{"A2", 1, true},
		{"B", 1, true},
	}
	for _, c := range cases {
		in := info[c.id]
		if in.leaves != c.leaves {
			t.Errorf("%s leaves = %d, want %d", c.id, in.leaves, c.leaves)
		}
		if in.leaf != c.leaf {
			t.Errorf("%s leaf = %v, want %v", c.id, in.leaf, c.leaf)
		}
	}
}

func TestAnnotateSingleNode(t *testing.T) {
	info := annotate(&Node{ID: "r", Name: "r"})
	if in := info["r"]; in.leaves != 1 || !in.leaf {
		t.Errorf("single node info = %+v, want leaves 1, leaf true", in)
	}
}

// --- ComputeLayout ---

func TestLayoutRootAtCenter(t *testing.T) {
	l := ComputeLayout(layoutTree(t), DefaultOptions())
	p := l.Nodes["root"]
	assertNear(t, "root.X", p.X, 400)
	assertNear(t, "root.Y", p.Y, 400)
	assertNear(t, "root.Radius", p.Radius, 0)
	if p.Depth != 0 || !p.IsRoot {
		t.Errorf("root placement = %+v", p)
	}
}

func TestLayoutReferenceScenario(t *testing.T) {
	// 800×800 canvas, radius step 120: A carries 2 of the root's 3 leaves,
	// B the remaining one. The sweep starts at 12 o'clock trimmed by the
	// seam gap on both ends.
	l := ComputeLayout(layoutTree(t), DefaultOptions())

	sweep := 2*math.Pi - 2*sectorSeamGap
	start := -math.Pi/2 + sectorSeamGap

	a := l.Nodes["A"]
	assertNear(t, "A.SectorStart", a.SectorStart, start)
	assertNear(t, "A.SectorWidth", a.SectorWidth, sweep*2/3)
	assertNear(t, "A.Angle", a.Angle, start+sweep/3)
	assertNear(t, "A.Radius", a.Radius, 120)
	assertNear(t, "A.X", a.X, 400+120*math.Cos(a.Angle))
	assertNear(t, "A.Y", a.Y, 400+120*math.Sin(a.Angle))

	b := l.Nodes["B"]
	assertNear(t, "B.SectorStart", b.SectorStart, start+sweep*2/3)
	assertNear(t, "B.SectorWidth", b.SectorWidth, sweep/3)
	assertNear(t, "B.Angle", b.Angle, start+sweep*2/3+sweep/6)

	a1 := l.Nodes["A1"]
	a2 := l.Nodes["A2"]
	assertNear(t, "A1.Radius", a1.Radius, 240)
	assertNear(t, "A2.Radius", a2.Radius, 240)
	// A's children split A's sector evenly: one leaf each.
	assertNear(t, "A1.SectorWidth", a1.SectorWidth, a.SectorWidth/2)
	assertNear(t, "A2.SectorWidth", a2.SectorWidth, a.SectorWidth/2)
	assertNear(t, "A2.SectorStart", a2.SectorStart, a1.SectorEnd())
}

func TestLayoutAngleIsSectorMidpoint(t *testing.T) {
	l := ComputeLayout(layoutTree(t), DefaultOptions())
	for id, p := range l.Nodes {
		assertNear(t, id+" midpoint", p.Angle, p.SectorStart+p.SectorWidth/2)
	}
}

func TestLayoutChildSectorsTileParent(t *testing.T) {
	root := layoutTree(t)
	l := ComputeLayout(root, DefaultOptions())

	var check func(n *Node)
	check = func(n *Node) {
		if len(n.Children) == 0 {
			return
		}
		p := l.Nodes[n.ID]
		cursor := p.SectorStart
		for _, c := range n.Children {
			cp := l.Nodes[c.ID]
			assertNear(t, c.ID+" contiguous", cp.SectorStart, cursor)
			cursor = cp.SectorEnd()
			check(c)
		}
		assertNear(t, n.ID+" covered", cursor, p.SectorEnd())
	}
	check(root)
}

func TestLayoutProportionalToLeafCount(t *testing.T) {
	root := layoutTree(t)
	l := ComputeLayout(root, DefaultOptions())
	a := l.Nodes["A"]
	b := l.Nodes["B"]
	assertNear(t, "A:B sector ratio", a.SectorWidth/b.SectorWidth, 2)
}

func TestLayoutDeterministic(t *testing.T) {
	root := layoutTree(t)
	l1 := ComputeLayout(root, DefaultOptions())
	l2 := ComputeLayout(root, DefaultOptions())
	if len(l1.Nodes) != len(l2.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(l1.Nodes), len(l2.Nodes))
	}
	for id, p1 := range l1.Nodes {
		p2 := l2.Nodes[id]
		if p1 != p2 {
			t.Errorf("%s differs between runs: %+v vs %+v", id, p1, p2)
		}
	}
	for i := range l1.Order {
		if l1.Order[i] != l2.Order[i] {
			t.Fatalf("order differs at %d: %s vs %s", i, l1.Order[i], l2.Order[i])
		}
	}
}

func TestLayoutOrderIsPreOrder(t *testing.T) {
	l := ComputeLayout(layoutTree(t), DefaultOptions())
	want := []string{"root", "A", "A1", "A2", "B"}
	if len(l.Order) != len(want) {
		t.Fatalf("order = %v, want %v", l.Order, want)
	}
	for i := range want {
		if l.Order[i] != want[i] {
			t.Fatalf("order = %v, want %v", l.Order, want)
		}
	}
}

func TestLayoutEdgesFollowChildOrder(t *testing.T) {
	l := ComputeLayout(layoutTree(t), DefaultOptions())
	want := []Edge{
		{ParentID: "root", ChildID: "A"},
		{ParentID: "A", ChildID: "A1"},
		{ParentID: "A", ChildID: "A2"},
		{ParentID: "root", ChildID: "B"},
	}
	if len(l.Edges) != len(want) {
		t.Fatalf("edges = %v, want %v", l.Edges, want)
	}
	for i := range want {
		if l.Edges[i] != want[i] {
			t.Fatalf("edges = %v, want %v", l.Edges, want)
		}
	}
}

func TestLayoutSingleNode(t *testing.T) {
	l := ComputeLayout(&Node{ID: "r", Name: "r"}, DefaultOptions())
	p := l.Nodes["r"]
	assertNear(t, "X", p.X, 400)
	assertNear(t, "Y", p.Y, 400)
	if !p.IsRoot || !p.IsLeaf {
		t.Errorf("placement = %+v, want root and leaf", p)
	}
	if len(l.Edges) != 0 {
		t.Errorf("edges = %v, want none", l.Edges)
	}
}

func TestLayoutDepthTimesRadiusStep(t *testing.T) {
	opts := DefaultOptions()
	opts.RadiusStep = 75
	l := ComputeLayout(layoutTree(t), opts)
	assertNear(t, "A.Radius", l.Nodes["A"].Radius, 75)
	assertNear(t, "A1.Radius", l.Nodes["A1"].Radius, 150)
}

func TestLayoutMutationThenRecompute(t *testing.T) {
	tr := NewTree("root")
	a, _ := tr.AddChild(tr.Root().ID, "a")
	l1 := ComputeLayout(tr.Root(), DefaultOptions())
	assertNear(t, "only child sweep", l1.Nodes[a.ID].SectorWidth, 2*math.Pi-2*sectorSeamGap)

	b, _ := tr.AddChild(tr.Root().ID, "b")
	l2 := ComputeLayout(tr.Root(), DefaultOptions())
	assertNear(t, "half sweep a", l2.Nodes[a.ID].SectorWidth, (2*math.Pi-2*sectorSeamGap)/2)
	assertNear(t, "half sweep b", l2.Nodes[b.ID].SectorWidth, (2*math.Pi-2*sectorSeamGap)/2)
}
