package brainmap

import "math"

// sectorSeamGap trims the root sweep at both ends so the first and last
// branches do not meet at the 12 o'clock seam.
const sectorSeamGap = 0.01

// Placement is the computed geometry for one node, in diagram coordinates.
type Placement struct {
	X, Y   float64
	Angle  float64 // radians; 0 points right, -π/2 points up
	Radius float64
	Depth  int

	LeafCount int
	IsRoot    bool
	IsLeaf    bool

	// SectorStart and SectorWidth describe the angular interval allocated to
	// this node's subtree. Angle is always the interval midpoint.
	SectorStart float64
	SectorWidth float64
}

// SectorEnd returns the exclusive end of the node's angular interval.
func (p Placement) SectorEnd() float64 {
	return p.SectorStart + p.SectorWidth
}

// Edge is a parent→child connector pair, emitted in drawing order.
type Edge struct {
	ParentID string
	ChildID  string
}

// Layout holds the full placement result for one tree. It is a pure function
// of the tree and options — recomputing after every mutation never drifts,
// and two computations of the same tree are identical.
type Layout struct {
	Nodes map[string]Placement
	Edges []Edge
	// Order lists node ids in pre-order: the stable drawing order.
	Order   []string
	CenterX float64
	CenterY float64
}

// ComputeLayout places every node of the tree radially. The root sits at the
// canvas center with the full sweep starting at 12 o'clock; each child's
// sector is a contiguous slice of its parent's sector proportional to leaf
// count, assigned in child order with no gaps or overlaps. A node sits at its
// sector midpoint — recursive bisection by the ancestors, not the centroid of
// descendants — at radius depth × RadiusStep.
func ComputeLayout(root *Node, opts Options) *Layout {
	opts = opts.withDefaults()
	info := annotate(root)

	l := &Layout{
		Nodes:   make(map[string]Placement, len(info)),
		Order:   make([]string, 0, len(info)),
		CenterX: opts.Width / 2,
		CenterY: opts.Height / 2,
	}

	start := -math.Pi/2 + sectorSeamGap
	width := 2*math.Pi - 2*sectorSeamGap
	l.place(root, info, opts.RadiusStep, 0, 0, start, width, true)
	return l
}

func (l *Layout) place(n *Node, info map[string]subtreeInfo, radiusStep float64, depth int, angle, sectorStart, sectorWidth float64, isRoot bool) {
	in := info[n.ID]
	radius := float64(depth) * radiusStep
	l.Nodes[n.ID] = Placement{
		X:           l.CenterX + radius*math.Cos(angle),
		Y:           l.CenterY + radius*math.Sin(angle),
		Angle:       angle,
		Radius:      radius,
		Depth:       depth,
		LeafCount:   in.leaves,
		IsRoot:      isRoot,
		IsLeaf:      in.leaf,
		SectorStart: sectorStart,
		SectorWidth: sectorWidth,
	}
	l.Order = append(l.Order, n.ID)

	cursor := sectorStart
	for _, c := range n.Children {
		share := sectorWidth * float64(info[c.ID].leaves) / float64(in.leaves)
		l.Edges = append(l.Edges, Edge{ParentID: n.ID, ChildID: c.ID})
		l.place(c, info, radiusStep, depth+1, cursor+share/2, cursor, share, false)
		cursor += share
	}
}
