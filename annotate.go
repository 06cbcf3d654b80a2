package brainmap

// subtreeInfo is the output of the leaf-count pass for one node. It lives in
// a side table keyed by id so the persisted Node never carries layout state.
type subtreeInfo struct {
	leaves int
	leaf   bool
}

// annotate computes leaf counts for every node in post-order. A node with no
// children counts itself, so every entry has leaves >= 1 — the layout divides
// by these counts.
func annotate(root *Node) map[string]subtreeInfo {
	info := make(map[string]subtreeInfo)
	annotateNode(root, info)
	return info
}

func annotateNode(n *Node, info map[string]subtreeInfo) int {
	if len(n.Children) == 0 {
		info[n.ID] = subtreeInfo{leaves: 1, leaf: true}
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += annotateNode(c, info)
	}
	info[n.ID] = subtreeInfo{leaves: total}
	return total
}
