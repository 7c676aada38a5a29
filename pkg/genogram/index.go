package genogram

// Index derives relationship lookups (parents-of, spouses-of,
// children-of-group) from the flat per-person references.
//
// Parent and spouse lookups are cached per id. The caches are created fresh
// when the index is built at the start of a layout pass and can be dropped
// explicitly with invalidate, so no pass ever observes stale entries.
//
// All traversal happens over the original person-list order, never over map
// iteration, so derived lists are deterministic.
type Index struct {
	order []*Node
	byID  map[string]*Node

	parents map[string][]*Node
	spouses map[string][]*Node
}

// newIndex builds an index over the given nodes. Later nodes win on
// duplicate ids; uniqueness is the data owner's responsibility.
func newIndex(nodes []*Node) *Index {
	ix := &Index{
		order: nodes,
		byID:  make(map[string]*Node, len(nodes)),
	}
	for _, n := range nodes {
		ix.byID[n.ID] = n
	}
	ix.invalidate()
	return ix
}

// invalidate drops the per-id lookup caches.
func (ix *Index) invalidate() {
	ix.parents = make(map[string][]*Node)
	ix.spouses = make(map[string][]*Node)
}

// Node returns the node with the given id.
func (ix *Index) Node(id string) (*Node, bool) {
	n, ok := ix.byID[id]
	return n, ok
}

// Nodes returns all nodes in person-list order. The slice is shared; treat
// it as read-only.
func (ix *Index) Nodes() []*Node { return ix.order }

// ParentsOf returns the nodes whose id appears in the node's father or
// mother id lists, deduplicated, fathers first. Dangling references are
// excluded. Results are cached per id.
func (ix *Index) ParentsOf(n *Node) []*Node {
	if cached, ok := ix.parents[n.ID]; ok {
		return cached
	}
	var out []*Node
	seen := make(map[string]bool)
	for _, id := range n.FatherIDs {
		if p, ok := ix.byID[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, p)
		}
	}
	for _, id := range n.MotherIDs {
		if p, ok := ix.byID[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, p)
		}
	}
	ix.parents[n.ID] = out
	return out
}

// SpousesOf returns the symmetric closure of the spouse relation for the
// node: the union of nodes it declares as spouses and nodes that declare it,
// deduplicated by id. Declared spouses come first in their declared order,
// then declarers in person-list order. Results are cached per id.
func (ix *Index) SpousesOf(n *Node) []*Node {
	if cached, ok := ix.spouses[n.ID]; ok {
		return cached
	}
	var out []*Node
	seen := map[string]bool{n.ID: true}
	for _, id := range n.SpouseIDs {
		if s, ok := ix.byID[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, s)
		}
	}
	for _, other := range ix.order {
		if seen[other.ID] {
			continue
		}
		for _, id := range other.SpouseIDs {
			if id == n.ID {
				seen[other.ID] = true
				out = append(out, other)
				break
			}
		}
	}
	ix.spouses[n.ID] = out
	return out
}

// ChildrenOf returns all nodes whose father-id or mother-id list intersects
// the ids of the given group, in person-list order.
func (ix *Index) ChildrenOf(group []*Node) []*Node {
	if len(group) == 0 {
		return nil
	}
	ids := make(map[string]bool, len(group))
	for _, m := range group {
		ids[m.ID] = true
	}
	var out []*Node
	for _, n := range ix.order {
		if intersects(n.FatherIDs, ids) || intersects(n.MotherIDs, ids) {
			out = append(out, n)
		}
	}
	return out
}

// Roots returns the nodes with no father and no mother references, in
// person-list order.
func (ix *Index) Roots() []*Node {
	var out []*Node
	for _, n := range ix.order {
		if n.IsRoot() {
			out = append(out, n)
		}
	}
	return out
}

func intersects(ids []string, set map[string]bool) bool {
	for _, id := range ids {
		if set[id] {
			return true
		}
	}
	return false
}
