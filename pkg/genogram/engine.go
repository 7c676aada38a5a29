package genogram

import (
	"cmp"
	"math"
	"slices"
)

// Placement is one (nodeId, absolute position) pair produced by a layout
// pass. Placements are emitted in person-list order.
type Placement struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Engine runs layout passes over a person collection. It owns the node set
// while a pass runs and rebuilds it from scratch on every invocation, so the
// engine can be reused across data replacements without carrying stale
// state.
//
// The engine is not safe for concurrent use; a pass is a single-threaded,
// run-to-completion computation with no suspension points.
type Engine[E any] struct {
	schema   Schema[E]
	classify Classifier[E]
	opts     Options

	persons []E
	nodes   []*Node
	index   *Index
}

// EngineOption configures an Engine at construction time.
type EngineOption[E any] func(*Engine[E])

// WithClassifier installs a marriage status classifier. Without one, every
// marriage is StatusMarried.
func WithClassifier[E any](c Classifier[E]) EngineOption[E] {
	return func(e *Engine[E]) { e.classify = c }
}

// NewEngine creates an engine for the given schema and options. Zero-valued
// dimensions in opts are replaced by package defaults.
func NewEngine[E any](schema Schema[E], opts Options, eopts ...EngineOption[E]) *Engine[E] {
	e := &Engine[E]{
		schema: schema,
		opts:   opts.withDefaults(),
	}
	for _, o := range eopts {
		o(e)
	}
	return e
}

// Options returns the effective layout options.
func (e *Engine[E]) Options() Options { return e.opts }

// SetPersons replaces the person collection. The node set and relationship
// caches are discarded; the next pass rebuilds them.
func (e *Engine[E]) SetPersons(persons []E) {
	e.persons = slices.Clone(persons)
	e.nodes = nil
	e.index = nil
}

// Nodes returns the node set of the most recent pass, in person-list order.
// It is nil before the first pass.
func (e *Engine[E]) Nodes() []*Node { return e.nodes }

// Index returns the relationship index of the most recent pass. It is nil
// before the first pass.
func (e *Engine[E]) Index() *Index { return e.index }

// layoutPass is the mutable state threaded through one recursive layout
// pass. It is created fresh for every pass and discarded afterwards, keeping
// the recursion reentrant and the engine idempotent.
type layoutPass struct {
	// laidOut holds the ids of nodes that already received a position.
	laidOut map[string]bool

	// levelEdges records, per generation depth, the farthest primary-axis
	// coordinate already occupied. It gives O(generations) overlap
	// avoidance between unrelated branches without a collision search.
	levelEdges map[int]float64
}

func newLayoutPass() *layoutPass {
	return &layoutPass{
		laidOut:    make(map[string]bool),
		levelEdges: make(map[int]float64),
	}
}

// extendEdge widens the occupied extent of a generation.
func (p *layoutPass) extendEdge(generation int, edge float64) {
	if cur, ok := p.levelEdges[generation]; !ok || edge > cur {
		p.levelEdges[generation] = edge
	}
}

// maxEdge returns the farthest occupied primary coordinate over all
// generations.
func (p *layoutPass) maxEdge() float64 {
	var max float64
	for _, e := range p.levelEdges {
		if e > max {
			max = e
		}
	}
	return max
}

// CalculatePositions runs a full layout pass and returns the placements in
// person-list order. The node set, relationship caches and all pass state
// are rebuilt from scratch, so repeated calls over unchanged data produce
// identical positions.
func (e *Engine[E]) CalculatePositions() []Placement {
	e.rebuild()

	pass := newLayoutPass()
	roots := e.index.Roots()
	slices.SortFunc(roots, func(a, b *Node) int {
		if a.Gender != b.Gender {
			if a.Gender == Male {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})

	// Independent family trees advance along the primary axis, separated
	// by three spacings from everything placed so far.
	var cursor float64
	for _, root := range roots {
		if pass.laidOut[root.ID] {
			continue
		}
		if fp := e.layoutFamily(pass, root, cursor, e.opts.Spacing*2, 0); fp > 0 {
			cursor = pass.maxEdge() + e.opts.Spacing*3
		}
	}

	placements := make([]Placement, len(e.nodes))
	for i, n := range e.nodes {
		placements[i] = Placement{ID: n.ID, X: n.Pos.X, Y: n.Pos.Y}
	}
	return placements
}

// Compute runs layout and routing in one pass and returns the placements
// together with the connector draw requests.
func (e *Engine[E]) Compute() ([]Placement, []Connection) {
	placements := e.CalculatePositions()
	router := NewRouter(e.opts, e.index, e.nodeClassifier())
	return placements, router.Route()
}

// Bounds returns the frame extents of the most recent pass: the maximum
// box corner coordinate on each axis plus one spacing of margin.
func (e *Engine[E]) Bounds() (width, height float64) {
	for _, n := range e.nodes {
		if x := n.Pos.X + e.opts.BoxWidth; x > width {
			width = x
		}
		if y := n.Pos.Y + e.opts.BoxHeight; y > height {
			height = y
		}
	}
	if width > 0 {
		width += e.opts.Spacing
		height += e.opts.Spacing
	}
	return width, height
}

// rebuild snapshots the person collection into fresh nodes and a fresh
// relationship index. Nothing survives from the previous pass.
func (e *Engine[E]) rebuild() {
	e.nodes = make([]*Node, 0, len(e.persons))
	for _, p := range e.persons {
		e.nodes = append(e.nodes, &Node{
			ID:        e.schema.ID(p),
			FatherIDs: slices.Clone(e.schema.FatherIDs(p)),
			MotherIDs: slices.Clone(e.schema.MotherIDs(p)),
			SpouseIDs: slices.Clone(e.schema.SpouseIDs(p)),
			Gender:    e.schema.Gender(p),
		})
	}
	e.index = newIndex(e.nodes)
}

// layoutFamily places node's couple group at the given generation and
// recursively places its children one generation down. It returns the
// primary-axis footprint consumed by the subtree, or 0 when the node was
// already placed or deferred.
func (e *Engine[E]) layoutFamily(pass *layoutPass, node *Node, primaryStart, secondary float64, generation int) float64 {
	// Keep everything away from the coordinate origin.
	if min := e.opts.Spacing * 2; primaryStart < min {
		primaryStart = min
	}
	if pass.laidOut[node.ID] {
		return 0
	}
	// Stay clear of siblings already placed at this depth.
	if edge, ok := pass.levelEdges[generation]; ok && primaryStart < edge+e.opts.Spacing {
		primaryStart = edge + e.opts.Spacing
	}

	group := e.coupleGroup(pass, node)
	if len(group) == 0 {
		return 0
	}

	boxP := e.opts.boxPrimary()
	groupSize := float64(len(group))*boxP + float64(len(group)-1)*e.opts.Spacing
	for i, m := range group {
		m.Pos = e.opts.point(primaryStart+float64(i)*(boxP+e.opts.Spacing), secondary)
	}

	var children []*Node
	for _, c := range e.index.ChildrenOf(group) {
		if !pass.laidOut[c.ID] {
			children = append(children, c)
		}
	}
	sortChildren(group, children)

	if len(children) == 0 {
		pass.extendEdge(generation, primaryStart+groupSize)
		return groupSize
	}

	childSecondary := secondary + e.opts.boxSecondary() + e.opts.RunSpacing
	cursor := primaryStart
	var childrenTotal float64
	for _, c := range children {
		fp := e.layoutFamily(pass, c, cursor, childSecondary, generation+1)
		if fp == 0 {
			continue
		}
		cursor += fp + e.opts.Spacing
		childrenTotal += fp + e.opts.Spacing
	}
	if childrenTotal > 0 {
		childrenTotal -= e.opts.Spacing
	}

	// Center the couple over a wider descendant span. Both spans begin at
	// primaryStart, so the shift is half the size difference. A narrower
	// span never pulls the group back: that would cross the margin and
	// the level edge.
	if shift := (childrenTotal - groupSize) / 2; shift > 0 {
		for _, m := range group {
			m.Pos = e.opts.shiftPrimary(m.Pos, shift)
		}
	}

	footprint := math.Max(groupSize, childrenTotal)
	pass.extendEdge(generation, primaryStart+footprint)
	return footprint
}

// coupleGroup assembles the family unit placed around node and marks its
// members as laid out. A male gathers all his spouses; a female is deferred
// (empty group) while a not-yet-placed male claims her, and otherwise forms
// a singleton group.
func (e *Engine[E]) coupleGroup(pass *layoutPass, node *Node) []*Node {
	if node.Gender == Male {
		group := append([]*Node{node}, e.index.SpousesOf(node)...)
		for _, m := range group {
			// Unmark before re-marking so a stale mark from an
			// interrupted traversal cannot survive the group.
			delete(pass.laidOut, m.ID)
			pass.laidOut[m.ID] = true
		}
		return group
	}

	for _, s := range e.index.SpousesOf(node) {
		if s.Gender == Male && !pass.laidOut[s.ID] {
			return nil
		}
	}
	pass.laidOut[node.ID] = true
	return []*Node{node}
}

// nodeClassifier adapts the person-level classifier to nodes for routing.
func (e *Engine[E]) nodeClassifier() func(husband, spouse *Node) MarriageStatus {
	if e.classify == nil {
		return nil
	}
	byID := make(map[string]E, len(e.persons))
	for _, p := range e.persons {
		byID[e.schema.ID(p)] = p
	}
	return func(husband, spouse *Node) MarriageStatus {
		h, okH := byID[husband.ID]
		s, okS := byID[spouse.ID]
		if !okH || !okS {
			return StatusMarried
		}
		return e.classify(h, s)
	}
}
