package genogram

import (
	"slices"
)

// ConnectionKind identifies the shape of one connector draw request.
type ConnectionKind int

const (
	// KindLine is a straight segment between two points.
	KindLine ConnectionKind = iota
	// KindPath is a multi-segment routed line through all points in order.
	KindPath
	// KindJunction is a decorative marker at a single point.
	KindJunction
)

// String returns the kind name used in serialized layouts.
func (k ConnectionKind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindJunction:
		return "junction"
	default:
		return "line"
	}
}

// Connection is one connector draw request. The rendering sink converts it
// into pixel output without performing any geometry of its own.
type Connection struct {
	Kind   ConnectionKind
	Points []Point
	Color  string
	Width  float64
	Dashed bool
}

// Stroke widths for the two connector families.
const (
	marriageStrokeWidth = 2.0
	childStrokeWidth    = 1.5
)

// stubLength is the fixed drop of the marriage stub segments, perpendicular
// to the couple axis.
const stubLength = 20.0

// childConnectorColor is the stroke for connectors that do not belong to a
// recorded marriage.
const childConnectorColor = "#555555"

// marriagePalette is the fixed color cycle for marriage lines. Colors are
// assigned by walking the lexicographically sorted marriage keys, so the
// assignment depends only on the person set, never on traversal order.
var marriagePalette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#46f0f0", // cyan
	"#f032e6", // magenta
	"#9a6324", // brown
}

// Marriage is the derived record for one husband/spouse pair within a single
// routing pass. It is keyed "husbandId|spouseId" (ordered, husband first)
// and recomputed from scratch on every pass.
type Marriage struct {
	Key         string
	Husband     *Node
	Spouse      *Node
	SpouseIndex int
	Status      MarriageStatus
	Color       string

	// HusbandAnchor and SpouseAnchor are the box-edge attachment points of
	// the marriage line.
	HusbandAnchor Point
	SpouseAnchor  Point

	// Point is the single attachment target for the couple's children,
	// placed on the bridge between the stub ends: at the midpoint for a
	// first spouse, biased toward the spouse for later marriages.
	Point Point
}

// MarriageKey builds the ordered key identifying the marriage between a
// husband and one spouse.
func MarriageKey(husbandID, spouseID string) string {
	return husbandID + "|" + spouseID
}

// Router computes marriage geometry and parent-child connector paths from
// final node positions. All routing state is cleared at the start of every
// Route call; nothing survives between draw cycles.
type Router struct {
	opts     Options
	index    *Index
	classify func(husband, spouse *Node) MarriageStatus

	marriages map[string]*Marriage
	keys      []string
}

// NewRouter creates a router over the given relationship index. classify may
// be nil, in which case every marriage is StatusMarried.
func NewRouter(opts Options, index *Index, classify func(husband, spouse *Node) MarriageStatus) *Router {
	return &Router{
		opts:     opts.withDefaults(),
		index:    index,
		classify: classify,
	}
}

// Marriages returns the marriage records of the most recent Route call,
// keyed "husbandId|spouseId".
func (r *Router) Marriages() map[string]*Marriage { return r.marriages }

// Route computes all connector draw requests for the current positions:
// marriage lines with their junction markers first, then parent-child
// connectors, both in deterministic order.
func (r *Router) Route() []Connection {
	r.marriages = make(map[string]*Marriage)
	r.keys = r.keys[:0]

	r.collectMarriages()
	r.assignColors()

	var conns []Connection
	conns = append(conns, r.marriageConnections()...)
	conns = append(conns, r.childConnections()...)
	return conns
}

// collectMarriages enumerates every male node's spouse list once and records
// one marriage per (husband, spouse, index) triple.
func (r *Router) collectMarriages() {
	for _, n := range r.index.Nodes() {
		if n.Gender != Male {
			continue
		}
		for i, spouse := range r.index.SpousesOf(n) {
			key := MarriageKey(n.ID, spouse.ID)
			if _, ok := r.marriages[key]; ok {
				continue
			}
			status := StatusMarried
			if r.classify != nil {
				status = r.classify(n, spouse)
			}
			r.marriages[key] = &Marriage{
				Key:         key,
				Husband:     n,
				Spouse:      spouse,
				SpouseIndex: i,
				Status:      status,
			}
			r.keys = append(r.keys, key)
		}
	}
	slices.Sort(r.keys)
}

// assignColors cycles the palette over the sorted key list and computes the
// anchor, stub and marriage point geometry for every marriage.
func (r *Router) assignColors() {
	for i, key := range r.keys {
		m := r.marriages[key]
		m.Color = marriagePalette[i%len(marriagePalette)]

		m.HusbandAnchor = m.Husband.Anchor(SideRight, r.opts)
		m.SpouseAnchor = m.Spouse.Anchor(SideLeft, r.opts)

		stubH := r.opts.offsetSecondary(m.HusbandAnchor, stubLength)
		stubS := r.opts.offsetSecondary(m.SpouseAnchor, stubLength)

		weight := 0.5
		if m.SpouseIndex > 0 {
			weight = 0.9
		}
		m.Point = lerp(stubH, stubS, weight)
	}
}

// marriageConnections emits, per marriage in sorted key order, the routed
// anchor-stub-bridge-stub-anchor path and a junction marker at the marriage
// point. Non-married statuses render dashed.
func (r *Router) marriageConnections() []Connection {
	conns := make([]Connection, 0, len(r.keys)*2)
	for _, key := range r.keys {
		m := r.marriages[key]
		stubH := r.opts.offsetSecondary(m.HusbandAnchor, stubLength)
		stubS := r.opts.offsetSecondary(m.SpouseAnchor, stubLength)

		conns = append(conns, Connection{
			Kind:   KindPath,
			Points: []Point{m.HusbandAnchor, stubH, stubS, m.SpouseAnchor},
			Color:  m.Color,
			Width:  marriageStrokeWidth,
			Dashed: m.Status != StatusMarried,
		})
		conns = append(conns, Connection{
			Kind:   KindJunction,
			Points: []Point{m.Point},
			Color:  m.Color,
			Width:  marriageStrokeWidth,
		})
	}
	return conns
}

// childConnections routes one connector per child and parent pairing: from
// the marriage point when the father and mother have a recorded marriage,
// otherwise from each remaining parent's bottom anchor. A child with a
// single known parent always takes the individual path.
func (r *Router) childConnections() []Connection {
	var conns []Connection
	for _, child := range r.index.Nodes() {
		fathers := r.resolve(child.FatherIDs)
		mothers := r.resolve(child.MotherIDs)
		if len(fathers) == 0 && len(mothers) == 0 {
			continue
		}

		target := child.Anchor(SideTop, r.opts)
		consumed := make(map[string]bool)

		for _, f := range fathers {
			for _, mo := range mothers {
				m, ok := r.marriages[MarriageKey(f.ID, mo.ID)]
				if !ok {
					continue
				}
				conns = append(conns, Connection{
					Kind:   KindLine,
					Points: []Point{m.Point, target},
					Color:  m.Color,
					Width:  childStrokeWidth,
				})
				consumed[f.ID] = true
				consumed[mo.ID] = true
			}
		}

		for _, p := range append(fathers, mothers...) {
			if consumed[p.ID] {
				continue
			}
			conns = append(conns, Connection{
				Kind:   KindLine,
				Points: []Point{p.Anchor(SideBottom, r.opts), target},
				Color:  childConnectorColor,
				Width:  childStrokeWidth,
			})
		}
	}
	return conns
}

// resolve maps ids to nodes in declared order, dropping duplicates and
// dangling references.
func (r *Router) resolve(ids []string) []*Node {
	var out []*Node
	seen := make(map[string]bool)
	for _, id := range ids {
		if n, ok := r.index.Node(id); ok && !seen[id] {
			seen[id] = true
			out = append(out, n)
		}
	}
	return out
}

// lerp returns the point at fraction t along the segment a→b.
func lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}
