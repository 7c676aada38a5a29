package genogram

// Node wraps one person snapshot with its computed position. Nodes are
// rebuilt from the person collection at the start of every layout pass and
// are owned by the [Engine] while the pass runs; afterwards they are
// read-only inputs to routing and rendering.
//
// Relationship references are snapshotted by id rather than by object so
// that two passes over logically identical data always agree, even when the
// caller re-materializes its person records between passes.
type Node struct {
	ID        string
	FatherIDs []string
	MotherIDs []string
	SpouseIDs []string
	Gender    Gender

	// Pos is the top-left corner of the person's box, assigned during
	// layout. A node is positioned at most once per pass.
	Pos Point
}

// IsRoot reports whether the node carries no parent references at all.
// Only reference presence counts: a dangling father id still disqualifies
// the node from the root set.
func (n *Node) IsRoot() bool {
	return len(n.FatherIDs) == 0 && len(n.MotherIDs) == 0
}

// Side identifies one of the anchor positions a connector may originate or
// terminate at.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
	SideCenter
)

// Anchor returns the connection point for the given side, computed from the
// node's position and the configured box size. Connectors attach only at
// anchor points.
//
// Right, Bottom and Left all resolve to the same bottom-center coordinate;
// only Top and Center differ. Marriage stubs and child connectors are
// calibrated against this shared point.
// TODO: give Right and Left true per-edge coordinates and recalibrate the
// marriage stub offsets in Router at the same time.
func (n *Node) Anchor(side Side, opts Options) Point {
	cx := n.Pos.X + opts.BoxWidth/2
	switch side {
	case SideTop:
		return Point{X: cx, Y: n.Pos.Y}
	case SideCenter:
		return Point{X: cx, Y: n.Pos.Y + opts.BoxHeight/2}
	default:
		return Point{X: cx, Y: n.Pos.Y + opts.BoxHeight}
	}
}
