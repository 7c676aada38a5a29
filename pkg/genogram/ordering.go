package genogram

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// compareChildren orders two children of one couple group before recursive
// placement, so that full sibling groups stay contiguous and maternal
// sub-groups cluster together:
//
//  1. Children fathered by the group's husband precede children who are not.
//  2. Among the husband's children, order by mother: motherless children
//     first, then by the mother's index within the group's spouse list
//     (the first spouse that appears among the child's listed mothers wins),
//     with mothers absent from the spouse list last.
//  3. Otherwise fall back to the concatenated parent-id lists as an opaque
//     key, so unrelated children still order deterministically.
//
// Combined with a stable sort over the deterministic person-list order, this
// yields a total order; layout positions depend on it.
func compareChildren(group []*Node, a, b *Node) int {
	var husband *Node
	if len(group) > 0 && group[0].Gender == Male {
		husband = group[0]
	}

	if husband != nil {
		af := slices.Contains(a.FatherIDs, husband.ID)
		bf := slices.Contains(b.FatherIDs, husband.ID)
		if af != bf {
			if af {
				return -1
			}
			return 1
		}
		if af && bf {
			if c := cmp.Compare(motherRank(group, a), motherRank(group, b)); c != 0 {
				return c
			}
		}
	}

	return cmp.Compare(relationKey(a), relationKey(b))
}

// motherRank positions a child within the maternal ordering of a couple
// group: -1 for no listed mother, the index of the first group spouse found
// among the child's mothers, or MaxInt when none of the listed mothers is a
// spouse of the group.
func motherRank(group []*Node, child *Node) int {
	if len(child.MotherIDs) == 0 {
		return -1
	}
	for i, spouse := range group[1:] {
		if slices.Contains(child.MotherIDs, spouse.ID) {
			return i
		}
	}
	return math.MaxInt
}

// relationKey concatenates the child's parent id lists into an opaque,
// order-preserving comparison key.
func relationKey(n *Node) string {
	return strings.Join(n.FatherIDs, "") + strings.Join(n.MotherIDs, "")
}

// sortChildren applies compareChildren with a stable sort, preserving
// person-list order for full ties.
func sortChildren(group, children []*Node) {
	slices.SortStableFunc(children, func(a, b *Node) int {
		return compareChildren(group, a, b)
	})
}
