// Package genogram computes the 2-D layout of a multi-generational family
// tree and the geometric routing of its marriage and parent-child connectors.
//
// # Overview
//
// A genogram is a diagram of a family's structure across generations. Given a
// flat, ordered collection of opaque person records and a [Schema] of pure
// accessor functions (id, father ids, mother ids, spouse ids, gender), the
// package:
//
//  1. Reconstructs the family graph ([Index]): parents-of, spouses-of and
//     children-of-group lookups derived from the flat per-person references.
//  2. Places every person ([Engine]): a recursive, overlap-free subtree
//     placement that positions couple groups and centers parents over their
//     descendant span.
//  3. Routes connectors ([Router]): marriage stub-and-bridge geometry with
//     deterministic color assignment, plus parent-child connectors attached
//     to the marriage point or to individual parents.
//
// The output is a list of [Placement] values and a list of [Connection] draw
// requests. Rendering sinks (see pkg/render) consume these without performing
// any geometry of their own.
//
// # Determinism
//
// Layout and routing are pure functions of the person collection and
// [Options]. All pass state (laid-out set, per-generation level edges,
// relationship caches, marriage records) is rebuilt on every pass, so
// repeated computation over unchanged data yields bit-identical positions
// and colors.
//
// # Orientation
//
// The same algorithm serves both layout directions through a primary /
// secondary axis abstraction: [TopToBottom] lays generations downward with a
// horizontal primary axis, [LeftToRight] lays them rightward with a vertical
// primary axis.
//
// # Tolerance
//
// Relationship data is routinely incomplete. Dangling id references are
// silently excluded from derived lookups, missing parents degrade to
// individual connectors, and no operation in this package fails on
// incomplete data.
package genogram
