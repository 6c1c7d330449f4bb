package services

import (
	"fmt"
	"strings"
)

// Node is a row that references its parent by id. A nil parent marks a root.
type Node interface {
	NodeID() uint
	NodeParentID() *uint
}

// OrphanPolicy decides what happens to a row whose parent is not part of the input.
type OrphanPolicy int

const (
	// OrphanPromote treats the row as a root.
	OrphanPromote OrphanPolicy = iota
	// OrphanReject fails the assembly with ErrConsistency.
	OrphanReject
)

func (p OrphanPolicy) String() string {
	if p == OrphanReject {
		return "reject"
	}
	return "promote"
}

// ParseOrphanPolicy maps a configuration value to a policy.
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "promote":
		return OrphanPromote, nil
	case "reject", "strict":
		return OrphanReject, nil
	default:
		return OrphanPromote, fmt.Errorf("unknown orphan policy %q", s)
	}
}

// AssembleTree turns flat parent-linked rows into nested responses.
//
// Children are indexed by parent id in a single pass, then every root is
// materialized depth first: build receives a row together with its already
// built children. Sibling order follows input order. The result holds every
// input row exactly once; duplicate ids, self references and cycles fail with
// ErrConsistency instead of looping.
func AssembleTree[T Node, R any](rows []T, policy OrphanPolicy, build func(row T, children []R) R) ([]R, error) {
	index := make(map[uint]int, len(rows))
	for i, row := range rows {
		id := row.NodeID()
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate node %d", ErrConsistency, id)
		}
		index[id] = i
	}

	children := make(map[uint][]int, len(rows))
	roots := make([]int, 0, len(rows))
	for i, row := range rows {
		parent := row.NodeParentID()
		switch {
		case parent == nil:
			roots = append(roots, i)
		case *parent == row.NodeID():
			return nil, fmt.Errorf("%w: node %d is its own parent", ErrConsistency, row.NodeID())
		default:
			if _, ok := index[*parent]; ok {
				children[*parent] = append(children[*parent], i)
				continue
			}
			if policy == OrphanReject {
				return nil, fmt.Errorf("%w: node %d references missing parent %d", ErrConsistency, row.NodeID(), *parent)
			}
			roots = append(roots, i)
		}
	}

	visited := make([]bool, len(rows))
	var materialize func(i int) (R, error)
	materialize = func(i int) (R, error) {
		var zero R
		if visited[i] {
			return zero, fmt.Errorf("%w: node %d reached twice", ErrConsistency, rows[i].NodeID())
		}
		visited[i] = true

		kids := children[rows[i].NodeID()]
		built := make([]R, 0, len(kids))
		for _, k := range kids {
			child, err := materialize(k)
			if err != nil {
				return zero, err
			}
			built = append(built, child)
		}
		return build(rows[i], built), nil
	}

	out := make([]R, 0, len(roots))
	for _, i := range roots {
		r, err := materialize(i)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	// rows never reached from a root sit on a parent cycle
	for i, seen := range visited {
		if !seen {
			return nil, fmt.Errorf("%w: node %d is part of a cycle", ErrConsistency, rows[i].NodeID())
		}
	}
	return out, nil
}
