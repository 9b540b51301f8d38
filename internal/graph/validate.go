package graph

import (
	"errors"
	"fmt"
)

// Self-consistency errors.
var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrDuplicateEdge = errors.New("duplicate edge id")
	ErrDanglingEdge  = errors.New("edge references unknown node")
)

// Validate checks that node and edge ids are unique and that every edge
// endpoint names a node in the graph. It reports the first problem found.
func (g *Graph) Validate() error {
	if g == nil {
		return nil
	}

	nodeIDs := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if nodeIDs[n.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		nodeIDs[n.ID] = true
	}

	edgeIDs := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateEdge, e.ID)
		}
		edgeIDs[e.ID] = true

		if !nodeIDs[e.Source] {
			return fmt.Errorf("%w: edge %q source %q", ErrDanglingEdge, e.ID, e.Source)
		}
		if !nodeIDs[e.Target] {
			return fmt.Errorf("%w: edge %q target %q", ErrDanglingEdge, e.ID, e.Target)
		}
	}

	return nil
}
