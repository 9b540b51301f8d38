// Package graph holds the positioned node/edge model produced by the layout
// engines and the adapters that render it.
package graph

import "github.com/sparkforge/spark/internal/classify"

// Graph is a flat list of positioned nodes and the edges between them.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Position is a point on the 2D canvas.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Role is the structural role of a mind-map node.
type Role string

const (
	RoleRoot   Role = "root"
	RoleBranch Role = "branch"
	RoleLeaf   Role = "leaf"
)

// Node is a positioned, styled diagram node.
type Node struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Details  string            `json:"details,omitempty"`
	Category classify.Category `json:"category"`
	Icon     classify.Icon     `json:"icon"`
	Position Position          `json:"position"`

	// Mind-map only
	Role        Role `json:"role,omitempty"`
	Depth       int  `json:"depth"`
	BranchIndex int  `json:"branchIndex"`

	Style Style `json:"style"`
}

// Style carries render hints. Empty fields mean "renderer default".
type Style struct {
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
	Text       string `json:"text,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
}

// Edge connects two nodes by id.
type Edge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Label  string  `json:"label,omitempty"`
	Color  string  `json:"color,omitempty"`
	Width  float64 `json:"width,omitempty"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return g == nil || len(g.Nodes) == 0
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// EdgesFrom returns the edges whose source is id, in graph order.
func (g *Graph) EdgesFrom(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}
