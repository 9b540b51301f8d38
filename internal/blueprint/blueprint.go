// Package blueprint normalizes producer-authored architecture diagrams into
// the canonical graph shape and ships the static template diagrams.
package blueprint

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sparkforge/spark/internal/classify"
	"github.com/sparkforge/spark/internal/graph"
	"gopkg.in/yaml.v3"
)

// Blueprint is a named diagram whose node positions were chosen by its producer.
type Blueprint struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a raw blueprint node as a producer emits it. Type is a free-form
// hint; unknown values fall back to label classification.
type Node struct {
	ID       string          `json:"id" yaml:"id"`
	Label    string          `json:"label" yaml:"label"`
	Details  string          `json:"details,omitempty" yaml:"details,omitempty"`
	Type     string          `json:"type,omitempty" yaml:"type,omitempty"`
	Position *graph.Position `json:"position" yaml:"position"`
}

// Edge is a raw blueprint edge.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Edge styling shared by every blueprint edge.
const (
	edgeColor = "#404040"
	edgeWidth = 1.5
)

// ErrInvalidRecord is wrapped by every RecordError.
var ErrInvalidRecord = errors.New("invalid blueprint record")

// RecordError reports a node or edge record that cannot be normalized.
type RecordError struct {
	Kind    string // "node" or "edge"
	Index   int
	ID      string
	Message string
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %d (%q): %s", e.Kind, e.Index, e.ID, e.Message)
	}
	return fmt.Sprintf("%s %d: %s", e.Kind, e.Index, e.Message)
}

func (e *RecordError) Unwrap() error {
	return ErrInvalidRecord
}

// ErrDuplicateID is wrapped by every DuplicateIDError.
var ErrDuplicateID = errors.New("duplicate blueprint id")

// DuplicateIDError reports two records of the same kind sharing an id.
type DuplicateIDError struct {
	Kind   string // "node" or "edge"
	ID     string
	First  int
	Second int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s id %q at indexes %d and %d", e.Kind, e.ID, e.First, e.Second)
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}

// Normalize converts a blueprint to a graph. Positions are copied unchanged,
// every node is classified, and node and edge order is preserved. Duplicate
// ids are rejected. Edge endpoints are not checked against the node list; use
// CheckReferences for that.
func Normalize(bp Blueprint) (*graph.Graph, error) {
	g := &graph.Graph{
		Nodes: make([]graph.Node, 0, len(bp.Nodes)),
		Edges: make([]graph.Edge, 0, len(bp.Edges)),
	}

	seenNodes := make(map[string]int, len(bp.Nodes))
	for i, n := range bp.Nodes {
		if n.ID == "" {
			return nil, &RecordError{Kind: "node", Index: i, Message: "id is required"}
		}
		if n.Position == nil {
			return nil, &RecordError{Kind: "node", Index: i, ID: n.ID, Message: "position is required"}
		}
		if first, dup := seenNodes[n.ID]; dup {
			return nil, &DuplicateIDError{Kind: "node", ID: n.ID, First: first, Second: i}
		}
		seenNodes[n.ID] = i

		cls := classify.Resolve(n.Label, n.Type)
		g.Nodes = append(g.Nodes, graph.Node{
			ID:       n.ID,
			Label:    n.Label,
			Details:  n.Details,
			Category: cls.Category,
			Icon:     cls.Icon,
			Position: *n.Position,
			Style: graph.Style{
				Background: "#000000",
				Border:     cls.Color.Border,
				Text:       cls.Color.Text,
			},
		})
	}

	seenEdges := make(map[string]int, len(bp.Edges))
	for i, e := range bp.Edges {
		if e.ID == "" {
			return nil, &RecordError{Kind: "edge", Index: i, Message: "id is required"}
		}
		if e.Source == "" || e.Target == "" {
			return nil, &RecordError{Kind: "edge", Index: i, ID: e.ID, Message: "source and target are required"}
		}
		if first, dup := seenEdges[e.ID]; dup {
			return nil, &DuplicateIDError{Kind: "edge", ID: e.ID, First: first, Second: i}
		}
		seenEdges[e.ID] = i

		g.Edges = append(g.Edges, graph.Edge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
			Color:  edgeColor,
			Width:  edgeWidth,
		})
	}

	return g, nil
}

// ErrDanglingReference is returned by CheckReferences.
var ErrDanglingReference = errors.New("edge references unknown node")

// CheckReferences reports the first edge whose source or target is not a node id.
func CheckReferences(bp Blueprint) error {
	ids := make(map[string]bool, len(bp.Nodes))
	for _, n := range bp.Nodes {
		ids[n.ID] = true
	}
	for _, e := range bp.Edges {
		if !ids[e.Source] {
			return fmt.Errorf("%w: edge %q source %q", ErrDanglingReference, e.ID, e.Source)
		}
		if !ids[e.Target] {
			return fmt.Errorf("%w: edge %q target %q", ErrDanglingReference, e.ID, e.Target)
		}
	}
	return nil
}

// ParseJSON decodes a single blueprint from JSON.
func ParseJSON(data []byte) (*Blueprint, error) {
	var bp Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("parsing blueprint JSON: %w", err)
	}
	return &bp, nil
}

// ParseYAML decodes a single blueprint from YAML.
func ParseYAML(data []byte) (*Blueprint, error) {
	var bp Blueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("parsing blueprint YAML: %w", err)
	}
	return &bp, nil
}

// Find returns the blueprint with the given id, or nil.
func Find(bps []Blueprint, id string) *Blueprint {
	for i := range bps {
		if bps[i].ID == id {
			return &bps[i]
		}
	}
	return nil
}
