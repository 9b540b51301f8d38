package graph

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format. Position is read by
// the "preset" layout.
type CytoscapeNode struct {
	Data     CytoscapeNodeData `json:"data"`
	Position Position          `json:"position"`
}

// CytoscapeNodeData contains the node data fields used by selectors and tooltips.
type CytoscapeNodeData struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Details     string `json:"details,omitempty"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Role        string `json:"role,omitempty"`
	Depth       int    `json:"depth"`
	BorderColor string `json:"borderColor,omitempty"`
	Background  string `json:"background,omitempty"`
	TextColor   string `json:"textColor,omitempty"`
	FontSize    int    `json:"fontSize,omitempty"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Label  string  `json:"label,omitempty"`
	Color  string  `json:"color,omitempty"`
	Width  float64 `json:"width,omitempty"`
}

// ToCytoscapeJSON converts the graph to Cytoscape.js JSON format.
func (g *Graph) ToCytoscapeJSON() (string, error) {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{
			Data: CytoscapeNodeData{
				ID:          n.ID,
				Label:       n.Label,
				Details:     n.Details,
				Category:    string(n.Category),
				Icon:        string(n.Icon),
				Role:        string(n.Role),
				Depth:       n.Depth,
				BorderColor: n.Style.Border,
				Background:  n.Style.Background,
				TextColor:   n.Style.Text,
				FontSize:    n.Style.FontSize,
			},
			Position: n.Position,
		})
	}

	for i, e := range g.Edges {
		id := e.ID
		if id == "" {
			id = edgeID(e.Source, e.Target, i)
		}
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     id,
				Source: e.Source,
				Target: e.Target,
				Label:  e.Label,
				Color:  e.Color,
				Width:  e.Width,
			},
		})
	}

	jsonBytes, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// edgeID generates an edge ID for edges that arrive without one.
// IDs are based on slice position and are not stable across different graph builds.
func edgeID(source, target string, index int) string {
	return fmt.Sprintf("%s-%s-%d", source, target, index)
}
