package main

import (
	"encoding/json"
	"fmt"

	"github.com/sparkforge/spark/internal/graph"
)

// Output formats for diagram commands.
const (
	FormatJSON      = "json"
	FormatCytoscape = "cytoscape"
	FormatHTML      = "html"
	FormatMermaid   = "mermaid"
)

// renderOptions configures renderGraph.
type renderOptions struct {
	Format string
	Title  string
	Layout string
	Script string // Cytoscape.js source inlined into HTML; empty uses the CDN
}

// renderGraph renders a positioned graph in the requested format.
func renderGraph(g *graph.Graph, opts renderOptions) (string, error) {
	switch opts.Format {
	case "", FormatJSON:
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling graph: %w", err)
		}
		return string(data) + "\n", nil
	case FormatCytoscape:
		s, err := g.ToCytoscapeJSON()
		if err != nil {
			return "", err
		}
		return s + "\n", nil
	case FormatHTML:
		return graph.GenerateHTML(g, graph.HTMLOptions{
			Title:  opts.Title,
			Layout: opts.Layout,
			Script: opts.Script,
		})
	case FormatMermaid:
		return graph.ToMermaid(g)
	default:
		return "", fmt.Errorf("unknown format %q (valid: json, cytoscape, html, mermaid)", opts.Format)
	}
}

// mustReadScript reads a local Cytoscape.js copy for offline HTML, exits on error.
func mustReadScript(path string) string {
	if path == "" {
		return ""
	}
	data, err := readInput(path)
	if err != nil {
		exitWithError(ExitError, "reading Cytoscape.js: %v", err)
	}
	return string(data)
}
