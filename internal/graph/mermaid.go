package graph

import (
	"fmt"
	"strings"
)

// ToMermaid renders the graph as a left-to-right Mermaid flowchart.
// Node ids are rewritten to n0, n1, ... because Mermaid rejects many characters
// that are legal in diagram ids.
func ToMermaid(g *Graph) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph is nil")
	}

	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	ids := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		mid := fmt.Sprintf("n%d", i)
		ids[n.ID] = mid
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", mid, mermaidEscape(n.Label))
	}

	for _, e := range g.Edges {
		from, ok := ids[e.Source]
		if !ok {
			continue
		}
		to, ok := ids[e.Target]
		if !ok {
			continue
		}
		if e.Label != "" {
			fmt.Fprintf(&sb, "    %s -->|%s| %s\n", from, mermaidEscape(e.Label), to)
		} else {
			fmt.Fprintf(&sb, "    %s --> %s\n", from, to)
		}
	}

	// One class per category so renderers can colour nodes.
	byCategory := make(map[string][]string)
	var order []string
	for i, n := range g.Nodes {
		c := string(n.Category)
		if c == "" {
			continue
		}
		if _, seen := byCategory[c]; !seen {
			order = append(order, c)
		}
		byCategory[c] = append(byCategory[c], fmt.Sprintf("n%d", i))
	}
	for _, c := range order {
		fmt.Fprintf(&sb, "    class %s %s\n", strings.Join(byCategory[c], ","), c)
	}

	return sb.String(), nil
}

func mermaidEscape(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	s = strings.ReplaceAll(s, "|", "#124;")
	return strings.ReplaceAll(s, "\n", " ")
}
