package graph

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("graph").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title  string
	Layout string // "preset", "breadthfirst", "circle", or "grid"
	// Script is Cytoscape.js source to inline for offline pages. Empty loads
	// it from the CDN.
	Script string
}

// DefaultOptions returns default HTML generation options.
// The preset layout keeps the positions computed by the layout engine.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Title:  "Diagram",
		Layout: "preset",
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"preset", "breadthfirst", "circle", "grid"}

// GenerateHTML generates a self-contained HTML file for the graph.
func GenerateHTML(g *Graph, opts HTMLOptions) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := ValidateLayout(opts.Layout); err != nil {
		return "", err
	}
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	if g.IsEmpty() {
		return generateEmptyHTML(opts.Title)
	}

	graphJSON, err := g.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	data := templateData{
		Title:     opts.Title,
		ScriptTag: template.HTML(buildScriptTag(opts.Script)),
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ValidateLayout checks if the layout option is valid.
func ValidateLayout(layout string) error {
	switch layout {
	case "", "preset", "breadthfirst", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be preset, breadthfirst, circle, or grid", layout)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	ScriptTag template.HTML
	GraphJSON template.JS
	Layout    string
}

func layoutToCytoscape(layout string) string {
	if layout == "" {
		return "preset"
	}
	return layout
}

// cdnScriptTag loads Cytoscape.js from unpkg.
const cdnScriptTag = `<script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>`

// buildScriptTag returns either the inlined script or the CDN reference.
// A closing script tag inside the source is escaped so it cannot end the
// element early.
func buildScriptTag(script string) string {
	if strings.TrimSpace(script) == "" {
		return cdnScriptTag
	}
	return "<script>" + strings.ReplaceAll(script, "</script", `<\/script`) + "</script>"
}

var emptyTemplate = template.Must(template.New("empty").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.}} - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #0a0a0a;
      color: #a3a3a3;
    }
    .empty-state { text-align: center; }
    .empty-state h2 { margin-bottom: 0.5em; color: #e5e5e5; }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No diagram data</h2>
    <p>This diagram has no nodes yet. Regenerate the project to try again.</p>
  </div>
</body>
</html>`))

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML(title string) (string, error) {
	var buf bytes.Buffer
	if err := emptyTemplate.Execute(&buf, title); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  {{.ScriptTag}}
  <style>
    * { box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #0a0a0a;
    }
    #cy {
      width: 100%;
      height: 100vh;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: #171717;
      color: #e5e5e5;
      border: 1px solid #404040;
      border-radius: 4px;
      padding: 8px 12px;
      max-width: 300px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .type {
      font-size: 10px;
      text-transform: uppercase;
      font-family: monospace;
      color: #737373;
      margin-bottom: 4px;
    }
    #tooltip .label { font-weight: bold; margin-bottom: 4px; }
    #tooltip .detail { color: #a3a3a3; margin: 2px 0; }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        minZoom: 0.1,
        maxZoom: 2,
        style: [
          {
            selector: 'node',
            style: {
              'shape': 'round-rectangle',
              'background-color': '#171717',
              'border-width': 1,
              'border-color': '#404040',
              'label': 'data(label)',
              'color': '#e5e5e5',
              'font-size': '12px',
              'text-valign': 'center',
              'text-halign': 'center',
              'width': 'label',
              'height': '32px',
              'padding': '12px'
            }
          },
          { selector: 'node[borderColor]', style: { 'border-color': 'data(borderColor)' } },
          { selector: 'node[background]', style: { 'background-color': 'data(background)' } },
          { selector: 'node[textColor]', style: { 'color': 'data(textColor)' } },
          { selector: 'node[fontSize]', style: { 'font-size': 'data(fontSize)' } },
          {
            selector: 'node[role="root"]',
            style: { 'border-width': 2, 'font-weight': 'bold' }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#525252',
              'target-arrow-color': '#525252',
              'target-arrow-shape': 'triangle',
              'curve-style': 'bezier',
              'width': 1,
              'label': 'data(label)',
              'font-size': '9px',
              'font-family': 'monospace',
              'color': '#a3a3a3'
            }
          },
          { selector: 'edge[color]', style: { 'line-color': 'data(color)', 'target-arrow-color': 'data(color)' } },
          { selector: 'edge[width]', style: { 'width': 'data(width)' } },
          { selector: 'node.highlighted', style: { 'border-width': 3, 'border-color': '#ffffff' } },
          { selector: 'node.dimmed', style: { 'opacity': 0.3 } },
          { selector: 'edge.dimmed', style: { 'opacity': 0.2 } }
        ],
        layout: {
          name: layout,
          animate: false,
          fit: true,
          padding: 40
        }
      });

      const tooltip = document.getElementById('tooltip');

      function showTooltip(evt, content) {
        tooltip.innerHTML = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function hideTooltip() {
        tooltip.style.display = 'none';
      }

      function escapeHtml(str) {
        if (!str) return '';
        return String(str).replace(/&/g, '&amp;')
                  .replace(/</g, '&lt;')
                  .replace(/>/g, '&gt;')
                  .replace(/"/g, '&quot;');
      }

      function getNodeTooltip(node) {
        const data = node.data();
        let html = '<div class="type">' + escapeHtml(data.category) + ' / ' + escapeHtml(data.icon) + '</div>';
        html += '<div class="label">' + escapeHtml(data.label) + '</div>';
        if (data.details) html += '<div class="detail">' + escapeHtml(data.details) + '</div>';
        return html;
      }

      cy.on('mouseover', 'node', function(evt) { showTooltip(evt, getNodeTooltip(evt.target)); });
      cy.on('mouseout', 'node', hideTooltip);

      cy.on('tap', 'node', function(evt) {
        const node = evt.target;
        cy.elements().removeClass('highlighted dimmed');
        const neighborhood = node.neighborhood().add(node);
        neighborhood.addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
