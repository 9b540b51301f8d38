package main

import (
	"context"
	"time"

	"github.com/sparkforge/spark/internal/config"
	"github.com/sparkforge/spark/internal/generate"
	"github.com/sparkforge/spark/internal/mindmap"
	"github.com/sparkforge/spark/internal/observability"
	"github.com/sparkforge/spark/internal/project"
	"github.com/sparkforge/spark/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	mindmapInput  string
	mindmapFormat string
	mindmapOutput string
	mindmapLayout string
	mindmapScript string
	mindmapCopy   bool
)

func init() {
	mindmapCmd.Flags().StringVarP(&mindmapInput, "input", "i", "", "Lay out a mind map from a JSON or YAML file (- for stdin)")
	mindmapCmd.Flags().StringVarP(&mindmapFormat, "format", "f", FormatJSON, "Output format: json, cytoscape, html, or mermaid")
	mindmapCmd.Flags().StringVarP(&mindmapOutput, "output", "o", "", "Output file path (default: stdout)")
	mindmapCmd.Flags().StringVar(&mindmapLayout, "layout", "", "HTML layout: preset, breadthfirst, circle, or grid (default: html_layout config)")
	mindmapCmd.Flags().StringVar(&mindmapScript, "cytoscape-js", "", "Inline a local copy of Cytoscape.js into HTML output for offline use")
	mindmapCmd.Flags().BoolVar(&mindmapCopy, "copy", false, "Copy the rendered output to the clipboard")
	rootCmd.AddCommand(mindmapCmd)
}

var mindmapCmd = &cobra.Command{
	Use:   "mindmap [id]",
	Short: "Lay out a project's mind map as a positioned graph",
	Long: `Lay out a mind map as a left-to-right graph.

The root sits at x=0; each level moves one step_x to the right. Children
split their parent's vertical band [y_min, y_max] into equal slices in order,
and each node is centered in its slice. First-level branches pick up a colour
from a fixed palette that their descendants inherit.

With a project id the stored mind map is used, generated and saved first if
the project has none. With --input a mind map file is laid out directly.

Examples:
  spark mindmap 6f1c2b9e-4a53-4c57-9a0e-0f7f3d2f1e11
  spark mindmap --input tree.yaml --format html --output mindmap.html
  spark mindmap <id> --format mermaid`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMindMap,
}

func runMindMap(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (mindmapInput == "") {
		exitWithError(ExitError, "provide either a project id or --input")
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	var tree *mindmap.TreeNode
	title := "Mind Map"
	if mindmapInput != "" {
		raw, err := readInput(mindmapInput)
		if err != nil {
			exitWithError(ExitError, "reading mind map: %v", err)
		}
		if tree, err = decodeMindMap(mindmapInput, raw, cfg.MaxDepth); err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	} else {
		r := mustGetRecord(root, args[0])
		title = r.Title
		tree = r.MindMap
		if tree == nil {
			tree = mustGenerateMindMap(cmd.Context(), root, r)
		}
	}

	g, err := mindmap.Layout(tree, cfg.LayoutOptions())
	if err != nil {
		exitWithError(ExitDataError, "laying out mind map: %v", err)
	}

	observability.L().Debug("mind map laid out",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("depth", mindmap.Depth(tree)))

	layout := mindmapLayout
	if layout == "" {
		layout = cfg.HTMLLayout
	}
	out, err := renderGraph(g, renderOptions{
		Format: mindmapFormat,
		Title:  title,
		Layout: layout,
		Script: mustReadScript(mindmapScript),
	})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	writeOutput(mindmapOutput, out, mindmapCopy)
	return nil
}

// mustGenerateMindMap builds a mind map for a project that has none and
// persists it.
func mustGenerateMindMap(ctx context.Context, root string, r *project.Record) *mindmap.TreeNode {
	if ctx == nil {
		ctx = context.Background()
	}
	gen := &generate.TemplateGenerator{}
	tree, err := gen.GenerateMindMap(ctx, &r.Data)
	if err != nil {
		exitWithError(ExitDataError, "generating mind map: %v", err)
	}

	records, err := storage.ReadAllRecords(config.ProjectsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "reading projects: %v", err)
	}
	updated := *r
	updated.MindMap = tree
	updated.Touch(time.Now())
	records, _ = storage.UpsertRecordInSlice(records, updated)
	mustSaveRecords(root, records)

	observability.L().Debug("mind map generated", zap.String("id", r.ID))
	return tree
}
