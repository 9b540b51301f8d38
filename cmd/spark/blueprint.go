package main

import (
	"errors"
	"fmt"

	"github.com/sparkforge/spark/internal/blueprint"
	"github.com/sparkforge/spark/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	blueprintName   string
	blueprintStrict bool
	blueprintInput  string
	blueprintFormat string
	blueprintOutput string
	blueprintLayout string
	blueprintScript string
	blueprintCopy   bool
	blueprintList   bool
)

func init() {
	blueprintCmd.Flags().StringVarP(&blueprintName, "name", "n", blueprint.IDArchitecture, "Blueprint id: system-arch, user-journey, db-schema, or cicd")
	blueprintCmd.Flags().BoolVar(&blueprintStrict, "strict", false, "Fail when an edge references an unknown node")
	blueprintCmd.Flags().StringVarP(&blueprintInput, "input", "i", "", "Normalize a blueprint from a JSON or YAML file (- for stdin)")
	blueprintCmd.Flags().StringVarP(&blueprintFormat, "format", "f", FormatJSON, "Output format: json, cytoscape, html, or mermaid")
	blueprintCmd.Flags().StringVarP(&blueprintOutput, "output", "o", "", "Output file path (default: stdout)")
	blueprintCmd.Flags().StringVar(&blueprintLayout, "layout", "", "HTML layout: preset, breadthfirst, circle, or grid (default: html_layout config)")
	blueprintCmd.Flags().StringVar(&blueprintScript, "cytoscape-js", "", "Inline a local copy of Cytoscape.js into HTML output for offline use")
	blueprintCmd.Flags().BoolVar(&blueprintCopy, "copy", false, "Copy the rendered output to the clipboard")
	blueprintCmd.Flags().BoolVar(&blueprintList, "list", false, "List the project's blueprints instead of rendering one")
	rootCmd.AddCommand(blueprintCmd)
}

var blueprintCmd = &cobra.Command{
	Use:   "blueprint [id]",
	Short: "Render a project blueprint as a positioned graph",
	Long: `Render an architecture blueprint as a positioned graph.

Blueprint node positions are kept exactly as stored. Each node is classified
from its label and type into one of Client, Edge, Gateway, Service, Database
or Pipeline, which selects its icon and colours.

Examples:
  spark blueprint <id>
  spark blueprint <id> --name cicd --format mermaid
  spark blueprint <id> --list
  spark blueprint --input arch.yaml --strict --format html -o arch.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlueprint,
}

// BlueprintSummary describes one stored blueprint.
type BlueprintSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

func runBlueprint(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (blueprintInput == "") {
		exitWithError(ExitError, "provide either a project id or --input")
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	var bp *blueprint.Blueprint
	if blueprintInput != "" {
		raw, err := readInput(blueprintInput)
		if err != nil {
			exitWithError(ExitError, "reading blueprint: %v", err)
		}
		if bp, err = decodeBlueprint(blueprintInput, raw); err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	} else {
		r := mustGetRecord(root, args[0])
		if blueprintList {
			printBlueprintList(r.Data.Blueprints)
			return nil
		}
		bp = r.Data.Blueprint(blueprintName)
		if bp == nil {
			exitWithError(ExitNotFound, "blueprint %q not found in project %s", blueprintName, r.ID)
		}
	}

	if blueprintStrict {
		if err := blueprint.CheckReferences(*bp); err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	}

	g, err := blueprint.Normalize(*bp)
	if err != nil {
		var dup *blueprint.DuplicateIDError
		if errors.As(err, &dup) {
			observability.L().Warn("duplicate blueprint id", zap.String("kind", dup.Kind), zap.String("id", dup.ID))
		}
		exitWithError(ExitDataError, "%v", err)
	}

	observability.L().Debug("blueprint normalized",
		zap.String("id", bp.ID),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)))

	layout := blueprintLayout
	if layout == "" {
		layout = cfg.HTMLLayout
	}
	title := bp.Name
	if title == "" {
		title = bp.ID
	}
	out, err := renderGraph(g, renderOptions{
		Format: blueprintFormat,
		Title:  title,
		Layout: layout,
		Script: mustReadScript(blueprintScript),
	})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	writeOutput(blueprintOutput, out, blueprintCopy)
	return nil
}

func printBlueprintList(bps []blueprint.Blueprint) {
	summaries := make([]BlueprintSummary, len(bps))
	for i, bp := range bps {
		summaries[i] = BlueprintSummary{ID: bp.ID, Name: bp.Name, Nodes: len(bp.Nodes), Edges: len(bp.Edges)}
	}
	if !humanOutput {
		outputJSON(summaries)
		return
	}
	if len(summaries) == 0 {
		fmt.Println("No blueprints")
		return
	}
	for _, s := range summaries {
		fmt.Printf("%-14s %-28s %3d nodes %3d edges\n", s.ID, s.Name, s.Nodes, s.Edges)
	}
}
