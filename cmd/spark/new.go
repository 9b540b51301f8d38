package main

import (
	"context"
	"fmt"
	"strings"
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
	newFrom        string
	newMindMapFrom string
)

func init() {
	newCmd.Flags().StringVar(&newFrom, "from", "", "Read captured project JSON from a file (- for stdin)")
	newCmd.Flags().StringVar(&newMindMapFrom, "mindmap-from", "", "Read a captured mind map (JSON or YAML) from a file")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <idea...>",
	Short: "Generate a project plan from an idea",
	Long: `Generate a project plan, mind map and blueprints from a one-line idea.

Without --from the plan is built from templates keyed on the idea. With
--from, previously captured model output is decoded instead. --mindmap-from
supplies the mind map the same way (JSON or YAML) in place of a generated
one. Markdown fences and chatter around a JSON object are ignored.

Examples:
  spark new "Uber for dog walking"
  spark new "AI meal planner" --from plan.json --mindmap-from mindmap.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	idea := strings.TrimSpace(strings.Join(args, " "))
	if idea == "" {
		exitWithError(ExitError, "%v", generate.ErrEmptyIdea)
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	gen := mustBuildGenerator()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := gen.GenerateProject(ctx, idea)
	if err != nil {
		exitWithError(ExitDataError, "generating project: %v", err)
	}

	var mm *mindmap.TreeNode
	if newMindMapFrom != "" {
		raw, err := readInput(newMindMapFrom)
		if err != nil {
			exitWithError(ExitError, "reading mind map: %v", err)
		}
		if mm, err = decodeMindMap(newMindMapFrom, raw, cfg.MaxDepth); err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	} else if mm, err = gen.GenerateMindMap(ctx, data); err != nil {
		exitWithError(ExitDataError, "generating mind map: %v", err)
	}

	r := project.NewRecord(idea, *data, time.Now())
	r.MindMap = mm
	if err := r.ValidateForCreate(); err != nil {
		exitWithError(ExitDataError, "invalid project: %v", err)
	}

	if err := storage.AppendRecord(config.ProjectsPath(root), r); err != nil {
		exitWithError(ExitDataError, "saving project: %v", err)
	}
	mustRebuildCache(root)

	observability.L().Debug("project created",
		zap.String("id", r.ID),
		zap.String("title", r.Title),
		zap.Int("blueprints", len(r.Data.Blueprints)))

	if humanOutput {
		fmt.Printf("Created %s: %s\n", r.ID, r.Title)
		if r.Data.Tagline != "" {
			fmt.Printf("  %s\n", r.Data.Tagline)
		}
	} else {
		outputJSON(r)
	}
	return nil
}

// mustBuildGenerator picks the replay generator when captured output is
// supplied, otherwise the template generator.
func mustBuildGenerator() generate.Generator {
	if newFrom == "" {
		return &generate.TemplateGenerator{}
	}
	raw, err := readInput(newFrom)
	if err != nil {
		exitWithError(ExitError, "reading project: %v", err)
	}
	return &generate.ReplayGenerator{ProjectText: string(raw)}
}
