package main

import (
	"fmt"

	"github.com/sparkforge/spark/internal/config"
	"github.com/sparkforge/spark/internal/observability"
	"github.com/sparkforge/spark/internal/project"
	"github.com/sparkforge/spark/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Long: `Delete a project from projects.jsonl and rebuild the cache.

Examples:
  spark delete 6f1c2b9e-4a53-4c57-9a0e-0f7f3d2f1e11`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

// DeleteResponse is the response for the delete command.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := project.ValidateID(id); err != nil {
		exitWithError(ExitDataError, "invalid project id %q: %v", id, err)
	}

	root := mustFindWorkspace()
	records, err := storage.ReadAllRecords(config.ProjectsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "reading projects: %v", err)
	}

	records, found := storage.DeleteRecordFromSlice(records, id)
	if !found {
		exitWithError(ExitNotFound, "%v: %s", project.ErrProjectNotFound, id)
	}
	mustSaveRecords(root, records)

	observability.L().Debug("project deleted", zap.String("id", id), zap.Int("remaining", len(records)))

	if humanOutput {
		fmt.Printf("Deleted project %s\n", id)
	} else {
		outputJSON(DeleteResponse{ID: id, Deleted: true})
	}
	return nil
}
