package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sparkforge/spark/internal/config"
	"github.com/sparkforge/spark/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a spark workspace in the current directory",
	Long: `Initialize a spark workspace in the current directory.

Creates .spark/ with a default config.json, an empty projects.jsonl and a
cache directory for the SQLite index. Commit projects.jsonl and config.json;
the cache is rebuilt on demand.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// InitResponse is the response for the init command.
type InitResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsWorkspace(cwd) {
		exitWithError(ExitConfigError, "workspace already initialized at %s", config.SparkPath(cwd))
	}

	if err := os.MkdirAll(config.CachePath(cwd), 0755); err != nil {
		exitWithError(ExitError, "creating workspace directory: %v", err)
	}
	if err := config.Default().Save(cwd); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := os.WriteFile(config.ProjectsPath(cwd), nil, 0644); err != nil {
		exitWithError(ExitError, "creating projects file: %v", err)
	}

	// Keep the cache out of version control.
	gitignore := filepath.Join(config.SparkPath(cwd), ".gitignore")
	if err := os.WriteFile(gitignore, []byte(config.CacheDir+"/\n"), 0644); err != nil {
		exitWithError(ExitError, "writing .gitignore: %v", err)
	}

	observability.L().Debug("workspace initialized", zap.String("path", cwd))

	if humanOutput {
		fmt.Printf("Initialized spark workspace in %s\n", config.SparkPath(cwd))
	} else {
		outputJSON(InitResponse{Status: "initialized", Path: cwd})
	}
	return nil
}
