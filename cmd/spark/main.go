// Package main provides the spark CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sparkforge/spark/internal/config"
	"github.com/sparkforge/spark/internal/observability"
	"github.com/sparkforge/spark/internal/project"
	"github.com/sparkforge/spark/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// verbose forces debug logging
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors (like missing args) are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		observability.Sync()
		os.Exit(ExitError)
	}
	observability.Sync()
}

var rootCmd = &cobra.Command{
	Use:   "spark",
	Short: "Turn ideas into project plans, mind maps and architecture diagrams",
	Long: `spark turns a one-line idea into a project plan, then lays out its
mind map and architecture blueprints as positioned graphs.

Projects are stored in git-versionable JSONL with an ephemeral SQLite cache.
All commands output JSON by default; use --human for readable output.
Diagrams render as graph JSON, standalone HTML or Mermaid.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupEnvironment,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.Version = Version
}

// setupEnvironment loads .env, reads the global config and starts the logger.
func setupEnvironment(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	gcfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading global config: %v", err)
	}

	level := gcfg.EffectiveLogLevel()
	if verbose {
		level = "debug"
	}
	observability.InitializeLogger(observability.Config{
		Level:  level,
		Format: gcfg.LogFormat,
		File:   gcfg.LogFile,
	})
	return nil
}

// mustFindWorkspace finds the workspace from the current directory or the
// global workspace_path, exits on error.
func mustFindWorkspace() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.ResolveWorkspace(cwd)
	if err != nil {
		if humanOutput {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads workspace configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustGetRecord fetches a record from the cache, exits if it is missing.
func mustGetRecord(root, id string) *project.Record {
	if err := project.ValidateID(id); err != nil {
		exitWithError(ExitDataError, "invalid project id %q: %v", id, err)
	}

	db := mustOpenDatabase(root)
	defer db.Close()

	r, err := db.GetRecordByID(id)
	if err != nil {
		exitWithError(ExitError, "getting project: %v", err)
	}
	if r == nil {
		exitWithError(ExitNotFound, "%v: %s", project.ErrProjectNotFound, id)
	}
	return r
}

// mustSaveRecords rewrites the JSONL source and rebuilds the cache.
func mustSaveRecords(root string, records []project.Record) {
	projectsPath := config.ProjectsPath(root)
	if err := storage.WriteAllRecords(projectsPath, records); err != nil {
		exitWithError(ExitDataError, "writing projects: %v", err)
	}
	mustRebuildCache(root)
}

// mustRebuildCache rebuilds the SQLite cache from JSONL and returns the record count.
func mustRebuildCache(root string) int {
	db := mustOpenDatabase(root)
	defer db.Close()

	count, err := db.RebuildFromJSONL(config.ProjectsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding project cache: %v", err)
	}
	return count
}
