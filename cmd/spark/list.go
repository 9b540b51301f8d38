package main

import (
	"fmt"

	"github.com/sparkforge/spark/internal/project"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listQuery string
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", DefaultListLimit, "Maximum projects to return")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter by title or idea (case-insensitive substring)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projects, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// ProjectSummary is the list view of a project.
type ProjectSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Idea      string `json:"idea"`
	Tagline   string `json:"tagline,omitempty"`
	CreatedAt string `json:"created_at"`
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	db := mustOpenDatabase(root)
	defer db.Close()

	var records []project.Record
	var err error
	if listQuery != "" {
		records, err = db.SearchRecords(listQuery, listLimit)
	} else {
		records, err = db.ListRecords(listLimit)
	}
	if err != nil {
		exitWithError(ExitError, "listing projects: %v", err)
	}

	summaries := make([]ProjectSummary, len(records))
	for i, r := range records {
		summaries[i] = ProjectSummary{
			ID:        r.ID,
			Title:     r.Title,
			Idea:      r.Idea,
			Tagline:   r.Data.Tagline,
			CreatedAt: r.CreatedAt,
		}
	}

	if humanOutput {
		if len(summaries) == 0 {
			fmt.Println("No projects found")
			return nil
		}
		fmt.Printf("Found %d projects:\n\n", len(summaries))
		for _, s := range summaries {
			fmt.Printf("%s  %-*s  %s\n", s.ID, ListTitleMaxLen, truncateString(s.Title, ListTitleMaxLen), truncateString(s.Idea, ListIdeaMaxLen))
		}
	} else {
		outputJSON(summaries)
	}
	return nil
}
