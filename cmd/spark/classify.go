package main

import (
	"fmt"
	"strings"

	"github.com/sparkforge/spark/internal/classify"
	"github.com/spf13/cobra"
)

var classifyType string

func init() {
	classifyCmd.Flags().StringVarP(&classifyType, "type", "t", "", "Node type hint (e.g. database, client, pipeline)")
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify <label...>",
	Short: "Classify a diagram node label",
	Long: `Classify a diagram node from its label and optional type hint.

Prints the category, icon and colours a renderer would use. Does not need a
workspace.

Examples:
  spark classify "Postgres DB"
  spark classify "Build & Test" --type pipeline
  spark classify "Auth Service"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

// ClassifyResponse is the response for the classify command.
type ClassifyResponse struct {
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
	classify.Classification
}

func runClassify(cmd *cobra.Command, args []string) error {
	label := strings.Join(args, " ")
	c := classify.Resolve(label, classifyType)

	if humanOutput {
		fmt.Printf("Label:     %s\n", label)
		fmt.Printf("Category:  %s\n", c.Category)
		fmt.Printf("Icon:      %s\n", c.Icon)
		fmt.Printf("Border:    %s\n", c.Color.Border)
		fmt.Printf("Text:      %s\n", c.Color.Text)
	} else {
		outputJSON(ClassifyResponse{Label: label, Type: classifyType, Classification: c})
	}
	return nil
}
