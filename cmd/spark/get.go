package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a project by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	r := mustGetRecord(root, args[0])

	if humanOutput {
		d := r.Data
		fmt.Printf("ID:       %s\n", r.ID)
		fmt.Printf("Title:    %s\n", r.Title)
		if d.Tagline != "" {
			fmt.Printf("Tagline:  %s\n", d.Tagline)
		}
		fmt.Printf("Idea:     %s\n", r.Idea)
		fmt.Printf("Created:  %s\n", r.CreatedAt)
		if d.PricingModel != "" {
			fmt.Printf("Pricing:  %s\n", d.PricingModel)
		}
		if len(d.TechStack) > 0 {
			fmt.Println("\nTech stack:")
			for _, t := range d.TechStack {
				fmt.Printf("  - %s (%s)\n", t.Name, t.Category)
			}
		}
		if len(d.Blueprints) > 0 {
			fmt.Println("\nBlueprints:")
			for _, bp := range d.Blueprints {
				fmt.Printf("  - %s: %s (%d nodes, %d edges)\n", bp.ID, bp.Name, len(bp.Nodes), len(bp.Edges))
			}
		}
		if r.MindMap != nil {
			fmt.Printf("\nMind map: %s\n", r.MindMap.Label)
		}
	} else {
		outputJSON(r)
	}
	return nil
}
