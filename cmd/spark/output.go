package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sparkforge/spark/internal/clipboard"
	"github.com/sparkforge/spark/internal/observability"
)

// Constants for output formatting.
const (
	DefaultListLimit = 50 // Default limit for list/search

	ListTitleMaxLen = 40 // Used in list command output
	ListIdeaMaxLen  = 50
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	observability.Sync()
	os.Exit(code)
}

// writeOutput writes content to path, or to stdout when path is empty. With
// toClipboard the content is copied first and stdout only gets a status.
func writeOutput(path, content string, toClipboard bool) {
	if toClipboard {
		if err := clipboard.Copy(content); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
		if path == "" {
			if humanOutput {
				fmt.Println("Copied to clipboard")
			} else {
				outputJSON(StatusResponse{Status: "copied"})
			}
			return
		}
	}
	if path == "" {
		fmt.Print(content)
		return
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		exitWithError(ExitError, "writing output file: %v", err)
	}
	if humanOutput {
		fmt.Printf("Written to %s\n", path)
	} else {
		outputJSON(StatusResponse{Status: "written", Path: path})
	}
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
