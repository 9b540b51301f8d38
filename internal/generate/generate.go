// Package generate turns an idea into a project plan and a mind map. It ships
// a deterministic template generator and decoders for model output.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sparkforge/spark/internal/mindmap"
	"github.com/sparkforge/spark/internal/project"
)

// Generator produces a project plan for an idea and a mind map for a plan.
type Generator interface {
	GenerateProject(ctx context.Context, idea string) (*project.Data, error)
	GenerateMindMap(ctx context.Context, data *project.Data) (*mindmap.TreeNode, error)
}

var (
	// ErrEmptyIdea is returned when the idea is blank.
	ErrEmptyIdea = errors.New("idea is required")
	// ErrNoProject is returned when decoded project output has no title.
	ErrNoProject = errors.New("output contains no project")
	// ErrNoMindMap is returned when decoded mind-map output has no root label.
	ErrNoMindMap = errors.New("output contains no mind map")
)

// ExtractJSON strips markdown code fences and any chatter around the first
// JSON object in text.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = extractFromCodeBlock(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// extractFromCodeBlock extracts content from a markdown code block.
func extractFromCodeBlock(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return strings.Trim(text, "`")
	}

	end := len(lines)
	for end > 1 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if strings.HasPrefix(strings.TrimSpace(lines[end-1]), "```") {
		end--
	}

	return strings.Join(lines[1:end], "\n")
}

// DecodeProject parses model output into a plan and fills missing collections.
func DecodeProject(text string) (*project.Data, error) {
	var data project.Data
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &data); err != nil {
		return nil, fmt.Errorf("failed to parse project output as JSON: %w", err)
	}
	if strings.TrimSpace(data.Title) == "" {
		return nil, ErrNoProject
	}
	data.FillDefaults()
	return &data, nil
}

// DecodeMindMap parses model output into a mind map. Output without a root
// label yields ErrNoMindMap; other structural problems surface as
// *mindmap.ValidationError.
func DecodeMindMap(text string) (*mindmap.TreeNode, error) {
	root, err := mindmap.ParseJSON([]byte(ExtractJSON(text)))
	if err != nil {
		if errors.Is(err, mindmap.ErrMissingRootLabel) {
			return nil, ErrNoMindMap
		}
		return nil, err
	}
	return root, nil
}

// ReplayGenerator serves previously captured model output. An empty
// MindMapText falls back to Fallback, or to a TemplateGenerator when nil.
type ReplayGenerator struct {
	ProjectText string
	MindMapText string
	Fallback    Generator
}

// GenerateProject decodes ProjectText. The idea fills in a missing description.
func (r *ReplayGenerator) GenerateProject(ctx context.Context, idea string) (*project.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := DecodeProject(r.ProjectText)
	if err != nil {
		return nil, err
	}
	if data.Description == "" {
		data.Description = idea
	}
	return data, nil
}

// GenerateMindMap decodes MindMapText, or defers to the fallback generator.
func (r *ReplayGenerator) GenerateMindMap(ctx context.Context, data *project.Data) (*mindmap.TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(r.MindMapText) != "" {
		return DecodeMindMap(r.MindMapText)
	}
	fallback := r.Fallback
	if fallback == nil {
		fallback = &TemplateGenerator{}
	}
	return fallback.GenerateMindMap(ctx, data)
}
