package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sparkforge/spark/internal/blueprint"
	"github.com/sparkforge/spark/internal/generate"
	"github.com/sparkforge/spark/internal/mindmap"
)

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// isYAMLFile reports whether the path has a YAML extension.
func isYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// isYAMLInput reports whether input should be decoded as YAML. The file
// extension decides when present; otherwise anything not starting with
// '{' is treated as YAML.
func isYAMLInput(path string, data []byte) bool {
	if isYAMLFile(path) {
		return true
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || trimmed[0] != '{'
}

// jsonPayload returns the JSON object inside captured model output, with
// markdown fences and chatter removed. Files with a YAML extension and
// input holding no valid JSON object report false.
func jsonPayload(path string, data []byte) ([]byte, bool) {
	if isYAMLFile(path) {
		return nil, false
	}
	extracted := []byte(generate.ExtractJSON(string(data)))
	if len(extracted) == 0 || extracted[0] != '{' || !json.Valid(extracted) {
		return nil, false
	}
	return extracted, true
}

// decodeMindMap decodes a mind map and validates it against maxDepth.
func decodeMindMap(path string, data []byte, maxDepth int) (*mindmap.TreeNode, error) {
	if payload, ok := jsonPayload(path, data); ok {
		return mindmap.ParseJSONDepth(payload, maxDepth)
	}
	if isYAMLInput(path, data) {
		return mindmap.ParseYAMLDepth(data, maxDepth)
	}
	return mindmap.ParseJSONDepth(data, maxDepth)
}

// decodeBlueprint decodes a single blueprint document.
func decodeBlueprint(path string, data []byte) (*blueprint.Blueprint, error) {
	if payload, ok := jsonPayload(path, data); ok {
		return blueprint.ParseJSON(payload)
	}
	if isYAMLInput(path, data) {
		return blueprint.ParseYAML(data)
	}
	return blueprint.ParseJSON(data)
}
