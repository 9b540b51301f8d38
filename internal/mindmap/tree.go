// Package mindmap lays out a labeled tree as a left-to-right fan of positioned
// nodes and parent-child edges.
package mindmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxDepth is the deepest level below the root the producer schema allows.
const MaxDepth = 3

// TreeNode is one node of a mind map. A node with no children is a leaf,
// whether Children is nil or empty.
type TreeNode struct {
	Label    string     `json:"label" yaml:"label"`
	Details  string     `json:"details,omitempty" yaml:"details,omitempty"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// ErrMissingRootLabel is returned when the root of a tree has no label.
var ErrMissingRootLabel = errors.New("mind map root has no label")

// ValidationError describes a malformed tree. Path is a dotted list of child
// indexes from the root ("" for the root itself, "1.0" for the first child of
// the second child).
type ValidationError struct {
	Path    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "mind map root: " + e.Message
	}
	return fmt.Sprintf("mind map node %s: %s", e.Path, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// pathed pairs a node with its index path and depth for iterative walks.
type pathed struct {
	node  *TreeNode
	path  []int
	depth int
}

func joinPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".")
}

// Validate checks that root has a label and, when maxDepth > 0, that no node
// sits more than maxDepth levels below the root.
func Validate(root *TreeNode, maxDepth int) error {
	if root == nil {
		return nil
	}
	if strings.TrimSpace(root.Label) == "" {
		return &ValidationError{Message: "label is required", Err: ErrMissingRootLabel}
	}
	if maxDepth <= 0 {
		return nil
	}

	stack := []pathed{{node: root}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.depth > maxDepth {
			return &ValidationError{
				Path:    joinPath(cur.path),
				Message: fmt.Sprintf("depth %d exceeds limit %d", cur.depth, maxDepth),
			}
		}
		for i := range cur.node.Children {
			childPath := append(append([]int(nil), cur.path...), i)
			stack = append(stack, pathed{node: &cur.node.Children[i], path: childPath, depth: cur.depth + 1})
		}
	}
	return nil
}

// ParseJSON decodes a mind map from JSON and validates it against MaxDepth.
func ParseJSON(data []byte) (*TreeNode, error) {
	return ParseJSONDepth(data, MaxDepth)
}

// ParseJSONDepth is ParseJSON with a caller-chosen depth limit; 0 disables it.
func ParseJSONDepth(data []byte, maxDepth int) (*TreeNode, error) {
	var root TreeNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing mind map JSON: %w", err)
	}
	if err := Validate(&root, maxDepth); err != nil {
		return nil, err
	}
	return &root, nil
}

// ParseYAML decodes a mind map from YAML and validates it against MaxDepth.
func ParseYAML(data []byte) (*TreeNode, error) {
	return ParseYAMLDepth(data, MaxDepth)
}

// ParseYAMLDepth is ParseYAML with a caller-chosen depth limit; 0 disables it.
func ParseYAMLDepth(data []byte, maxDepth int) (*TreeNode, error) {
	var root TreeNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing mind map YAML: %w", err)
	}
	if err := Validate(&root, maxDepth); err != nil {
		return nil, err
	}
	return &root, nil
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root *TreeNode) int {
	if root == nil {
		return 0
	}
	n := 0
	stack := []*TreeNode{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		for i := range cur.Children {
			stack = append(stack, &cur.Children[i])
		}
	}
	return n
}

// Depth returns the number of levels below the root (0 for a lone root, -1 for nil).
func Depth(root *TreeNode) int {
	if root == nil {
		return -1
	}
	deepest := 0
	stack := []pathed{{node: root}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.depth > deepest {
			deepest = cur.depth
		}
		for i := range cur.node.Children {
			stack = append(stack, pathed{node: &cur.node.Children[i], depth: cur.depth + 1})
		}
	}
	return deepest
}
