package mindmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sparkforge/spark/internal/classify"
	"github.com/sparkforge/spark/internal/graph"
)

// Options controls the canvas the tree is laid out on.
type Options struct {
	StepX float64 // horizontal distance between depth levels
	YMin  float64 // top of the vertical extent given to the whole tree
	YMax  float64 // bottom of that extent
}

// DefaultOptions returns the standard 300-unit step over [0, 1200].
func DefaultOptions() Options {
	return Options{StepX: 300, YMin: 0, YMax: 1200}
}

// BranchColor is the colour pair used for one top-level branch.
type BranchColor struct {
	Background string
	Border     string
}

// BranchPalette is cycled through by top-level branch index.
var BranchPalette = []BranchColor{
	{Background: "#3b82f6", Border: "#60a5fa"}, // blue
	{Background: "#8b5cf6", Border: "#a78bfa"}, // purple
	{Background: "#ec4899", Border: "#f472b6"}, // pink
	{Background: "#10b981", Border: "#34d399"}, // green
	{Background: "#f59e0b", Border: "#fbbf24"}, // amber
}

// Fixed styling for nodes and edges that carry no branch colour.
const (
	rootBackground = "#000000"
	rootBorder     = "#ffffff"
	nodeBackground = "#171717"
	nodeBorder     = "#404040"
	nodeText       = "#ffffff"
	deepEdgeColor  = "#525252"

	rootFontSize = 16
	nodeFontSize = 13

	branchEdgeWidth = 2
	deepEdgeWidth   = 1
)

// BranchColorFor returns the palette entry for a top-level branch index.
func BranchColorFor(branch int) BranchColor {
	if branch < 0 {
		branch = -branch
	}
	return BranchPalette[branch%len(BranchPalette)]
}

// frame is one pending visit: a node, the interval it owns and where it hangs.
type frame struct {
	node     *TreeNode
	depth    int
	yMin     float64
	yMax     float64
	parentID string
	branch   int
}

// Layout assigns every node of the tree a position and returns the nodes in
// pre-order along with one edge per non-root node.
//
// Ids are "0", "1", ... in the order nodes are first visited, so identical
// input always produces identical ids. Each node sits at depth*StepX and at the
// midpoint of its vertical interval; children split their parent's interval
// into equal slices in child order, regardless of subtree size.
//
// A nil root yields an empty graph. A root without a label is rejected.
func Layout(root *TreeNode, opts Options) (*graph.Graph, error) {
	g := &graph.Graph{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
	if root == nil {
		return g, nil
	}
	if strings.TrimSpace(root.Label) == "" {
		return nil, ErrMissingRootLabel
	}

	nextID := 0
	stack := []frame{{node: root, yMin: opts.YMin, yMax: opts.YMax}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := strconv.Itoa(nextID)
		nextID++

		g.Nodes = append(g.Nodes, placeNode(f, id, opts))
		if f.depth > 0 {
			g.Edges = append(g.Edges, linkNode(f, id))
		}

		n := len(f.node.Children)
		if n == 0 {
			continue
		}
		slice := (f.yMax - f.yMin) / float64(n)
		// Push in reverse so the first child is popped, and numbered, first.
		for i := n - 1; i >= 0; i-- {
			childMin := f.yMin + slice*float64(i)
			childMax := childMin + slice
			if i == n-1 {
				childMax = f.yMax
			}
			branch := f.branch
			if f.depth == 0 {
				branch = i
			}
			stack = append(stack, frame{
				node:     &f.node.Children[i],
				depth:    f.depth + 1,
				yMin:     childMin,
				yMax:     childMax,
				parentID: id,
				branch:   branch,
			})
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("mind map layout produced an inconsistent graph: %w", err)
	}
	return g, nil
}

func placeNode(f frame, id string, opts Options) graph.Node {
	cls := classify.Resolve(f.node.Label, "")

	role := graph.RoleLeaf
	switch {
	case f.depth == 0:
		role = graph.RoleRoot
	case !f.node.IsLeaf():
		role = graph.RoleBranch
	}

	style := graph.Style{
		Background: nodeBackground,
		Border:     nodeBorder,
		Text:       nodeText,
		FontSize:   nodeFontSize,
	}
	switch f.depth {
	case 0:
		style.Background = rootBackground
		style.Border = rootBorder
		style.FontSize = rootFontSize
	case 1:
		style.Border = BranchColorFor(f.branch).Border
	}

	return graph.Node{
		ID:          id,
		Label:       f.node.Label,
		Details:     f.node.Details,
		Category:    cls.Category,
		Icon:        cls.Icon,
		Position:    graph.Position{X: float64(f.depth) * opts.StepX, Y: (f.yMin + f.yMax) / 2},
		Role:        role,
		Depth:       f.depth,
		BranchIndex: f.branch,
		Style:       style,
	}
}

func linkNode(f frame, id string) graph.Edge {
	e := graph.Edge{
		ID:     "e" + f.parentID + "-" + id,
		Source: f.parentID,
		Target: id,
		Color:  deepEdgeColor,
		Width:  deepEdgeWidth,
	}
	if f.depth == 1 {
		e.Color = BranchColorFor(f.branch).Border
		e.Width = branchEdgeWidth
	}
	return e
}
