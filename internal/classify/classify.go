// Package classify maps diagram node labels and type tags to a visual category,
// an icon and a colour.
package classify

import "strings"

// Category is the semantic bucket a diagram node belongs to.
type Category string

const (
	Client   Category = "client"
	Gateway  Category = "gateway"
	Service  Category = "service"
	Database Category = "database"
	Edge     Category = "edge"
	Pipeline Category = "pipeline"
)

// Default is returned when neither the type tag nor the label match a rule.
const Default = Service

// Categories lists every category in display order.
var Categories = []Category{Client, Edge, Gateway, Service, Database, Pipeline}

// ParseCategory returns the category named by s, ignoring case and surrounding space.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case Client:
		return Client, true
	case Gateway:
		return Gateway, true
	case Service:
		return Service, true
	case Database:
		return Database, true
	case Edge:
		return Edge, true
	case Pipeline:
		return Pipeline, true
	}
	return "", false
}

// Icon names a glyph in the renderer's icon set.
type Icon string

const (
	IconGitBranch  Icon = "git-branch"
	IconFileCode   Icon = "file-code"
	IconTerminal   Icon = "terminal"
	IconTable      Icon = "table"
	IconDatabase   Icon = "database"
	IconGlobe      Icon = "globe"
	IconSmartphone Icon = "smartphone"
	IconShield     Icon = "shield"
	IconCPU        Icon = "cpu"
	IconCloud      Icon = "cloud"
	IconServer     Icon = "server"
)

// rule is one entry of the precedence list. A rule matches when the lower-cased
// label contains any keyword, or when nodeType equals the rule's type tag.
type rule struct {
	keywords []string
	nodeType string
	category Category
	icon     Icon
}

// rules is evaluated top to bottom; the first match wins. The order decides
// ambiguous labels such as "Auth Gateway" and must not be rearranged.
var rules = []rule{
	{keywords: []string{"git", "ci/cd"}, nodeType: "pipeline", category: Pipeline, icon: IconGitBranch},
	{keywords: []string{"test", "lint", "scan"}, category: Pipeline, icon: IconFileCode},
	{keywords: []string{"build", "deploy"}, category: Pipeline, icon: IconTerminal},
	{keywords: []string{"table", "entity"}, nodeType: "database", category: Database, icon: IconTable},
	{keywords: []string{"db", "storage"}, nodeType: "database", category: Database, icon: IconDatabase},
	{keywords: []string{"web"}, nodeType: "client", category: Client, icon: IconGlobe},
	{keywords: []string{"mobile", "app"}, category: Client, icon: IconSmartphone},
	{keywords: []string{"auth", "waf", "security"}, category: Service, icon: IconShield},
	{keywords: []string{"ai", "worker", "compute"}, category: Service, icon: IconCPU},
	{keywords: []string{"cdn", "gateway"}, nodeType: "gateway", category: Gateway, icon: IconCloud},
}

func (r rule) matches(lower, nodeType string) bool {
	if r.nodeType != "" && nodeType == r.nodeType {
		return true
	}
	for _, kw := range r.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// matchLabel returns the first rule whose keywords match label, ignoring type tags.
func matchLabel(label string) (rule, bool) {
	lower := strings.ToLower(label)
	for _, r := range rules {
		if r.matches(lower, "") {
			return r, true
		}
	}
	return rule{}, false
}

// Classify returns the category for a node. A recognized nodeType wins;
// otherwise the label is matched against the keyword precedence list.
// Unmatched input resolves to Default.
func Classify(label, nodeType string) Category {
	if c, ok := ParseCategory(nodeType); ok {
		return c
	}
	if r, ok := matchLabel(label); ok {
		return r.category
	}
	return Default
}

// IconFor returns the icon for a node, checking type tags at the point in the
// precedence list where they appear rather than up front.
func IconFor(label, nodeType string) Icon {
	lower := strings.ToLower(label)
	nodeType = strings.ToLower(strings.TrimSpace(nodeType))
	for _, r := range rules {
		if r.matches(lower, nodeType) {
			return r.icon
		}
	}
	return IconServer
}

// Color holds the colour tokens a renderer uses for one category.
type Color struct {
	Border  string `json:"border"`
	Text    string `json:"text"`
	MiniMap string `json:"minimap"`
}

var colors = map[Category]Color{
	Database: {Border: "#7c2d12", Text: "#fb923c", MiniMap: "#7c2d12"},
	Client:   {Border: "#1e3a8a", Text: "#60a5fa", MiniMap: "#262626"},
	Gateway:  {Border: "#581c87", Text: "#c084fc", MiniMap: "#581c87"},
	Edge:     {Border: "#831843", Text: "#f472b6", MiniMap: "#262626"},
	Pipeline: {Border: "#064e3b", Text: "#4ade80", MiniMap: "#064e3b"},
	Service:  {Border: "#262626", Text: "#a3a3a3", MiniMap: "#262626"},
}

// ColorFor returns the static colour tokens for c. Unknown categories get the
// Default category's colours.
func ColorFor(c Category) Color {
	if col, ok := colors[c]; ok {
		return col
	}
	return colors[Default]
}

// Classification bundles everything a renderer needs to style one node.
type Classification struct {
	Category Category `json:"category"`
	Icon     Icon     `json:"icon"`
	Color    Color    `json:"color"`
}

// Resolve classifies a node and looks up its icon and colour.
func Resolve(label, nodeType string) Classification {
	c := Classify(label, nodeType)
	return Classification{
		Category: c,
		Icon:     IconFor(label, nodeType),
		Color:    ColorFor(c),
	}
}
