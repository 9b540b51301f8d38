package generate

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/sparkforge/spark/internal/blueprint"
	"github.com/sparkforge/spark/internal/mindmap"
	"github.com/sparkforge/spark/internal/project"
)

// TemplateGenerator builds plans offline from keyword cues in the idea. The
// same idea always yields the same plan.
type TemplateGenerator struct{}

var _ Generator = (*TemplateGenerator)(nil)

var (
	webStack = []project.TechItem{
		{Name: "React", Category: "Frontend", Icon: "Code"},
		{Name: "Tailwind CSS", Category: "Styling", Icon: "Palette"},
		{Name: "Node.js", Category: "Backend", Icon: "Server"},
		{Name: "PostgreSQL", Category: "Database", Icon: "Database"},
	}
	mobileStack = []project.TechItem{
		{Name: "React Native", Category: "Mobile", Icon: "Smartphone"},
		{Name: "Firebase", Category: "Backend", Icon: "Cloud"},
		{Name: "Redux", Category: "State", Icon: "Cpu"},
	}
	aiStack = []project.TechItem{
		{Name: "Python", Category: "Backend", Icon: "Code"},
		{Name: "FastAPI", Category: "API", Icon: "Server"},
		{Name: "OpenAI API", Category: "AI", Icon: "Brain"},
		{Name: "Pinecone", Category: "Vector DB", Icon: "Database"},
	}
)

var (
	titlePrefixes = []string{"Nova", "Flux", "Hyper", "Zen", "Echo", "Rapid", "Smart", "Omni"}
	titleSuffixes = []string{"Flow", "Base", "Hub", "Sync", "ify", "ly", "Dash", "Pilot"}
)

// cues are the keyword signals read from an idea.
type cues struct {
	mobile, ai, ecom bool
}

func readCues(idea string) cues {
	lower := strings.ToLower(idea)
	return cues{
		mobile: strings.Contains(lower, "app") || strings.Contains(lower, "mobile"),
		ai:     blueprint.IsAIIdea(idea),
		ecom:   strings.Contains(lower, "shop") || strings.Contains(lower, "store") || strings.Contains(lower, "sell"),
	}
}

// Title names a product after its idea.
func Title(idea string) string {
	lower := strings.ToLower(idea)
	switch {
	case strings.Contains(lower, "dog") || strings.Contains(lower, "pet"):
		return "PawPilot"
	case strings.Contains(lower, "finance") || strings.Contains(lower, "money"):
		return "WealthFlow"
	case strings.Contains(lower, "food") || strings.Contains(lower, "recipe"):
		return "ChefSync"
	}

	seed := utf8.RuneCountInString(idea)
	return titlePrefixes[seed%len(titlePrefixes)] + titleSuffixes[(seed*2)%len(titleSuffixes)]
}

// Tagline returns the one-line pitch built from the first words of the idea.
func Tagline(idea string) string {
	words := strings.Fields(strings.ToLower(idea))
	if len(words) > 3 {
		words = words[:3]
	}
	return fmt.Sprintf("The ultimate solution for %s...", strings.Join(words, " "))
}

func techStack(c cues) []project.TechItem {
	var stack []project.TechItem
	switch {
	case c.ai:
		stack = append(append(stack, webStack...), aiStack...)
	case c.mobile:
		stack = append(stack, mobileStack...)
	default:
		stack = append(stack, webStack...)
	}
	return stack
}

func backlog(c cues) []project.Ticket {
	tickets := []project.Ticket{
		{ID: "t-1", Title: "Setup Repo & CI/CD", Tag: project.TagDevOps},
		{ID: "t-2", Title: "Design System Setup", Tag: project.TagDesign},
		{ID: "t-3", Title: "User Authentication", Tag: project.TagBackend},
	}
	if c.mobile {
		tickets = append(tickets,
			project.Ticket{ID: "m-1", Title: "App Store Screenshots", Tag: project.TagDesign},
			project.Ticket{ID: "m-2", Title: "Push Notifications", Tag: project.TagFrontend},
		)
	} else {
		tickets = append(tickets,
			project.Ticket{ID: "w-1", Title: "Landing Page Hero", Tag: project.TagFrontend},
			project.Ticket{ID: "w-2", Title: "SEO Optimization", Tag: project.TagMarketing},
		)
	}
	if c.ai {
		tickets = append(tickets,
			project.Ticket{ID: "a-1", Title: "Prompt Engineering", Tag: project.TagBackend},
			project.Ticket{ID: "a-2", Title: "Vector Embeddings Setup", Tag: project.TagBackend},
		)
	}
	if c.ecom {
		tickets = append(tickets,
			project.Ticket{ID: "e-1", Title: "Stripe Integration", Tag: project.TagBackend},
			project.Ticket{ID: "e-2", Title: "Product Catalog Schema", Tag: project.TagDatabase},
		)
	}
	return tickets
}

func pricingModel(c cues) string {
	switch {
	case c.ecom:
		return project.PricingMarketplace
	case c.mobile:
		return project.PricingFreemium
	default:
		return project.PricingSubscription
	}
}

// scorer draws validation scores from a stream seeded by the idea text.
type scorer struct {
	rng *rand.Rand
}

func newScorer(idea string) *scorer {
	h := fnv.New64a()
	h.Write([]byte(idea))
	seed := h.Sum64()
	return &scorer{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// between returns an integer in [lo, hi].
func (s *scorer) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// GenerateProject builds a plan for idea.
func (g *TemplateGenerator) GenerateProject(ctx context.Context, idea string) (*project.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(idea) == "" {
		return nil, ErrEmptyIdea
	}

	c := readCues(idea)
	s := newScorer(idea)

	data := &project.Data{
		Title:       Title(idea),
		Tagline:     Tagline(idea),
		Description: idea,
		Validation: project.ValidationMetrics{
			Problem:         s.between(70, 95),
			Solution:        s.between(60, 90),
			Market:          s.between(50, 95),
			UnfairAdvantage: s.between(40, 80),
			BusinessModel:   s.between(65, 90),
			Timing:          s.between(70, 99),
		},
		Swot: project.Swot{
			Strengths:     []string{"First-mover advantage in niche", "Scalable tech stack", "Low operational overhead"},
			Weaknesses:    []string{"Limited initial marketing budget", "High dependency on third-party APIs", "Small team size"},
			Opportunities: []string{"Expansion into enterprise markets", "Partnerships with existing platforms", "Viral growth potential"},
			Threats:       []string{"Rapidly changing AI regulations", "Big tech competitors entering space", "Platform risk (if dependent on Twitter/IG)"},
		},
		Personas: []project.Persona{
			{
				Role:       "The Early Adopter",
				Age:        "25-34",
				Bio:        "Tech-savvy, always looking for efficiency tools. Willing to pay for premium features if they save time.",
				PainPoints: []string{"Current solutions are too slow", "UI/UX is clunky in competitors", "Lacks automation"},
			},
			{
				Role:       "The Decision Maker",
				Age:        "35-50",
				Bio:        "Focused on ROI and team productivity. Needs reliability and security compliance.",
				PainPoints: []string{"Difficulty scaling processes", "Fragmented data sources", "High cost of manual labor"},
			},
		},
		MarketStats: project.MarketStats{TAM: "$14.2B", SAM: "$3.1B", SOM: "$150M", Value: []float64{100, 22, 1.1}},
		Revenue: []project.RevenueProjection{
			{Year: "Year 1", Revenue: 0, Users: 0},
			{Year: "Year 2", Revenue: 50, Users: 1000},
			{Year: "Year 3", Revenue: 250, Users: 5000},
			{Year: "Year 4", Revenue: 800, Users: 15000},
			{Year: "Year 5", Revenue: 2500, Users: 45000},
		},
		Competitors: []project.Competitor{
			{Name: "LegacyCorp", Price: "High ($$$)", FeatureGap: "Clunky UX, No AI"},
			{Name: "StartUp X", Price: "Low ($)", FeatureGap: "Limited Integrations"},
			{Name: "Manual Process", Price: "Free (Time)", FeatureGap: "High Effort, Error Prone"},
		},
		Suggestions: []string{
			`Consider a "Freemium" tier to reduce barrier to entry.`,
			"Focus on a niche subset of users first before scaling broadly.",
			"Add social proof elements (testimonials) early in the design.",
		},
		TechStack:    techStack(c),
		PricingModel: pricingModel(c),
		Kanban:       project.Kanban{Backlog: backlog(c)},
		Blueprints:   blueprint.Templates(idea),
	}
	data.FillDefaults()
	return data, nil
}

// maxMindMapItems caps the sub-items under one mind-map category.
const maxMindMapItems = 4

// GenerateMindMap derives a three-level map from a plan: the product, five
// categories, and up to maxMindMapItems items under each.
func (g *TemplateGenerator) GenerateMindMap(ctx context.Context, data *project.Data) (*mindmap.TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if data == nil || strings.TrimSpace(data.Title) == "" {
		return nil, ErrNoMindMap
	}

	var features []mindmap.TreeNode
	for _, t := range data.Kanban.Backlog {
		features = append(features, mindmap.TreeNode{Label: t.Title, Details: t.Tag})
	}

	var market []mindmap.TreeNode
	market = append(market, mindmap.TreeNode{Label: "Pricing", Details: data.PricingModel})
	for _, s := range data.Suggestions {
		market = append(market, mindmap.TreeNode{Label: s})
	}

	var revenue []mindmap.TreeNode
	if data.MarketStats.TAM != "" {
		revenue = append(revenue,
			mindmap.TreeNode{Label: "TAM", Details: data.MarketStats.TAM},
			mindmap.TreeNode{Label: "SAM", Details: data.MarketStats.SAM},
			mindmap.TreeNode{Label: "SOM", Details: data.MarketStats.SOM},
		)
	}
	for _, c := range data.Competitors {
		revenue = append(revenue, mindmap.TreeNode{Label: "vs " + c.Name, Details: c.FeatureGap})
	}

	var infra []mindmap.TreeNode
	for _, t := range data.TechStack {
		infra = append(infra, mindmap.TreeNode{Label: t.Name, Details: t.Category})
	}

	var audience []mindmap.TreeNode
	for _, p := range data.Personas {
		audience = append(audience, mindmap.TreeNode{Label: p.Role, Details: p.Age})
	}

	root := &mindmap.TreeNode{
		Label:   data.Title,
		Details: data.Tagline,
		Children: []mindmap.TreeNode{
			{Label: "Core Features", Children: capItems(features)},
			{Label: "Go-to-Market", Children: capItems(market)},
			{Label: "Revenue Streams", Children: capItems(revenue)},
			{Label: "Infrastructure", Children: capItems(infra)},
			{Label: "Target Audience", Children: capItems(audience)},
		},
	}
	return root, nil
}

func capItems(items []mindmap.TreeNode) []mindmap.TreeNode {
	if len(items) > maxMindMapItems {
		return items[:maxMindMapItems]
	}
	return items
}
