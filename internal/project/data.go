package project

import "github.com/sparkforge/spark/internal/blueprint"

// Ticket tags.
const (
	TagFrontend  = "Frontend"
	TagBackend   = "Backend"
	TagDesign    = "Design"
	TagMarketing = "Marketing"
	TagDevOps    = "DevOps"
	TagDatabase  = "Database"
)

// Ticket is one task card on the kanban board.
type Ticket struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tag   string `json:"tag"`
}

// Kanban is the five-column task board.
type Kanban struct {
	Backlog    []Ticket `json:"backlog"`
	Todo       []Ticket `json:"todo"`
	InProgress []Ticket `json:"inProgress"`
	Review     []Ticket `json:"review"`
	Done       []Ticket `json:"done"`
}

// ValidationMetrics scores an idea from 0 to 100 on six axes.
type ValidationMetrics struct {
	Problem         int `json:"problem"`
	Solution        int `json:"solution"`
	Market          int `json:"market"`
	UnfairAdvantage int `json:"unfairAdvantage"`
	BusinessModel   int `json:"businessModel"`
	Timing          int `json:"timing"`
}

// Swot is a strengths/weaknesses/opportunities/threats analysis.
type Swot struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type Persona struct {
	Role       string   `json:"role"`
	Age        string   `json:"age"`
	Bio        string   `json:"bio"`
	PainPoints []string `json:"painPoints"`
}

// MarketStats holds total, serviceable and obtainable market sizes.
// Value carries relative magnitudes for chart scaling.
type MarketStats struct {
	TAM   string    `json:"tam"`
	SAM   string    `json:"sam"`
	SOM   string    `json:"som"`
	Value []float64 `json:"value"`
}

type RevenueProjection struct {
	Year    string  `json:"year"`
	Revenue float64 `json:"revenue"`
	Users   int     `json:"users"`
}

type Competitor struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	FeatureGap string `json:"featureGap"`
}

// TechItem is one entry of the suggested tech stack.
type TechItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// Pricing models.
const (
	PricingSubscription = "Subscription"
	PricingFreemium     = "Freemium"
	PricingOneTime      = "One-Time"
	PricingMarketplace  = "Marketplace"
)

// Data is the generated plan for one idea.
type Data struct {
	Title        string                `json:"title"`
	Tagline      string                `json:"tagline"`
	Description  string                `json:"description"`
	Validation   ValidationMetrics     `json:"validation"`
	Swot         Swot                  `json:"swot"`
	Personas     []Persona             `json:"personas"`
	MarketStats  MarketStats           `json:"marketStats"`
	Revenue      []RevenueProjection   `json:"revenue"`
	Competitors  []Competitor          `json:"competitors"`
	Suggestions  []string              `json:"suggestions"`
	TechStack    []TechItem            `json:"techStack"`
	PricingModel string                `json:"pricingModel"`
	Kanban       Kanban                `json:"kanban"`
	Blueprints   []blueprint.Blueprint `json:"blueprints"`
}

// FillDefaults replaces nil collections with empty ones so the plan always
// serializes with every list present.
func (d *Data) FillDefaults() {
	if d.Kanban.Backlog == nil {
		d.Kanban.Backlog = []Ticket{}
	}
	if d.Kanban.Todo == nil {
		d.Kanban.Todo = []Ticket{}
	}
	if d.Kanban.InProgress == nil {
		d.Kanban.InProgress = []Ticket{}
	}
	if d.Kanban.Review == nil {
		d.Kanban.Review = []Ticket{}
	}
	if d.Kanban.Done == nil {
		d.Kanban.Done = []Ticket{}
	}
	if d.Blueprints == nil {
		d.Blueprints = []blueprint.Blueprint{}
	}
	if d.Personas == nil {
		d.Personas = []Persona{}
	}
	if d.TechStack == nil {
		d.TechStack = []TechItem{}
	}
}

// Blueprint returns the blueprint with the given id, or nil.
func (d *Data) Blueprint(id string) *blueprint.Blueprint {
	return blueprint.Find(d.Blueprints, id)
}
