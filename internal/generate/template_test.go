package generate

import (
	"context"
	"testing"

	"github.com/sparkforge/spark/internal/blueprint"
	"github.com/sparkforge/spark/internal/mindmap"
	"github.com/sparkforge/spark/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		idea string
		want string
	}{
		{"Uber for DOG walking", "PawPilot"},
		{"pet insurance", "PawPilot"},
		{"personal finance coach", "WealthFlow"},
		{"food waste tracker", "ChefSync"},
		{"recipe swap", "ChefSync"},
		// 8 runes: prefixes[0], suffixes[0]
		{"abcdefgh", "NovaFlow"},
		// 3 runes: prefixes[3], suffixes[6]
		{"xyz", "ZenDash"},
	}

	for _, tt := range tests {
		t.Run(tt.idea, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.idea))
		})
	}
}

func TestTagline(t *testing.T) {
	assert.Equal(t, "The ultimate solution for uber for dog...", Tagline("Uber  for Dog walking"))
	assert.Equal(t, "The ultimate solution for chess...", Tagline("Chess"))
}

func TestTemplateGenerator_GenerateProject(t *testing.T) {
	g := &TemplateGenerator{}
	ctx := context.Background()

	t.Run("web idea", func(t *testing.T) {
		data, err := g.GenerateProject(ctx, "Dog walking marketplace")
		require.NoError(t, err)

		assert.Equal(t, "PawPilot", data.Title)
		assert.Equal(t, "Dog walking marketplace", data.Description)
		assert.Equal(t, project.PricingSubscription, data.PricingModel)
		assert.Len(t, data.TechStack, 4)
		assert.Equal(t, "React", data.TechStack[0].Name)
		assert.Equal(t, []string{"t-1", "t-2", "t-3", "w-1", "w-2"}, ticketIDs(data.Kanban.Backlog))
		assert.Empty(t, data.Kanban.Todo)
		require.Len(t, data.Blueprints, 4)
		assert.Len(t, data.Blueprints[0].Nodes, 14)
	})

	t.Run("mobile idea", func(t *testing.T) {
		data, err := g.GenerateProject(ctx, "mobile habit tracker")
		require.NoError(t, err)
		assert.Equal(t, project.PricingFreemium, data.PricingModel)
		assert.Equal(t, "React Native", data.TechStack[0].Name)
		assert.Contains(t, ticketIDs(data.Kanban.Backlog), "m-1")
	})

	t.Run("ai shop idea", func(t *testing.T) {
		data, err := g.GenerateProject(ctx, "GPT stylist for an online shop")
		require.NoError(t, err)
		assert.Equal(t, project.PricingMarketplace, data.PricingModel)
		assert.Len(t, data.TechStack, 8)
		ids := ticketIDs(data.Kanban.Backlog)
		assert.Contains(t, ids, "a-2")
		assert.Contains(t, ids, "e-1")
		assert.NotNil(t, data.Blueprint(blueprint.IDArchitecture))
		assert.Len(t, data.Blueprint(blueprint.IDArchitecture).Nodes, 17)
	})

	t.Run("scores are deterministic and in range", func(t *testing.T) {
		a, err := g.GenerateProject(ctx, "Recipe sharing for busy parents")
		require.NoError(t, err)
		b, err := g.GenerateProject(ctx, "Recipe sharing for busy parents")
		require.NoError(t, err)
		assert.Equal(t, a.Validation, b.Validation)

		v := a.Validation
		assert.True(t, v.Problem >= 70 && v.Problem <= 95, "problem %d", v.Problem)
		assert.True(t, v.Solution >= 60 && v.Solution <= 90, "solution %d", v.Solution)
		assert.True(t, v.Market >= 50 && v.Market <= 95, "market %d", v.Market)
		assert.True(t, v.UnfairAdvantage >= 40 && v.UnfairAdvantage <= 80, "unfair advantage %d", v.UnfairAdvantage)
		assert.True(t, v.BusinessModel >= 65 && v.BusinessModel <= 90, "business model %d", v.BusinessModel)
		assert.True(t, v.Timing >= 70 && v.Timing <= 99, "timing %d", v.Timing)
	})

	t.Run("blank idea", func(t *testing.T) {
		_, err := g.GenerateProject(ctx, "   ")
		assert.ErrorIs(t, err, ErrEmptyIdea)
	})
}

func TestTemplateGenerator_GenerateMindMap(t *testing.T) {
	g := &TemplateGenerator{}
	ctx := context.Background()

	data, err := g.GenerateProject(ctx, "AI meal planner app")
	require.NoError(t, err)

	root, err := g.GenerateMindMap(ctx, data)
	require.NoError(t, err)
	require.NoError(t, mindmap.Validate(root, mindmap.MaxDepth))

	assert.Equal(t, data.Title, root.Label)
	assert.Equal(t, data.Tagline, root.Details)
	require.Len(t, root.Children, 5)
	assert.Equal(t, "Core Features", root.Children[0].Label)
	assert.Equal(t, "Target Audience", root.Children[4].Label)
	assert.Equal(t, 2, mindmap.Depth(root))
	for _, c := range root.Children {
		assert.LessOrEqual(t, len(c.Children), maxMindMapItems, c.Label)
	}
	assert.Equal(t, "Pricing", root.Children[1].Children[0].Label)

	g2, err := mindmap.Layout(root, mindmap.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, mindmap.Count(root), len(g2.Nodes))

	_, err = g.GenerateMindMap(ctx, &project.Data{})
	assert.ErrorIs(t, err, ErrNoMindMap)
	_, err = g.GenerateMindMap(ctx, nil)
	assert.ErrorIs(t, err, ErrNoMindMap)
}

func ticketIDs(tickets []project.Ticket) []string {
	ids := make([]string, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
	}
	return ids
}
