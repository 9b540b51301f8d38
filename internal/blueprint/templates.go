package blueprint

import (
	"strings"

	"github.com/sparkforge/spark/internal/graph"
)

// TierSpacing is the horizontal distance between architectural tiers.
const TierSpacing = 300

// Tier is an architectural layer, ordered left to right.
type Tier int

const (
	TierClient Tier = iota
	TierEdge
	TierGateway
	TierService
	TierData
)

// TierX returns the conventional x coordinate for a tier. Producers may use it
// when placing nodes; Normalize never applies it.
func TierX(t Tier) float64 {
	return float64(t) * TierSpacing
}

// at places a node in layer column col.
func at(col int, y float64) *graph.Position {
	return &graph.Position{X: float64(col) * TierSpacing, Y: y}
}

// pos places a node at an explicit point.
func pos(x, y float64) *graph.Position {
	return &graph.Position{X: x, Y: y}
}

// Template blueprint ids.
const (
	IDArchitecture   = "system-arch"
	IDUserJourney    = "user-journey"
	IDDatabaseSchema = "db-schema"
	IDCICD           = "cicd"
)

// Architecture returns the enterprise system architecture diagram. withAI adds
// an inference service, a vector store and an external model API.
func Architecture(withAI bool) Blueprint {
	nodes := []Node{
		{ID: "cl-1", Label: "Web Client", Details: "React / Next.js", Type: "client", Position: pos(0, 100)},
		{ID: "cl-2", Label: "Mobile App", Details: "React Native", Type: "client", Position: pos(0, 300)},
		{ID: "ed-1", Label: "CDN / WAF", Details: "Cloudflare", Type: "edge", Position: pos(350, 200)},
		{ID: "gw-1", Label: "Load Balancer", Details: "AWS ALB", Type: "gateway", Position: pos(650, 200)},
		{ID: "gw-2", Label: "API Gateway", Details: "Kong / Traefik", Type: "gateway", Position: pos(900, 200)},
		{ID: "ms-1", Label: "Auth Service", Details: "OAuth2 / JWT", Type: "service", Position: pos(1250, 0)},
		{ID: "ms-2", Label: "Core API", Details: "Node.js Cluster", Type: "service", Position: pos(1250, 150)},
		{ID: "ms-3", Label: "Payment Svc", Details: "Stripe Webhooks", Type: "service", Position: pos(1250, 300)},
		{ID: "ms-4", Label: "Notification", Details: "Email / Push", Type: "service", Position: pos(1250, 450)},
		{ID: "mb-1", Label: "Event Bus", Details: "Kafka / RabbitMQ", Type: "infrastructure", Position: pos(1600, 225)},
		{ID: "db-1", Label: "Identity DB", Details: "PostgreSQL", Type: "database", Position: pos(1950, 0)},
		{ID: "db-2", Label: "Primary DB", Details: "PostgreSQL (HA)", Type: "database", Position: pos(1950, 150)},
		{ID: "db-3", Label: "Cache Cluster", Details: "Redis Sentinel", Type: "database", Position: pos(1600, 50)},
		{ID: "db-4", Label: "Object Store", Details: "S3 Buckets", Type: "database", Position: pos(1950, 350)},
	}

	edges := []Edge{
		{ID: "e-1", Source: "cl-1", Target: "ed-1", Label: "HTTPS"},
		{ID: "e-2", Source: "cl-2", Target: "ed-1", Label: "HTTPS"},
		{ID: "e-3", Source: "ed-1", Target: "gw-1", Label: "443"},
		{ID: "e-4", Source: "gw-1", Target: "gw-2", Label: "Internal"},
		{ID: "e-5", Source: "gw-2", Target: "ms-1", Label: "/auth"},
		{ID: "e-6", Source: "gw-2", Target: "ms-2", Label: "/api"},
		{ID: "e-7", Source: "gw-2", Target: "ms-3", Label: "/pay"},
		{ID: "e-8", Source: "gw-2", Target: "ms-4", Label: "gRPC"},
		{ID: "e-9", Source: "ms-1", Target: "db-1", Label: "Read/Write"},
		{ID: "e-10", Source: "ms-2", Target: "db-2", Label: "SQL"},
		{ID: "e-11", Source: "ms-2", Target: "db-3", Label: "Cache"},
		{ID: "e-12", Source: "ms-3", Target: "db-2", Label: "Tx"},
		{ID: "e-13", Source: "ms-2", Target: "mb-1", Label: "Pub"},
		{ID: "e-14", Source: "ms-3", Target: "mb-1", Label: "Pub"},
		{ID: "e-15", Source: "mb-1", Target: "ms-4", Label: "Sub"},
	}

	if withAI {
		nodes = append(nodes,
			Node{ID: "ms-ai", Label: "Inference Engine", Details: "Python / Torch", Type: "service", Position: pos(1250, 600)},
			Node{ID: "db-vec", Label: "Vector Store", Details: "Pinecone", Type: "database", Position: pos(1950, 600)},
			Node{ID: "ext-llm", Label: "LLM API", Details: "OpenAI / Anthropic", Type: "external", Position: pos(1600, 700)},
		)
		edges = append(edges,
			Edge{ID: "e-ai-1", Source: "gw-2", Target: "ms-ai", Label: "/generate"},
			Edge{ID: "e-ai-2", Source: "ms-ai", Target: "db-vec", Label: "Embeddings"},
			Edge{ID: "e-ai-3", Source: "ms-ai", Target: "ext-llm", Label: "Stream"},
		)
	}

	return Blueprint{ID: IDArchitecture, Name: "Architecture", Nodes: nodes, Edges: edges}
}

// UserJourney returns the acquisition-to-retention funnel diagram.
func UserJourney() Blueprint {
	return Blueprint{
		ID:   IDUserJourney,
		Name: "User Journey",
		Nodes: []Node{
			{ID: "u-1", Label: "Organic Search", Details: "Google / SEO", Type: "client", Position: pos(0, 200)},
			{ID: "u-2", Label: "Landing Page", Details: "Value Prop", Type: "client", Position: pos(300, 200)},
			{ID: "u-3", Label: "Pricing View", Details: "Comparison", Type: "client", Position: pos(550, 100)},
			{ID: "u-4", Label: "Sign Up Flow", Details: "Magic Link", Type: "client", Position: pos(800, 200)},
			{ID: "u-5", Label: "Onboarding", Details: "Workspace Setup", Type: "client", Position: pos(1050, 200)},
			{ID: "u-6", Label: "First Action", Details: "Activation", Type: "service", Position: pos(1300, 200)},
			{ID: "u-7", Label: "Dashboard", Details: "Retention", Type: "service", Position: pos(1550, 200)},
			{ID: "u-8", Label: "Email Nurture", Details: "Re-engagement", Type: "gateway", Position: pos(550, 350)},
		},
		Edges: []Edge{
			{ID: "eu-1", Source: "u-1", Target: "u-2"},
			{ID: "eu-2", Source: "u-2", Target: "u-3"},
			{ID: "eu-3", Source: "u-2", Target: "u-4"},
			{ID: "eu-4", Source: "u-3", Target: "u-4"},
			{ID: "eu-5", Source: "u-4", Target: "u-5"},
			{ID: "eu-6", Source: "u-5", Target: "u-6"},
			{ID: "eu-7", Source: "u-6", Target: "u-7"},
			{ID: "eu-8", Source: "u-2", Target: "u-8", Label: "Exit"},
			{ID: "eu-9", Source: "u-8", Target: "u-4", Label: "Click"},
		},
	}
}

// DatabaseSchema returns the entity-relationship diagram.
func DatabaseSchema() Blueprint {
	return Blueprint{
		ID:   IDDatabaseSchema,
		Name: "Database Schema",
		Nodes: []Node{
			{ID: "tbl-1", Label: "Users", Details: "id, email, password_hash", Type: "database", Position: at(0, 150)},
			{ID: "tbl-2", Label: "Profiles", Details: "user_id, first_name, avatar", Type: "database", Position: at(1, 50)},
			{ID: "tbl-3", Label: "Organizations", Details: "id, name, plan_tier", Type: "database", Position: at(1, 250)},
			{ID: "tbl-4", Label: "Memberships", Details: "user_id, org_id, role", Type: "database", Position: at(2, 150)},
			{ID: "tbl-5", Label: "Projects", Details: "id, org_id, data_json", Type: "database", Position: at(2, 350)},
			{ID: "tbl-6", Label: "Audit_Logs", Details: "id, actor_id, action", Type: "database", Position: at(3, 250)},
		},
		Edges: []Edge{
			{ID: "rel-1", Source: "tbl-1", Target: "tbl-2", Label: "1:1"},
			{ID: "rel-2", Source: "tbl-1", Target: "tbl-4", Label: "1:N"},
			{ID: "rel-3", Source: "tbl-3", Target: "tbl-4", Label: "1:N"},
			{ID: "rel-4", Source: "tbl-3", Target: "tbl-5", Label: "1:N"},
			{ID: "rel-5", Source: "tbl-1", Target: "tbl-6", Label: "1:N"},
		},
	}
}

// CICDPipeline returns the build-and-deploy pipeline diagram.
func CICDPipeline() Blueprint {
	return Blueprint{
		ID:   IDCICD,
		Name: "CI/CD Pipeline",
		Nodes: []Node{
			{ID: "git", Label: "GitHub Repo", Details: "Main Branch", Type: "pipeline", Position: at(0, 200)},
			{ID: "ci-1", Label: "Lint & Test", Details: "Jest / ESLint", Type: "pipeline", Position: at(1, 200)},
			{ID: "ci-2", Label: "Build Image", Details: "Docker Build", Type: "pipeline", Position: at(2, 200)},
			{ID: "ci-3", Label: "Security Scan", Details: "Snyk / Sonar", Type: "pipeline", Position: at(2, 350)},
			{ID: "reg", Label: "Registry", Details: "ECR / DockerHub", Type: "pipeline", Position: at(3, 200)},
			{ID: "cd-1", Label: "Dev Deploy", Details: "K8s Dev Cluster", Type: "pipeline", Position: at(4, 100)},
			{ID: "cd-2", Label: "Staging Deploy", Details: "K8s Staging", Type: "pipeline", Position: at(4, 300)},
			{ID: "cd-3", Label: "Prod Approval", Details: "Manual Gate", Type: "gateway", Position: at(5, 300)},
			{ID: "cd-4", Label: "Prod Deploy", Details: "Blue/Green", Type: "pipeline", Position: at(6, 300)},
		},
		Edges: []Edge{
			{ID: "p-1", Source: "git", Target: "ci-1", Label: "Push"},
			{ID: "p-2", Source: "ci-1", Target: "ci-2", Label: "Pass"},
			{ID: "p-3", Source: "ci-1", Target: "ci-3", Label: "Async"},
			{ID: "p-4", Source: "ci-2", Target: "reg", Label: "Push"},
			{ID: "p-5", Source: "reg", Target: "cd-1", Label: "Auto"},
			{ID: "p-6", Source: "reg", Target: "cd-2", Label: "Auto"},
			{ID: "p-7", Source: "cd-2", Target: "cd-3", Label: "Ready"},
			{ID: "p-8", Source: "cd-3", Target: "cd-4", Label: "Approve"},
		},
	}
}

// IsAIIdea reports whether an idea reads as AI-flavoured.
func IsAIIdea(idea string) bool {
	lower := strings.ToLower(idea)
	return strings.Contains(lower, "ai") || strings.Contains(lower, "gpt") || strings.Contains(lower, "smart")
}

// Templates returns the four standard diagrams for an idea.
func Templates(idea string) []Blueprint {
	return []Blueprint{
		Architecture(IsAIIdea(idea)),
		UserJourney(),
		DatabaseSchema(),
		CICDPipeline(),
	}
}
