package project

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sparkforge/spark/internal/blueprint"
	"github.com/sparkforge/spark/internal/mindmap"
)

const validID = "3f2b8c1e-9a4d-4e6f-8b21-7c5d0e9f1a23"

func TestRecord_ValidateForCreate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr error
	}{
		{
			name:    "valid record",
			record:  Record{ID: validID, Title: "PawPilot"},
			wantErr: nil,
		},
		{
			name:    "valid record with idea",
			record:  Record{ID: validID, Title: "PawPilot", Idea: "uber for dog walking"},
			wantErr: nil,
		},
		{
			name:    "empty id",
			record:  Record{ID: "", Title: "PawPilot"},
			wantErr: ErrEmptyID,
		},
		{
			name:    "empty title",
			record:  Record{ID: validID, Title: ""},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "slug id",
			record:  Record{ID: "paw-pilot", Title: "PawPilot"},
			wantErr: ErrInvalidID,
		},
		{
			name:    "truncated uuid",
			record:  Record{ID: "3f2b8c1e-9a4d-4e6f-8b21", Title: "PawPilot"},
			wantErr: ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.ValidateForCreate()
			if err != tt.wantErr {
				t.Errorf("ValidateForCreate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "valid", id: validID, wantErr: nil},
		{name: "empty", id: "", wantErr: ErrEmptyID},
		{name: "not a uuid", id: "dasm2", wantErr: ErrInvalidID},
		{name: "bad hex", id: "zzzzzzzz-9a4d-4e6f-8b21-7c5d0e9f1a23", wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if err != tt.wantErr {
				t.Errorf("ValidateID() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.FixedZone("X", 3600))
	r := NewRecord("uber for dog walking", Data{Title: "PawPilot"}, now)

	if err := r.ValidateForCreate(); err != nil {
		t.Fatalf("new record should validate: %v", err)
	}
	if r.Title != "PawPilot" {
		t.Errorf("Title = %q, want PawPilot", r.Title)
	}
	if r.CreatedAt != "2026-03-14T08:26:53Z" {
		t.Errorf("CreatedAt = %q, want UTC RFC3339", r.CreatedAt)
	}
	if r.UpdatedAt != r.CreatedAt {
		t.Errorf("UpdatedAt = %q, want %q", r.UpdatedAt, r.CreatedAt)
	}

	other := NewRecord("uber for dog walking", Data{Title: "PawPilot"}, now)
	if other.ID == r.ID {
		t.Error("NewRecord should generate distinct ids")
	}

	r.Touch(now.Add(time.Hour))
	if r.UpdatedAt != "2026-03-14T09:26:53Z" {
		t.Errorf("Touch() UpdatedAt = %q", r.UpdatedAt)
	}
}

func TestData_FillDefaults(t *testing.T) {
	var d Data
	if err := json.Unmarshal([]byte(`{"title":"WealthFlow","kanban":{"backlog":[{"id":"t-1","title":"Setup","tag":"DevOps"}]}}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	d.FillDefaults()

	if len(d.Kanban.Backlog) != 1 {
		t.Errorf("backlog should be kept, got %d tickets", len(d.Kanban.Backlog))
	}
	if d.Kanban.Todo == nil || d.Kanban.InProgress == nil || d.Kanban.Review == nil || d.Kanban.Done == nil {
		t.Error("every kanban column should be non-nil")
	}
	if d.Blueprints == nil || d.Personas == nil || d.TechStack == nil {
		t.Error("blueprints, personas and techStack should be non-nil")
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back["blueprints"] == nil {
		t.Error("blueprints should serialize as [] not null")
	}
}

func TestData_Blueprint(t *testing.T) {
	d := Data{Blueprints: blueprint.Templates("smart budgeting")}
	if bp := d.Blueprint(blueprint.IDUserJourney); bp == nil || bp.Name != "User Journey" {
		t.Errorf("Blueprint(%q) = %v", blueprint.IDUserJourney, bp)
	}
	if bp := d.Blueprint("nope"); bp != nil {
		t.Errorf("Blueprint(nope) = %v, want nil", bp)
	}
}

func TestRecord_JSONKeepsMindMap(t *testing.T) {
	r := Record{
		ID:      validID,
		Title:   "ChefSync",
		MindMap: &mindmap.TreeNode{Label: "ChefSync", Children: []mindmap.TreeNode{{Label: "Recipes"}}},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.MindMap == nil || back.MindMap.Children[0].Label != "Recipes" {
		t.Errorf("mind map lost in round trip: %+v", back.MindMap)
	}
}
