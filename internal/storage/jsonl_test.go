package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sparkforge/spark/internal/mindmap"
	"github.com/sparkforge/spark/internal/project"
)

const (
	idPaw    = "0b7c1c8e-3b9f-4a8e-9d0e-2f6a1b3c4d5e"
	idWealth = "6a1d0f3e-8c2b-4e7a-a1f9-0d3c5b7e9f11"
	idChef   = "c4e8a2b6-1f3d-4a5c-8e7b-9d0f2a4c6e8b"
)

func testRecords() []project.Record {
	return []project.Record{
		{
			ID:        idPaw,
			Title:     "PawPilot",
			Idea:      "Uber for dog walking",
			Data:      project.Data{Title: "PawPilot", Tagline: "The ultimate solution for uber for dog..."},
			CreatedAt: "2026-01-01T10:00:00Z",
			UpdatedAt: "2026-01-01T10:00:00Z",
		},
		{
			ID:        idWealth,
			Title:     "WealthFlow",
			Idea:      "Personal finance coach",
			Data:      project.Data{Title: "WealthFlow", PricingModel: project.PricingSubscription},
			MindMap:   &mindmap.TreeNode{Label: "WealthFlow", Children: []mindmap.TreeNode{{Label: "Budgets"}}},
			CreatedAt: "2026-02-01T10:00:00Z",
			UpdatedAt: "2026-02-03T10:00:00Z",
		},
		{
			ID:        idChef,
			Title:     "ChefSync",
			Idea:      "Recipe sharing 100% offline",
			Data:      project.Data{Title: "ChefSync"},
			CreatedAt: "2026-03-01T10:00:00Z",
			UpdatedAt: "2026-03-01T10:00:00Z",
		},
	}
}

func TestReadAllRecords_NotFound(t *testing.T) {
	records, err := ReadAllRecords(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("ReadAllRecords() error = %v", err)
	}
	if records != nil {
		t.Errorf("ReadAllRecords() got %v, want nil", records)
	}
}

func TestWriteAndReadAllRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.jsonl")

	if err := WriteAllRecords(path, testRecords()); err != nil {
		t.Fatalf("WriteAllRecords() error = %v", err)
	}

	records, err := ReadAllRecords(path)
	if err != nil {
		t.Fatalf("ReadAllRecords() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ReadAllRecords() got %d records, want 3", len(records))
	}
	if records[1].Title != "WealthFlow" {
		t.Errorf("records[1].Title = %q, want WealthFlow", records[1].Title)
	}
	if records[1].MindMap == nil || records[1].MindMap.Children[0].Label != "Budgets" {
		t.Errorf("records[1].MindMap = %+v, want Budgets child", records[1].MindMap)
	}
	if records[0].MindMap != nil {
		t.Errorf("records[0].MindMap = %+v, want nil", records[0].MindMap)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should be gone, stat err = %v", err)
	}
}

func TestAppendRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.jsonl")
	recs := testRecords()

	for _, r := range recs[:2] {
		if err := AppendRecord(path, r); err != nil {
			t.Fatalf("AppendRecord() error = %v", err)
		}
	}

	records, err := ReadAllRecords(path)
	if err != nil {
		t.Fatalf("ReadAllRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
}

func TestReadAllRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed json",
			content: `{"id": "` + idPaw + `", "title":` + "\n",
			wantErr: "parsing line 1",
		},
		{
			name:    "slug id",
			content: `{"id":"pawpilot","title":"PawPilot"}` + "\n",
			wantErr: "invalid project at line 1",
		},
		{
			name:    "missing title on second line",
			content: `{"id":"` + idPaw + `","title":"PawPilot"}` + "\n\n" + `{"id":"` + idChef + `"}` + "\n",
			wantErr: "invalid project at line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "projects.jsonl")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := ReadAllRecords(path)
			if err == nil {
				t.Fatal("ReadAllRecords() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestUpsertRecordInSlice(t *testing.T) {
	records := testRecords()

	updated := records[0]
	updated.Title = "PawPilot Pro"
	records, wasUpdate := UpsertRecordInSlice(records, updated)
	if !wasUpdate {
		t.Error("UpsertRecordInSlice() should report update for existing id")
	}
	if len(records) != 3 || records[0].Title != "PawPilot Pro" {
		t.Errorf("unexpected slice after update: len=%d title=%q", len(records), records[0].Title)
	}

	fresh := project.Record{ID: "9e8d7c6b-5a49-4382-9170-fedcba987654", Title: "Fresh"}
	records, wasUpdate = UpsertRecordInSlice(records, fresh)
	if wasUpdate {
		t.Error("UpsertRecordInSlice() should report add for new id")
	}
	if len(records) != 4 {
		t.Errorf("len = %d, want 4", len(records))
	}
}

func TestDeleteRecordFromSlice(t *testing.T) {
	records, found := DeleteRecordFromSlice(testRecords(), idPaw)
	if !found {
		t.Fatal("DeleteRecordFromSlice() should find existing id")
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != idWealth || records[1].ID != idChef {
		t.Errorf("remaining order = [%s %s], want [%s %s]", records[0].ID, records[1].ID, idWealth, idChef)
	}

	_, found = DeleteRecordFromSlice(records, "0b7c1c8e-0000-4a8e-9d0e-2f6a1b3c4d5e")
	if found {
		t.Error("DeleteRecordFromSlice() should not find unknown id")
	}
}

func TestFindRecordByID(t *testing.T) {
	records := testRecords()
	if idx, found := FindRecordByID(records, idChef); !found || idx != 2 {
		t.Errorf("FindRecordByID() = (%d, %v), want (2, true)", idx, found)
	}
	if idx, found := FindRecordByID(records, "nope"); found || idx != -1 {
		t.Errorf("FindRecordByID() = (%d, %v), want (-1, false)", idx, found)
	}
}
