// Package project defines the stored project record and the generated plan it carries.
package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sparkforge/spark/internal/mindmap"
)

// Record is one persisted project.
type Record struct {
	ID        string            `json:"id"`                 // Required: uuid
	Title     string            `json:"title"`              // Required
	Idea      string            `json:"idea"`               // The prompt the plan was generated from
	Data      Data              `json:"data"`               // Generated plan
	MindMap   *mindmap.TreeNode `json:"mind_map,omitempty"` // Optional, generated on demand
	CreatedAt string            `json:"created_at"`         // RFC3339
	UpdatedAt string            `json:"updated_at"`         // RFC3339
}

// Validation errors.
var (
	ErrEmptyID         = errors.New("id is required")
	ErrInvalidID       = errors.New("id must be a uuid")
	ErrEmptyTitle      = errors.New("title is required")
	ErrProjectNotFound = errors.New("project not found")
)

// NewRecord builds a record with a fresh id and timestamps set to now.
func NewRecord(idea string, data Data, now time.Time) Record {
	ts := now.UTC().Format(time.RFC3339)
	return Record{
		ID:        uuid.NewString(),
		Title:     data.Title,
		Idea:      idea,
		Data:      data,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// ValidateForCreate validates a record for creation.
func (r *Record) ValidateForCreate() error {
	if err := ValidateID(r.ID); err != nil {
		return err
	}
	if r.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Touch sets UpdatedAt to now.
func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now.UTC().Format(time.RFC3339)
}

// ValidateID validates just the ID field (useful for lookup operations).
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
