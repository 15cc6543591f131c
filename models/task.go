package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type Task struct {
	Meta        `bson:",inline"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description" json:"description"`
	Status      TaskStatus   `bson:"status" json:"status"`
	Priority    TaskPriority `bson:"priority" json:"priority"`
	DueDate     *time.Time   `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
}

// Normalize trims string fields and applies defaults for absent values.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return requiredField("title", "Please provide a task title")
	}
	switch t.Status {
	case StatusPending, StatusInProgress, StatusCompleted:
	default:
		return requiredField("status", "Invalid task status")
	}
	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return requiredField("priority", "Invalid task priority")
	}
	return nil
}

// TaskPatch is a partial update: nil fields are left untouched. It carries
// no owner or identity fields, so a payload cannot reassign either.
type TaskPatch struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *TaskStatus   `json:"status"`
	Priority    *TaskPriority `json:"priority"`
	DueDate     *time.Time    `json:"dueDate"`
}

func (p *TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
}
