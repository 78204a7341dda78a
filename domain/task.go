package domain

import (
	"strings"
	"time"
)

// Status represents the workflow stage of a task.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists all valid statuses in board column order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority represents the user-assigned urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists all valid priorities from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank maps a priority to a sortable weight. Unknown priorities rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// Task is the persisted work item. IDs and timestamps are assigned by the
// store; callers never set them.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask builds an unsaved task, applying the documented defaults for
// omitted optional fields.
func NewTask(title, description string, status Status, priority Priority, dueDate time.Time) (*Task, error) {
	if status == "" {
		status = StatusToDo
	}
	if priority == "" {
		priority = PriorityMedium
	}

	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate enforces the task invariants.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if t.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	if !t.Status.Valid() {
		return NewError(ErrCodeInvalid, "invalid status: "+string(t.Status))
	}
	if !t.Priority.Valid() {
		return NewError(ErrCodeInvalid, "invalid priority: "+string(t.Priority))
	}
	return nil
}

// Overdue reports whether the task is past due and not yet done.
// Derived at read time, never stored.
func (t *Task) Overdue(now time.Time) bool {
	return t != nil && t.Status != StatusDone && t.DueDate.Before(now)
}

// TaskPatch enumerates the mutable fields of a task. Nil means "leave
// unchanged"; id and creation time are never patchable.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil
}

// Apply merges the patch into the task, re-validating the result.
func (p TaskPatch) Apply(t *Task) error {
	if t == nil {
		return ErrInvalidPayload
	}
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
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
		t.DueDate = *p.DueDate
	}
	return t.Validate()
}
