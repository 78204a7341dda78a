package transport

import (
	"time"

	"github.com/tasklite/backend/domain"
)

// Accepted due-date layouts. The UI sends a bare date from its picker;
// programmatic clients send RFC 3339.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDueDate parses a due date in any accepted layout.
func ParseDueDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// TaskCreateRequest is the POST /tasks body.
type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// Task converts the request into an unsaved domain task, applying defaults
// and validating required fields.
func (r TaskCreateRequest) Task() (*domain.Task, error) {
	if r.DueDate == "" {
		return nil, domain.ErrDueDateRequired
	}
	due, err := ParseDueDate(r.DueDate)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid due date", err)
	}
	return domain.NewTask(r.Title, r.Description, domain.Status(r.Status), domain.Priority(r.Priority), due)
}

// TaskPatchRequest is the PUT /tasks/{id} body. Every field is optional;
// unknown fields are rejected at decode time.
type TaskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// Patch converts the request into a typed domain patch.
func (r TaskPatchRequest) Patch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		status := domain.Status(*r.Status)
		patch.Status = &status
	}
	if r.Priority != nil {
		priority := domain.Priority(*r.Priority)
		patch.Priority = &priority
	}
	if r.DueDate != nil {
		due, err := ParseDueDate(*r.DueDate)
		if err != nil {
			return domain.TaskPatch{}, domain.WrapError(domain.ErrCodeInvalid, "invalid due date", err)
		}
		patch.DueDate = &due
	}
	return patch, nil
}
