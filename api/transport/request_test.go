package transport

import (
	"testing"
	"time"

	"github.com/tasklite/backend/domain"
)

func TestParseDueDate(t *testing.T) {
	if _, err := ParseDueDate("2025-01-10"); err != nil {
		t.Errorf("date-only layout rejected: %v", err)
	}
	if _, err := ParseDueDate("2025-01-10T15:04:05Z"); err != nil {
		t.Errorf("RFC3339 layout rejected: %v", err)
	}
	if _, err := ParseDueDate("10/01/2025"); err == nil {
		t.Error("unsupported layout accepted")
	}
}

func TestCreateRequestTask(t *testing.T) {
	req := TaskCreateRequest{Title: "x", DueDate: "2025-01-10"}
	task, err := req.Task()
	if err != nil {
		t.Fatalf("Task: %v", err)
	}
	if task.Status != domain.StatusToDo || task.Priority != domain.PriorityMedium {
		t.Errorf("defaults not applied: %+v", task)
	}
	if !task.DueDate.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dueDate = %v", task.DueDate)
	}

	if _, err := (TaskCreateRequest{Title: "x"}).Task(); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("missing due date: err = %v, want INVALID", err)
	}
}

func TestPatchRequestPatch(t *testing.T) {
	status := "Done"
	due := "2025-02-01"
	req := TaskPatchRequest{Status: &status, DueDate: &due}

	patch, err := req.Patch()
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if patch.Status == nil || *patch.Status != domain.StatusDone {
		t.Errorf("patch.Status = %v", patch.Status)
	}
	if patch.DueDate == nil || !patch.DueDate.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("patch.DueDate = %v", patch.DueDate)
	}
	if patch.Title != nil || patch.Description != nil || patch.Priority != nil {
		t.Error("unset fields must stay nil")
	}

	bad := "soon"
	if _, err := (TaskPatchRequest{DueDate: &bad}).Patch(); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("bad due date: err = %v, want INVALID", err)
	}
}
