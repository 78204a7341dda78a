package repository

import (
	"context"

	"github.com/tasklite/backend/domain"
)

// TaskFilter narrows List results. Empty fields mean no constraint.
type TaskFilter struct {
	Status   domain.Status
	Priority domain.Priority
}

// CacheKey returns a stable string form of the filter for cache lookups.
func (f TaskFilter) CacheKey() string {
	return "status=" + string(f.Status) + "&priority=" + string(f.Priority)
}

// TaskRepository is the persistence contract for tasks. List always returns
// tasks ordered by creation time, newest first.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
