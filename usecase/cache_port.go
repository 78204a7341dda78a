package usecase

import (
	"context"

	"github.com/tasklite/backend/domain"
	"github.com/tasklite/backend/repository"
)

// ListCache abstracts the read cache so use cases stay storage-agnostic.
// Implementations must treat a miss as (nil, false, nil), not an error.
type ListCache interface {
	GetList(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, bool, error)
	SetList(ctx context.Context, filter repository.TaskFilter, tasks []domain.Task) error
	Invalidate(ctx context.Context) error
}
