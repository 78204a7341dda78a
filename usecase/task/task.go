package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/tasklite/backend/domain"
	appLogger "github.com/tasklite/backend/pkg/logger"
	"github.com/tasklite/backend/repository"
	"github.com/tasklite/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	cache  usecase.ListCache
	logger *zap.Logger
}

// New wires the task use case. The cache may be nil, in which case every
// List goes to the repository.
func New(tasks repository.TaskRepository, cache usecase.ListCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		cache:  cache,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if uc.cache != nil {
		tasks, hit, err := uc.cache.GetList(ctx, filter)
		if err != nil {
			appLogger.WithRequestID(ctx, uc.logger).Warn("list cache read failed", zap.Error(err))
		} else if hit {
			return tasks, nil
		}
	}

	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetList(ctx, filter, tasks); err != nil {
			uc.logger.Warn("list cache write failed", zap.Error(err))
		}
	}
	return tasks, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.dropListCache(ctx)
	return created, nil
}

// UpdateTask applies a partial update to one task. A missing id surfaces as
// domain.ErrTaskNotFound.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(task); err != nil {
		return nil, err
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	uc.dropListCache(ctx)
	return task, nil
}

// DeleteTask removes a task. Deleting an id that no longer exists is not an
// error: the caller's intent is already satisfied.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Debug("delete of missing task ignored", zap.String("task_id", id))
			return nil
		}
		return err
	}
	uc.dropListCache(ctx)
	return nil
}

func (uc *UseCase) dropListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		appLogger.WithRequestID(ctx, uc.logger).Warn("list cache invalidation failed", zap.Error(err))
	}
}
