// Package memory provides an in-memory TaskRepository. It is the reference
// implementation of the repository contract and backs tests that should not
// require a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tasklite/backend/domain"
	"github.com/tasklite/backend/repository"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	seq   int64
	order map[string]int64
}

// NewTaskRepository returns an empty in-memory repository.
func NewTaskRepository() repository.TaskRepository {
	return &taskRepository{
		tasks: make(map[string]domain.Task),
		order: make(map[string]int64),
	}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		tasks = append(tasks, task)
	}

	// Newest first; insertion sequence breaks created_at ties deterministically.
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return r.order[tasks[i].ID] > r.order[tasks[j].ID]
	})
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	r.seq++
	r.order[task.ID] = r.seq
	r.tasks[task.ID] = *task

	created := *task
	return &created, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}

	task.CreatedAt = current.CreatedAt
	task.UpdatedAt = time.Now().UTC()
	if !task.UpdatedAt.After(current.UpdatedAt) {
		task.UpdatedAt = current.UpdatedAt.Add(time.Nanosecond)
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	delete(r.order, id)
	return nil
}
