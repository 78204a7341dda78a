// Package board holds the client-side view state for the kanban dashboard:
// the fetched task snapshot, optimistic status transitions with rollback,
// filtering, search, sorting and derived statistics.
package board

import (
	"strings"
	"time"

	"github.com/tasklite/backend/api/transport"
	"github.com/tasklite/backend/domain"
	"github.com/tasklite/backend/repository"
)

// API is the slice of the task store client the board depends on.
type API interface {
	ListTasks(filter repository.TaskFilter) ([]domain.Task, error)
	CreateTask(req transport.TaskCreateRequest) (*domain.Task, error)
	UpdateTask(id string, patch transport.TaskPatchRequest) (*domain.Task, error)
	DeleteTask(id string) error
}

// Column is one status lane of the board.
type Column struct {
	Status domain.Status
	Tasks  []domain.Task
}

// Stats are derived from the current snapshot on demand, never persisted.
type Stats struct {
	Total      int
	ToDo       int
	InProgress int
	Done       int
	Overdue    int
}

// Board mirrors the server's task collection for one filter. The snapshot
// only holds confirmed state; Move applies a tentative transition that is
// either confirmed by the server response or rolled back.
type Board struct {
	api     API
	filter  repository.TaskFilter
	tasks   []domain.Task
	notices []string
	now     func() time.Time
}

// New builds an empty board; call Refresh to populate it.
func New(api API) *Board {
	return &Board{
		api: api,
		now: time.Now,
	}
}

// Refresh replaces the snapshot with the server's view for the active
// filter. This is the board's single re-sync point.
func (b *Board) Refresh() error {
	tasks, err := b.api.ListTasks(b.filter)
	if err != nil {
		b.notice("Failed to fetch tasks")
		return err
	}
	b.tasks = tasks
	return nil
}

// SetFilter changes the active filter and re-fetches. Filtering is
// server-side; the snapshot always reflects exactly one filter.
func (b *Board) SetFilter(filter repository.TaskFilter) error {
	b.filter = filter
	return b.Refresh()
}

// ClearFilter drops all filter constraints and re-fetches.
func (b *Board) ClearFilter() error {
	return b.SetFilter(repository.TaskFilter{})
}

// Filter returns the active filter.
func (b *Board) Filter() repository.TaskFilter {
	return b.filter
}

// Tasks returns a copy of the current snapshot.
func (b *Board) Tasks() []domain.Task {
	out := make([]domain.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Columns groups the snapshot by status in board order.
func (b *Board) Columns() []Column {
	columns := make([]Column, 0, len(domain.Statuses))
	for _, status := range domain.Statuses {
		column := Column{Status: status}
		for _, task := range b.tasks {
			if task.Status == status {
				column.Tasks = append(column.Tasks, task)
			}
		}
		columns = append(columns, column)
	}
	return columns
}

// Create persists a new task and prepends it to the snapshot when it
// matches the active filter.
func (b *Board) Create(req transport.TaskCreateRequest) (*domain.Task, error) {
	created, err := b.api.CreateTask(req)
	if err != nil {
		b.notice("Failed to create task")
		return nil, err
	}
	if b.matchesFilter(*created) {
		b.tasks = append([]domain.Task{*created}, b.tasks...)
	}
	return created, nil
}

// Move transitions a task to a new status column. The local state changes
// tentatively before the server call; on failure the previous snapshot is
// restored and a notice recorded. Dropping onto the same column is a no-op.
func (b *Board) Move(id string, status domain.Status) error {
	idx := b.index(id)
	if idx < 0 {
		return domain.ErrTaskNotFound
	}
	if b.tasks[idx].Status == status {
		return nil
	}

	confirmed := b.Tasks()
	b.tasks[idx].Status = status

	value := string(status)
	updated, err := b.api.UpdateTask(id, transport.TaskPatchRequest{Status: &value})
	if err != nil {
		b.tasks = confirmed
		b.notice("Failed to move task")
		return err
	}

	b.tasks[idx] = *updated
	return nil
}

// Update applies an arbitrary patch to a task, replacing the local copy
// with the server's view of the record.
func (b *Board) Update(id string, patch transport.TaskPatchRequest) (*domain.Task, error) {
	updated, err := b.api.UpdateTask(id, patch)
	if err != nil {
		b.notice("Failed to update task")
		return nil, err
	}
	if idx := b.index(id); idx >= 0 {
		b.tasks[idx] = *updated
	}
	return updated, nil
}

// Delete removes a task on the server and then locally. The snapshot is
// untouched when the server call fails.
func (b *Board) Delete(id string) error {
	if err := b.api.DeleteTask(id); err != nil {
		b.notice("Failed to delete task")
		return err
	}
	if idx := b.index(id); idx >= 0 {
		b.tasks = append(b.tasks[:idx], b.tasks[idx+1:]...)
	}
	return nil
}

// Search returns the snapshot entries whose title or description contains
// the query, case-insensitively. An empty query returns everything.
func (b *Board) Search(query string) []domain.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return b.Tasks()
	}

	var out []domain.Task
	for _, task := range b.tasks {
		if strings.Contains(strings.ToLower(task.Title), query) ||
			strings.Contains(strings.ToLower(task.Description), query) {
			out = append(out, task)
		}
	}
	return out
}

// Stats recomputes the derived counters from the current snapshot.
func (b *Board) Stats() Stats {
	now := b.now()
	stats := Stats{Total: len(b.tasks)}
	for i := range b.tasks {
		switch b.tasks[i].Status {
		case domain.StatusToDo:
			stats.ToDo++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusDone:
			stats.Done++
		}
		if b.tasks[i].Overdue(now) {
			stats.Overdue++
		}
	}
	return stats
}

// Notices drains the accumulated user-visible failure notices.
func (b *Board) Notices() []string {
	notices := b.notices
	b.notices = nil
	return notices
}

func (b *Board) notice(message string) {
	b.notices = append(b.notices, message)
}

func (b *Board) index(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) matchesFilter(task domain.Task) bool {
	if b.filter.Status != "" && task.Status != b.filter.Status {
		return false
	}
	if b.filter.Priority != "" && task.Priority != b.filter.Priority {
		return false
	}
	return true
}
