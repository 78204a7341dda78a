package board

import (
	"testing"
	"time"

	"github.com/tasklite/backend/api/transport"
	"github.com/tasklite/backend/domain"
	"github.com/tasklite/backend/repository"
)

// stubAPI serves canned tasks and can be told to fail the next update.
type stubAPI struct {
	tasks      map[string]domain.Task
	order      []string
	failUpdate bool
	failDelete bool
	updates    int
}

func newStubAPI(tasks ...domain.Task) *stubAPI {
	s := &stubAPI{tasks: make(map[string]domain.Task)}
	for _, task := range tasks {
		s.tasks[task.ID] = task
		s.order = append(s.order, task.ID)
	}
	return s
}

func (s *stubAPI) ListTasks(filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, id := range s.order {
		task := s.tasks[id]
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (s *stubAPI) CreateTask(req transport.TaskCreateRequest) (*domain.Task, error) {
	due, err := transport.ParseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	task, err := domain.NewTask(req.Title, req.Description, domain.Status(req.Status), domain.Priority(req.Priority), due)
	if err != nil {
		return nil, err
	}
	task.ID = "task-" + req.Title
	s.tasks[task.ID] = *task
	s.order = append(s.order, task.ID)
	return task, nil
}

func (s *stubAPI) UpdateTask(id string, patch transport.TaskPatchRequest) (*domain.Task, error) {
	s.updates++
	if s.failUpdate {
		return nil, domain.NewError(domain.ErrCodeInternal, "store unavailable")
	}
	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	p, err := patch.Patch()
	if err != nil {
		return nil, err
	}
	if err := p.Apply(&task); err != nil {
		return nil, err
	}
	task.UpdatedAt = task.UpdatedAt.Add(time.Second)
	s.tasks[id] = task
	return &task, nil
}

func (s *stubAPI) DeleteTask(id string) error {
	if s.failDelete {
		return domain.NewError(domain.ErrCodeInternal, "store unavailable")
	}
	delete(s.tasks, id)
	return nil
}

func seedTask(id, title string, status domain.Status, priority domain.Priority, due time.Time) domain.Task {
	return domain.Task{
		ID:        id,
		Title:     title,
		Status:    status,
		Priority:  priority,
		DueDate:   due,
		CreatedAt: due.Add(-72 * time.Hour),
		UpdatedAt: due.Add(-72 * time.Hour),
	}
}

func newTestBoard(t *testing.T, api *stubAPI) *Board {
	t.Helper()
	b := New(api)
	if err := b.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return b
}

func TestMoveConfirmed(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	api := newStubAPI(seedTask("a", "alpha", domain.StatusToDo, domain.PriorityMedium, due))
	b := newTestBoard(t, api)

	if err := b.Move("a", domain.StatusInProgress); err != nil {
		t.Fatalf("Move: %v", err)
	}

	tasks := b.Tasks()
	if tasks[0].Status != domain.StatusInProgress {
		t.Errorf("status = %q, want In Progress", tasks[0].Status)
	}
	if notices := b.Notices(); len(notices) != 0 {
		t.Errorf("successful move must not record a notice, got %v", notices)
	}
}

func TestMoveRolledBack(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	api := newStubAPI(
		seedTask("a", "alpha", domain.StatusToDo, domain.PriorityMedium, due),
		seedTask("b", "beta", domain.StatusDone, domain.PriorityLow, due),
	)
	b := newTestBoard(t, api)
	before := b.Tasks()

	api.failUpdate = true
	if err := b.Move("a", domain.StatusDone); err == nil {
		t.Fatal("Move must surface the server failure")
	}

	after := b.Tasks()
	if len(after) != len(before) {
		t.Fatalf("snapshot size changed on rollback")
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Status != before[i].Status {
			t.Errorf("task %q not restored: %+v", before[i].ID, after[i])
		}
	}

	notices := b.Notices()
	if len(notices) != 1 {
		t.Fatalf("want exactly one notice, got %v", notices)
	}
	if len(b.Notices()) != 0 {
		t.Error("Notices must drain")
	}
}

func TestMoveSameColumnIsNoOp(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	api := newStubAPI(seedTask("a", "alpha", domain.StatusToDo, domain.PriorityMedium, due))
	b := newTestBoard(t, api)

	if err := b.Move("a", domain.StatusToDo); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if api.updates != 0 {
		t.Error("same-column drop must not call the server")
	}
}

func TestMoveUnknownTask(t *testing.T) {
	b := newTestBoard(t, newStubAPI())
	if err := b.Move("ghost", domain.StatusDone); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestColumnsGrouping(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	api := newStubAPI(
		seedTask("a", "alpha", domain.StatusToDo, domain.PriorityMedium, due),
		seedTask("b", "beta", domain.StatusDone, domain.PriorityLow, due),
		seedTask("c", "gamma", domain.StatusToDo, domain.PriorityHigh, due),
	)
	b := newTestBoard(t, api)

	columns := b.Columns()
	if len(columns) != 3 {
		t.Fatalf("len(columns) = %d, want 3", len(columns))
	}
	if columns[0].Status != domain.StatusToDo || len(columns[0].Tasks) != 2 {
		t.Errorf("To Do column = %+v", columns[0])
	}
	if columns[1].Status != domain.StatusInProgress || len(columns[1].Tasks) != 0 {
		t.Errorf("In Progress column = %+v", columns[1])
	}
	if columns[2].Status != domain.StatusDone || len(columns[2].Tasks) != 1 {
		t.Errorf("Done column = %+v", columns[2])
	}
}

func TestStatsWithOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	api := newStubAPI(
		seedTask("a", "late", domain.StatusToDo, domain.PriorityHigh, past),
		seedTask("b", "late but done", domain.StatusDone, domain.PriorityHigh, past),
		seedTask("c", "on track", domain.StatusInProgress, domain.PriorityLow, future),
	)
	b := newTestBoard(t, api)
	b.now = func() time.Time { return now }

	stats := b.Stats()
	if stats.Total != 3 || stats.ToDo != 1 || stats.InProgress != 1 || stats.Done != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Overdue != 1 {
		t.Errorf("overdue = %d, want 1 (done tasks are never overdue)", stats.Overdue)
	}
}

func TestSearch(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	a := seedTask("a", "Write the report", domain.StatusToDo, domain.PriorityMedium, due)
	b := seedTask("b", "Groceries", domain.StatusToDo, domain.PriorityLow, due)
	b.Description = "milk, bread, REPORT cards"
	api := newStubAPI(a, b)
	brd := newTestBoard(t, api)

	hits := brd.Search("report")
	if len(hits) != 2 {
		t.Fatalf("search matched %d tasks, want 2 (title and description, case-insensitive)", len(hits))
	}
	if len(brd.Search("")) != 2 {
		t.Error("empty query must return the full snapshot")
	}
	if len(brd.Search("zzz")) != 0 {
		t.Error("non-matching query must return nothing")
	}
}

func TestDeleteFailureKeepsSnapshot(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	api := newStubAPI(seedTask("a", "alpha", domain.StatusToDo, domain.PriorityMedium, due))
	b := newTestBoard(t, api)

	api.failDelete = true
	if err := b.Delete("a"); err == nil {
		t.Fatal("Delete must surface the failure")
	}
	if len(b.Tasks()) != 1 {
		t.Error("failed delete must leave the snapshot untouched")
	}

	api.failDelete = false
	if err := b.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(b.Tasks()) != 0 {
		t.Error("deleted task must leave the snapshot")
	}
}

func TestCreatePrependsWhenMatchingFilter(t *testing.T) {
	b := newTestBoard(t, newStubAPI())

	created, err := b.Create(transport.TaskCreateRequest{Title: "new", DueDate: "2025-07-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(b.Tasks()) != 1 || b.Tasks()[0].ID != created.ID {
		t.Error("created task must appear at the top of the snapshot")
	}

	if err := b.SetFilter(repository.TaskFilter{Status: domain.StatusDone}); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if _, err := b.Create(transport.TaskCreateRequest{Title: "todo task", DueDate: "2025-07-01"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(b.Tasks()) != 0 {
		t.Error("task outside the active filter must not enter the snapshot")
	}
}
