package client

import (
	"net"
	"testing"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	apiHandler "github.com/tasklite/backend/api/handler"
	"github.com/tasklite/backend/api/transport"
	"github.com/tasklite/backend/domain"
	"github.com/tasklite/backend/internal/router"
	"github.com/tasklite/backend/repository"
	"github.com/tasklite/backend/repository/memory"
	taskUC "github.com/tasklite/backend/usecase/task"
)

// startServer runs the real route table on an in-memory listener and
// returns a client wired to it.
func startServer(t *testing.T) *Client {
	t.Helper()

	uc := taskUC.New(memory.NewTaskRepository(), nil, nil)
	handlers := router.Handlers{
		Task: apiHandler.NewTaskHandler(uc, nil, nil),
	}
	r := router.New(handlers, nil)

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: r.Handler}
	go func() {
		_ = server.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = ln.Close()
	})

	httpClient := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}
	return New("http://tasklite", WithHTTPClient(httpClient))
}

func TestClientRoundTrip(t *testing.T) {
	c := startServer(t)

	created, err := c.CreateTask(transport.TaskCreateRequest{
		Title:   "Write spec",
		DueDate: "2025-01-10",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.Status != domain.StatusToDo || created.Priority != domain.PriorityMedium {
		t.Errorf("create defaults not applied: %+v", created)
	}

	fetched, err := c.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if fetched.Title != "Write spec" {
		t.Errorf("fetched = %+v", fetched)
	}

	moved, err := c.MarkInProgress(created.ID)
	if err != nil {
		t.Fatalf("MarkInProgress: %v", err)
	}
	if moved.Status != domain.StatusInProgress || moved.Title != created.Title {
		t.Errorf("moved = %+v", moved)
	}

	inProgress, err := c.ListTasks(repository.TaskFilter{Status: domain.StatusInProgress})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(inProgress) != 1 || inProgress[0].ID != created.ID {
		t.Errorf("filtered list = %+v", inProgress)
	}
	done, err := c.ListTasks(repository.TaskFilter{Status: domain.StatusDone})
	if err != nil {
		t.Fatalf("ListTasks(Done): %v", err)
	}
	if len(done) != 0 {
		t.Errorf("Done filter must exclude the task, got %+v", done)
	}

	if err := c.DeleteTask(created.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := c.DeleteTask(created.ID); err != nil {
		t.Fatalf("repeated DeleteTask must succeed: %v", err)
	}

	all, err := c.ListTasks(repository.TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("deleted task still listed: %+v", all)
	}
}

func TestClientErrorMapping(t *testing.T) {
	c := startServer(t)

	if _, err := c.CreateTask(transport.TaskCreateRequest{Title: "no due date"}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("validation failure: err = %v, want INVALID", err)
	}

	if _, err := c.GetTask("ghost"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("missing task: err = %v, want NOT_FOUND", err)
	}

	if _, err := c.MarkDone("ghost"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("update of missing task: err = %v, want NOT_FOUND", err)
	}
}

func TestClientChangePriority(t *testing.T) {
	c := startServer(t)

	created, err := c.CreateTask(transport.TaskCreateRequest{Title: "x", DueDate: "2025-01-10"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	updated, err := c.ChangePriority(created.ID, domain.PriorityHigh)
	if err != nil {
		t.Fatalf("ChangePriority: %v", err)
	}
	if updated.Priority != domain.PriorityHigh {
		t.Errorf("priority = %q, want High", updated.Priority)
	}
	if updated.Status != created.Status {
		t.Error("priority change must not touch status")
	}
}
