package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasklite/backend/api/transport"
	"github.com/tasklite/backend/domain"
	"github.com/tasklite/backend/pkg/httpcontext"
	"github.com/tasklite/backend/repository"
	taskUC "github.com/tasklite/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// GetTasks lists tasks, optionally filtered by exact status and priority.
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	filter, err := parseFilter(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// GetTask returns a single task by id.
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// CreateTask persists a new task. Title and due date are required; omitted
// optional fields get their documented defaults.
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskCreateRequest
	if err := decodeStrict(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err))
		return
	}

	task, err := req.Task()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, created)
}

// UpdateTask applies a partial update. Unknown body fields are rejected
// rather than silently merged.
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.TaskPatchRequest
	if err := decodeStrict(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err))
		return
	}

	patch, err := req.Patch()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, updated)
}

// DeleteTask removes a task. Deleting an unknown id still succeeds.
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.MessageResponse{Message: "task deleted"})
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "missing task id"))
		return "", false
	}
	return id, true
}

func parseFilter(ctx *fasthttp.RequestCtx) (repository.TaskFilter, error) {
	var filter repository.TaskFilter

	if raw := string(ctx.QueryArgs().Peek("status")); raw != "" {
		status := domain.Status(raw)
		if !status.Valid() {
			return filter, domain.NewError(domain.ErrCodeInvalid, "invalid status: "+raw)
		}
		filter.Status = status
	}
	if raw := string(ctx.QueryArgs().Peek("priority")); raw != "" {
		priority := domain.Priority(raw)
		if !priority.Valid() {
			return filter, domain.NewError(domain.ErrCodeInvalid, "invalid priority: "+raw)
		}
		filter.Priority = priority
	}
	return filter, nil
}

func decodeStrict(body []byte, dest interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}
