// Package client is a typed Go consumer of the task store API. It speaks the
// same wire format the handlers produce and surfaces failures as domain
// errors so callers can branch on error codes instead of HTTP status text.
package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/tasklite/backend/api/transport"
	"github.com/tasklite/backend/domain"
	"github.com/tasklite/backend/repository"
)

const defaultTimeout = 10 * time.Second

// Client talks to one task store endpoint. Requests are not retried; a
// failed call surfaces exactly once.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
}

type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient substitutes the underlying fasthttp client, e.g. to dial
// an in-memory listener in tests.
func WithHTTPClient(httpClient *fasthttp.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// New creates a client for the API at baseURL (scheme and host, no path).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &fasthttp.Client{},
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTasks fetches tasks matching the filter, newest first.
func (c *Client) ListTasks(filter repository.TaskFilter) ([]domain.Task, error) {
	uri := c.baseURL + "/tasks"
	if qs := filterQuery(filter); qs != "" {
		uri += "?" + qs
	}

	var tasks []domain.Task
	if err := c.do(fasthttp.MethodGet, uri, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(id string) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(fasthttp.MethodGet, c.baseURL+"/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask persists a new task and returns it with store-assigned id and
// timestamps.
func (c *Client) CreateTask(req transport.TaskCreateRequest) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(fasthttp.MethodPost, c.baseURL+"/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and returns the full updated task.
func (c *Client) UpdateTask(id string, patch transport.TaskPatchRequest) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(fasthttp.MethodPut, c.baseURL+"/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task. Unknown ids succeed.
func (c *Client) DeleteTask(id string) error {
	var ack transport.MessageResponse
	return c.do(fasthttp.MethodDelete, c.baseURL+"/tasks/"+id, nil, &ack)
}

// Convenience transitions mirroring the management view's actions.

func (c *Client) MarkDone(id string) (*domain.Task, error) {
	return c.setStatus(id, domain.StatusDone)
}

func (c *Client) MarkInProgress(id string) (*domain.Task, error) {
	return c.setStatus(id, domain.StatusInProgress)
}

func (c *Client) MarkToDo(id string) (*domain.Task, error) {
	return c.setStatus(id, domain.StatusToDo)
}

func (c *Client) ChangePriority(id string, priority domain.Priority) (*domain.Task, error) {
	value := string(priority)
	return c.UpdateTask(id, transport.TaskPatchRequest{Priority: &value})
}

func (c *Client) setStatus(id string, status domain.Status) (*domain.Task, error) {
	value := string(status)
	return c.UpdateTask(id, transport.TaskPatchRequest{Status: &value})
}

func (c *Client) do(method, uri string, body interface{}, dest interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "encode request", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "request failed", err)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return decodeError(status, resp.Body())
	}

	if dest == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "decode response", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var errResp transport.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		code := domain.ErrorCode(errResp.Code)
		if code == "" {
			code = domain.ErrCodeInternal
		}
		return domain.NewError(code, errResp.Error)
	}
	return domain.NewError(domain.ErrCodeInternal, fmt.Sprintf("unexpected status %d", status))
}

func filterQuery(filter repository.TaskFilter) string {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	if filter.Status != "" {
		args.Set("status", string(filter.Status))
	}
	if filter.Priority != "" {
		args.Set("priority", string(filter.Priority))
	}
	return args.String()
}
