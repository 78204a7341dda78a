package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/tasklite/backend/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New builds the route table. The middleware wraps every task route; health
// stays unwrapped so probes see the raw status.
func New(handlers Handlers, middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	if middleware == nil {
		middleware = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}

	r.GET("/tasks", middleware(handlers.Task.GetTasks))
	r.POST("/tasks", middleware(handlers.Task.CreateTask))
	r.GET("/tasks/{id}", middleware(handlers.Task.GetTask))
	r.PUT("/tasks/{id}", middleware(handlers.Task.UpdateTask))
	r.DELETE("/tasks/{id}", middleware(handlers.Task.DeleteTask))

	return r
}
