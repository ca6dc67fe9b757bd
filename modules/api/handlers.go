package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/tasklist-service/domain/task"
	"github.com/example/tasklist-service/modules/task"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	// Health check endpoint
	app.Get("/health", m.healthHandler)

	// API v1 routes
	api := app.Group("/api/v1")

	api.Get("/tasks/:id", m.getTask)

	users := api.Group("/users")
	users.Post("/", m.createUser)
	users.Get("/:userId", m.getUser)
	users.Get("/:userId/activity", m.listActivity)

	tasks := users.Group("/:userId/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
	tasks.Post("/:id/complete", m.completeTask)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"addr":   m.addr,
		},
	})
}

// createUser handles POST /api/v1/users.
func (m *APIModule) createUser(c *fiber.Ctx) error {
	summary, err := m.users.CreateUser(c.Context())
	if err != nil {
		return m.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// getUser handles GET /api/v1/users/:userId.
func (m *APIModule) getUser(c *fiber.Ctx) error {
	summary, err := m.users.GetUser(c.Context(), c.Params("userId"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(summary)
}

// listActivity handles GET /api/v1/users/:userId/activity.
// An unknown user is a 404 rather than an empty log.
func (m *APIModule) listActivity(c *fiber.Ctx) error {
	userID := c.Params("userId")
	valid, err := m.users.ValidateUser(c.Context(), userID)
	if err != nil {
		return m.writeError(c, err)
	}
	if !valid {
		return m.writeError(c, domain.UserNotFound(userID))
	}

	activities, total, err := m.activity.ListActivity(c.Context(), userID, c.QueryInt("limit", 0))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(ListActivityResponse{Activities: activities, Total: total})
}

// getTask handles GET /api/v1/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	t, err := m.tasks.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(t)
}

// listTasks handles GET /api/v1/users/:userId/tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	tasks, err := m.tasks.ListTasks(c.Context(), c.Params("userId"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(ListTasksResponse{Tasks: tasks, Total: len(tasks)})
}

// createTask handles POST /api/v1/users/:userId/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	in, err := parseTaskRequest(c)
	if err != nil {
		return m.writeError(c, err)
	}

	t, err := m.tasks.CreateTask(c.Context(), c.Params("userId"), in)
	if err != nil {
		return m.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(CreateTaskResponse{
		Message: task.MsgTaskCreated,
		Task:    t,
	})
}

// updateTask handles PUT /api/v1/users/:userId/tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	in, err := parseTaskRequest(c)
	if err != nil {
		return m.writeError(c, err)
	}

	if err := m.tasks.UpdateTask(c.Context(), c.Params("userId"), c.Params("id"), in); err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(MessageResponse{Message: task.MsgTaskUpdated})
}

// deleteTask handles DELETE /api/v1/users/:userId/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	if err := m.tasks.DeleteTask(c.Context(), c.Params("userId"), c.Params("id")); err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(MessageResponse{Message: task.MsgTaskDeleted})
}

// completeTask handles POST /api/v1/users/:userId/tasks/:id/complete.
func (m *APIModule) completeTask(c *fiber.Ctx) error {
	if err := m.tasks.CompleteTask(c.Context(), c.Params("userId"), c.Params("id")); err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(MessageResponse{Message: task.MsgTaskCompleted})
}

func parseTaskRequest(c *fiber.Ctx) (domain.Input, error) {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.Input{}, &domain.InvalidRequestError{Field: "body", Reason: "is not valid JSON"}
	}
	if strings.TrimSpace(req.Name) == "" {
		return domain.Input{}, &domain.InvalidRequestError{Field: "name", Reason: "is required"}
	}
	return domain.Input{Name: req.Name, Description: req.Description}, nil
}

// writeError maps domain errors to HTTP status codes.
func (m *APIModule) writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := domain.CodeStorage
	message := err.Error()

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
		code = domain.CodeNotFound
	case errors.Is(err, domain.ErrInvalidRequest):
		status = fiber.StatusBadRequest
		code = domain.CodeInvalidRequest
	case errors.Is(err, domain.ErrStorage):
	default:
		// transport failures between modules carry no domain code
		m.logger.Error("Service call failed", "path", c.Path(), "error", err)
		code = "server_error"
		message = "Internal Server Error"
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}
