package router

import (
	"github.com/biosecret/task-tracker/handlers"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", h.HandleHealthCheck)
	app.Get("/events", h.HandleEvents)

	users := app.Group("/users")
	users.Post("/", h.HandleCreateUser)
	users.Get("/:user_id/tasks", h.HandleListUserTasks)

	app.Get("/user/:user_id", h.HandleGetUser)

	tasks := app.Group("/tasks")
	tasks.Post("/", h.HandleCreateTask)
	tasks.Get("/:task_id", h.HandleGetTask)
	tasks.Put("/:task_id", h.HandleUpdateTaskStatus)
}
