package handlers

import (
	"github.com/biosecret/task-tracker/models"
	"github.com/gofiber/fiber/v2"
)

// HandleCreateUser godoc
// @Summary Tạo người dùng
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "username (3-20 ký tự) và email"
// @Success 200 {object} models.User
// @Failure 422 {object} map[string]any
// @Router /users/ [post]
func (h *Handler) HandleCreateUser(c *fiber.Ctx) error {
	var in models.UserCreate
	if err := h.parseBody(c, &in); err != nil {
		return err
	}

	user, err := h.store.CreateUser(c.UserContext(), in.User())
	if err != nil {
		return err
	}
	h.broker.UserCreated(user)

	return c.Status(fiber.StatusOK).JSON(user)
}

// HandleGetUser godoc
// @Summary Lấy người dùng theo ID
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string
// @Router /user/{user_id} [get]
func (h *Handler) HandleGetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	user, err := h.store.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// HandleListUserTasks godoc
// @Summary Liệt kê task của một người dùng
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} models.Task
// @Failure 404 {object} map[string]string
// @Router /users/{user_id}/tasks [get]
func (h *Handler) HandleListUserTasks(c *fiber.Ctx) error {
	id, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	if _, err := h.store.GetUser(c.UserContext(), id); err != nil {
		return err
	}

	tasks, err := h.store.ListTasksByUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}
