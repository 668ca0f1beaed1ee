package handlers

import (
	"github.com/biosecret/task-tracker/models"
	"github.com/gofiber/fiber/v2"
)

// HandleCreateTask godoc
// @Summary Tạo task
// @Description due_date không được ở trong quá khứ. status và user_id không được kiểm tra.
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body models.TaskCreate true "Task"
// @Success 200 {object} models.Task
// @Failure 422 {object} map[string]any
// @Router /tasks/ [post]
func (h *Handler) HandleCreateTask(c *fiber.Ctx) error {
	var in models.TaskCreate
	if err := h.parseBody(c, &in); err != nil {
		return err
	}

	task, err := h.store.CreateTask(c.UserContext(), in.Task())
	if err != nil {
		return err
	}
	h.broker.TaskCreated(task)

	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleGetTask godoc
// @Summary Lấy task theo ID
// @Tags tasks
// @Produce json
// @Param task_id path int true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} map[string]string
// @Router /tasks/{task_id} [get]
func (h *Handler) HandleGetTask(c *fiber.Ctx) error {
	id, err := paramID(c, "task_id")
	if err != nil {
		return err
	}

	task, err := h.store.GetTask(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleUpdateTaskStatus godoc
// @Summary Cập nhật trạng thái task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path int true "Task ID"
// @Param status body models.TaskStatusUpdate true "pending, in_progress hoặc completed"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{task_id} [put]
func (h *Handler) HandleUpdateTaskStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "task_id")
	if err != nil {
		return err
	}

	var in models.TaskStatusUpdate
	if err := h.parseBody(c, &in); err != nil {
		return err
	}

	// Task không tồn tại trả 404 trước khi xét tới status
	if _, err := h.store.GetTask(c.UserContext(), id); err != nil {
		return err
	}
	if !models.IsValidStatus(*in.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	task, err := h.store.UpdateTaskStatus(c.UserContext(), id, *in.Status)
	if err != nil {
		return err
	}
	h.broker.TaskStatusChanged(task)

	return c.Status(fiber.StatusOK).JSON(task)
}
