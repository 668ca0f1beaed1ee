package handlers

import (
	"github.com/biosecret/task-tracker/events"
	"github.com/biosecret/task-tracker/store"
	"github.com/biosecret/task-tracker/validation"
	"github.com/gofiber/fiber/v2"
)

// Handler giữ các phụ thuộc dùng chung của mọi route
type Handler struct {
	store    store.Store
	validate *validation.Validator
	broker   *events.Broker
}

func New(st store.Store, v *validation.Validator, b *events.Broker) *Handler {
	return &Handler{store: st, validate: v, broker: b}
}

// parseBody đọc body vào dst rồi validate; mọi lỗi đều là lỗi 422
func (h *Handler) parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return validation.Malformed(err)
	}
	return h.validate.Struct(dst)
}

// paramID đọc một path param kiểu số nguyên
func paramID(c *fiber.Ctx, key string) (int64, error) {
	id, err := c.ParamsInt(key)
	if err != nil {
		return 0, validation.Malformed(err)
	}
	return int64(id), nil
}

// HandleHealthCheck godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
		"store":  h.store.Name(),
	})
}
