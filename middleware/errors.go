package middleware

import (
	"errors"

	"github.com/biosecret/task-tracker/store"
	"github.com/biosecret/task-tracker/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// ErrorHandler chuyển lỗi do handler trả về thành response JSON:
// validation.Error -> 422, store.ErrNotFound -> 404, *fiber.Error -> mã của nó, còn lại -> 500
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	var ferr *fiber.Error

	switch {
	case errors.As(err, &verr):
		body := fiber.Map{"error": verr.Message}
		if len(verr.Details) > 0 {
			body["details"] = verr.Details
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &ferr):
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}

	log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
