package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/schoolgrid/timetable/internal/service"
)

// envelope is the wire shape every JSON endpoint answers with.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Data: data})
}

func respondCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(envelope{Success: true, Data: data})
}

func respondMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Message: message})
}

func respondError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(envelope{Success: false, Message: message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unexpected errors keep their detail out of the response body.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case service.IsValidation(err):
		return respondError(c, fiber.StatusUnprocessableEntity, err.Error())
	case service.IsConflict(err):
		return respondError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPeriodNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrExamNotFound):
		return respondError(c, fiber.StatusNotFound, err.Error())
	default:
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}
}
