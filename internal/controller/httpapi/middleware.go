package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/schoolgrid/timetable/internal/model"
)

const viewerHeader = "X-Viewer-Role"

// viewerMiddleware resolves the caller's role from the gateway-set header.
// An absent or unknown role falls back to student, the least privileged.
func viewerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := model.ParseRole(c.Get(viewerHeader))
		if !ok {
			role = model.RoleStudent
		}
		c.Locals("viewer", model.Viewer{Role: role})
		return c.Next()
	}
}

func viewer(c *fiber.Ctx) model.Viewer {
	if v, ok := c.Locals("viewer").(model.Viewer); ok {
		return v
	}
	return model.Viewer{Role: model.RoleStudent}
}

// requireTimetableManager gates the mutating timetable routes.
func requireTimetableManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !viewer(c).CanManageTimetable() {
			return respondError(c, fiber.StatusForbidden, "role may not manage the timetable")
		}
		return c.Next()
	}
}

// requestLogger logs one line per handled request.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}
