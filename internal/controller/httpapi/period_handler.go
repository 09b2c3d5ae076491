package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolgrid/timetable/internal/grid"
	"github.com/schoolgrid/timetable/internal/model"
	"github.com/schoolgrid/timetable/internal/service"
)

// PeriodHandler serves the timetable routes.
type PeriodHandler struct {
	periods *service.PeriodService
	logger  *zap.Logger
}

func NewPeriodHandler(periods *service.PeriodService, logger *zap.Logger) *PeriodHandler {
	return &PeriodHandler{periods: periods, logger: logger}
}

// createPeriodRequest is the POST body: the owning section plus the edit
// form's fields.
type createPeriodRequest struct {
	ClassSectionID uuid.UUID `json:"classSectionId"`
	model.PeriodInput
}

// List answers GET /timetable-periods?classSectionId=...
func (h *PeriodHandler) List(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Query("classSectionId"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "classSectionId must be a UUID")
	}

	periods, err := h.periods.SectionPeriods(c.Context(), sectionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if periods == nil {
		periods = []*model.Period{}
	}
	return respondOK(c, periods)
}

// Create answers POST /timetable-periods.
func (h *PeriodHandler) Create(c *fiber.Ctx) error {
	var req createPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if req.ClassSectionID == uuid.Nil {
		return respondError(c, fiber.StatusUnprocessableEntity, "classSectionId: required")
	}

	period, err := h.periods.Create(c.Context(), req.ClassSectionID, req.PeriodInput)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondCreated(c, period)
}

// Update answers PUT /timetable-periods/:id.
func (h *PeriodHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id must be a UUID")
	}

	var in model.PeriodInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "malformed JSON body")
	}

	period, err := h.periods.Update(c.Context(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, period)
}

// Delete answers DELETE /timetable-periods/:id.
func (h *PeriodHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id must be a UUID")
	}

	if err := h.periods.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return respondMessage(c, "period deleted")
}

// Grid answers GET /timetable-grid/:sectionID with the placed weekly grid.
func (h *PeriodHandler) Grid(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("sectionID"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "sectionID must be a UUID")
	}

	g, err := h.periods.SectionGrid(c.Context(), sectionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, g)
}

// GridImage answers GET /timetable-grid/:sectionID/image with a rendered
// PNG of the week.
func (h *PeriodHandler) GridImage(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("sectionID"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "sectionID must be a UUID")
	}

	g, err := h.periods.SectionGrid(c.Context(), sectionID)
	if err != nil {
		return respondServiceError(c, err)
	}

	png, err := grid.RenderPNG(g)
	if err != nil {
		h.logger.Error("Failed to render grid image",
			zap.String("section_id", sectionID.String()),
			zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
