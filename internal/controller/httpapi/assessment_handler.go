package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolgrid/timetable/internal/model"
	"github.com/schoolgrid/timetable/internal/service"
)

// AssessmentHandler serves the exam and report-card routes.
type AssessmentHandler struct {
	assessments *service.AssessmentService
	logger      *zap.Logger
}

func NewAssessmentHandler(assessments *service.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments, logger: logger}
}

// ExamSubjects answers GET /exam-subjects/exam/:examID.
func (h *AssessmentHandler) ExamSubjects(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("examID"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "examID must be a UUID")
	}

	subjects, err := h.assessments.ExamSubjects(c.Context(), examID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if subjects == nil {
		subjects = []*model.ExamSubject{}
	}
	return respondOK(c, subjects)
}

// Marks answers GET /student-marks/exam-subject/:id.
func (h *AssessmentHandler) Marks(c *fiber.Ctx) error {
	examSubjectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id must be a UUID")
	}

	marks, err := h.assessments.Marks(c.Context(), examSubjectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if marks == nil {
		marks = []*model.StudentMark{}
	}
	return respondOK(c, marks)
}

// ReportCard answers GET /report-cards/session/:sessionID/student/:studentID.
func (h *AssessmentHandler) ReportCard(c *fiber.Ctx) error {
	if !viewer(c).CanViewReportCards() {
		return respondError(c, fiber.StatusForbidden, "role may not view report cards")
	}

	sessionID, err := uuid.Parse(c.Params("sessionID"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "sessionID must be a UUID")
	}
	studentID, err := uuid.Parse(c.Params("studentID"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "studentID must be a UUID")
	}

	card, err := h.assessments.ReportCard(c.Context(), sessionID, studentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, card)
}

// ClassSummary answers GET /report-cards/exam/:examID/summary.
func (h *AssessmentHandler) ClassSummary(c *fiber.Ctx) error {
	if !viewer(c).CanViewClassSummary() {
		return respondError(c, fiber.StatusForbidden, "role may not view the class summary")
	}

	examID, err := uuid.Parse(c.Params("examID"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "examID must be a UUID")
	}

	summaries, err := h.assessments.ClassSummary(c.Context(), examID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, summaries)
}
