package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/schoolgrid/timetable/internal/service"
)

// NewApp wires the routes onto a fresh fiber application.
func NewApp(periods *service.PeriodService, assessments *service.AssessmentService, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(requestLogger(logger))
	app.Use(viewerMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return respondMessage(c, "ok")
	})

	periodHandler := NewPeriodHandler(periods, logger)
	assessmentHandler := NewAssessmentHandler(assessments, logger)

	app.Get("/timetable-periods", periodHandler.List)
	app.Post("/timetable-periods", requireTimetableManager(), periodHandler.Create)
	app.Put("/timetable-periods/:id", requireTimetableManager(), periodHandler.Update)
	app.Delete("/timetable-periods/:id", requireTimetableManager(), periodHandler.Delete)

	app.Get("/timetable-grid/:sectionID", periodHandler.Grid)
	app.Get("/timetable-grid/:sectionID/image", periodHandler.GridImage)

	app.Get("/exam-subjects/exam/:examID", assessmentHandler.ExamSubjects)
	app.Get("/student-marks/exam-subject/:id", assessmentHandler.Marks)
	app.Get("/report-cards/session/:sessionID/student/:studentID", assessmentHandler.ReportCard)
	app.Get("/report-cards/exam/:examID/summary", assessmentHandler.ClassSummary)

	return app
}
