package model

import "github.com/google/uuid"

// ScoreEntry is one graded (exam, score, maxScore) tuple within a subject.
type ScoreEntry struct {
	ExamSubjectID uuid.UUID `json:"examSubjectId"`
	ExamTitle     string    `json:"examTitle"`
	Score         float64   `json:"score"`
	MaxScore      float64   `json:"maxScore"`
}

// SubjectReport aggregates a student's graded entries for one subject.
// Ungraded exam subjects contribute to neither TotalObtained nor TotalMax.
type SubjectReport struct {
	Subject       string       `json:"subject"`
	Entries       []ScoreEntry `json:"entries"`
	TotalObtained float64      `json:"totalObtained"`
	TotalMax      float64      `json:"totalMax"`
	Percentage    float64      `json:"percentage"`
	Grade         string       `json:"grade"`
}

// ReportCard is the derived, non-persisted aggregation of a student's marks
// across subjects for an exam session. It is recomputed on every view.
type ReportCard struct {
	StudentID     uuid.UUID       `json:"studentId"`
	SessionID     uuid.UUID       `json:"sessionId"`
	SessionName   string          `json:"sessionName"`
	Subjects      []SubjectReport `json:"subjects"`
	TotalObtained float64         `json:"totalObtained"`
	TotalMax      float64         `json:"totalMax"`
	Percentage    float64         `json:"percentage"`
	Grade         string          `json:"grade"`
}

// StudentSummary is one row of a per-exam class overview.
type StudentSummary struct {
	StudentID     uuid.UUID `json:"studentId"`
	TotalObtained float64   `json:"totalObtained"`
	TotalMax      float64   `json:"totalMax"`
	Percentage    float64   `json:"percentage"`
	Grade         string    `json:"grade"`
}

// GradeBand maps a minimum percentage to a letter grade. Bands are
// configuration, ordered from highest threshold to lowest.
type GradeBand struct {
	MinPercent float64 `json:"minPercent"`
	Grade      string  `json:"grade"`
}

// DefaultGradeBands is the standard ladder used when a school does not
// configure its own.
var DefaultGradeBands = []GradeBand{
	{90, "A+"},
	{80, "A"},
	{70, "B+"},
	{60, "B"},
	{50, "C"},
	{40, "D"},
	{0, "F"},
}

// GradeFor returns the letter grade for a percentage. It is total over the
// whole float range: anything below every threshold falls into the last band.
func GradeFor(percent float64, bands []GradeBand) string {
	if len(bands) == 0 {
		return ""
	}
	for _, b := range bands {
		if percent >= b.MinPercent {
			return b.Grade
		}
	}
	return bands[len(bands)-1].Grade
}
