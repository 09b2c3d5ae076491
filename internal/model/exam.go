package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamSession groups the exams of one grading window, e.g. "Term 1 2026".
type ExamSession struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	AcademicYear string    `json:"academicYear"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Exam is one examination within a session.
type Exam struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"sessionId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExamSubject is one subject's examination within an exam, carrying its
// own max score and optional weight.
type ExamSubject struct {
	ID          uuid.UUID `json:"id"`
	ExamID      uuid.UUID `json:"examId"`
	SubjectName string    `json:"subjectName"`
	MaxScore    float64   `json:"maxScore"`
	Weight      *float64  `json:"weight"`
	ExamDate    time.Time `json:"examDate"`
	CreatedAt   time.Time `json:"createdAt"`

	// Filled by joined reads for report-card assembly.
	ExamTitle string `json:"examTitle,omitempty"`
}

// StudentMark is a student's result for one exam subject. A nil Score and
// a missing row both mean "not yet graded" and are treated identically by
// the aggregator.
type StudentMark struct {
	ID            uuid.UUID `json:"id"`
	ExamSubjectID uuid.UUID `json:"examSubjectId"`
	StudentID     uuid.UUID `json:"studentId"`
	Score         *float64  `json:"score"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
