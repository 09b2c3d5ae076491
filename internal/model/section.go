package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassSection is a specific grade+section for an academic year,
// e.g. "Grade 5 - B".
type ClassSection struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	AcademicYear string    `json:"academicYear"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ClassSubject is the (subject, teacher) pairing taught to a section.
type ClassSubject struct {
	ID             uuid.UUID `json:"id"`
	ClassSectionID uuid.UUID `json:"classSectionId"`
	SubjectName    string    `json:"subjectName"`
	TeacherID      uuid.UUID `json:"teacherId"`
	TeacherName    string    `json:"teacherName"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Room is a physical room a period can be assigned to.
type Room struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
}
