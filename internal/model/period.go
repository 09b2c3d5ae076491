package model

import (
	"time"

	"github.com/google/uuid"
)

// Period is one weekly recurring occurrence of a class subject for a
// section. Only the time-of-day component of StartTime/EndTime is
// meaningful; the date part is an arbitrary reference date and must not be
// compared across periods.
type Period struct {
	ID             uuid.UUID  `json:"id"`
	ClassSectionID uuid.UUID  `json:"classSectionId"`
	ClassSubjectID uuid.UUID  `json:"classSubjectId"`
	RoomID         *uuid.UUID `json:"roomId"`
	Weekday        int        `json:"weekday"` // 1 = Monday .. 7 = Sunday
	StartTime      time.Time  `json:"startTime"`
	EndTime        time.Time  `json:"endTime"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Denormalized display fields filled by joined reads.
	SubjectName string    `json:"subjectName,omitempty"`
	TeacherID   uuid.UUID `json:"teacherId,omitempty"`
	TeacherName string    `json:"teacherName,omitempty"`
	RoomName    *string   `json:"roomName,omitempty"`
}

// PeriodInput is the edit-form payload for creating or updating a period.
// Times are local 24-hour "HH:MM" strings; conversion to wire timestamps
// happens in the lifecycle service.
type PeriodInput struct {
	ClassSubjectID uuid.UUID  `json:"classSubjectId" validate:"required"`
	RoomID         *uuid.UUID `json:"roomId"`
	Weekday        int        `json:"weekday" validate:"required,min=1,max=7"`
	StartTime      string     `json:"startTime" validate:"required"`
	EndTime        string     `json:"endTime" validate:"required"`
}
