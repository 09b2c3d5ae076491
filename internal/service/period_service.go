package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolgrid/timetable/internal/grid"
	"github.com/schoolgrid/timetable/internal/model"
	"github.com/schoolgrid/timetable/internal/timeslot"
)

// PeriodStore is the period persistence the lifecycle manager drives.
type PeriodStore interface {
	Create(ctx context.Context, period *model.Period) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Period, error)
	ListBySection(ctx context.Context, sectionID uuid.UUID) ([]*model.Period, error)
	ListByWeekday(ctx context.Context, weekday int) ([]*model.Period, error)
	Update(ctx context.Context, period *model.Period) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SectionStore resolves the references a period carries.
type SectionStore interface {
	GetSection(ctx context.Context, id uuid.UUID) (*model.ClassSection, error)
	GetClassSubject(ctx context.Context, id uuid.UUID) (*model.ClassSubject, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error)
}

// PeriodService mediates every create/update/delete of a period: input
// validation, conversion between the edit form's local "HH:MM" fields and
// the wire timestamps, conflict detection, and invalidation of the
// per-section period cache so the grid re-renders from fresh data.
type PeriodService struct {
	periods  PeriodStore
	sections SectionStore
	days     []string
	slots    timeslot.Slots
	validate *validator.Validate
	logger   *zap.Logger

	// Per-section period cache, invalidated-then-refetched after every
	// mutation, never patched in place.
	mu    sync.Mutex
	cache map[uuid.UUID][]*model.Period
}

func NewPeriodService(periods PeriodStore, sections SectionStore, days []string, slots timeslot.Slots, logger *zap.Logger) *PeriodService {
	return &PeriodService{
		periods:  periods,
		sections: sections,
		days:     days,
		slots:    slots,
		validate: validator.New(),
		logger:   logger,
		cache:    make(map[uuid.UUID][]*model.Period),
	}
}

// Create validates the input, checks conflicts and stores a new period for
// the section.
func (s *PeriodService) Create(ctx context.Context, sectionID uuid.UUID, in model.PeriodInput) (*model.Period, error) {
	startMin, endMin, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}

	section, err := s.sections.GetSection(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("get section: %w", err)
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	cs, err := s.resolveClassSubject(ctx, sectionID, in.ClassSubjectID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRoom(ctx, in.RoomID); err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, uuid.Nil, cs, in.RoomID, in.Weekday, startMin, endMin); err != nil {
		return nil, err
	}

	period, err := buildPeriod(sectionID, in)
	if err != nil {
		return nil, err
	}

	if err := s.periods.Create(ctx, period); err != nil {
		s.logger.Error("Failed to create period",
			zap.String("section_id", sectionID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("create period: %w", err)
	}

	s.invalidate(sectionID)
	s.logger.Info("Period created",
		zap.String("period_id", period.ID.String()),
		zap.String("section_id", sectionID.String()),
		zap.Int("weekday", in.Weekday),
		zap.String("start", in.StartTime),
		zap.String("end", in.EndTime))

	return period, nil
}

// Update validates the input and rewrites an existing period.
func (s *PeriodService) Update(ctx context.Context, id uuid.UUID, in model.PeriodInput) (*model.Period, error) {
	startMin, endMin, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get period: %w", err)
	}
	if existing == nil {
		return nil, ErrPeriodNotFound
	}

	cs, err := s.resolveClassSubject(ctx, existing.ClassSectionID, in.ClassSubjectID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRoom(ctx, in.RoomID); err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, id, cs, in.RoomID, in.Weekday, startMin, endMin); err != nil {
		return nil, err
	}

	period, err := buildPeriod(existing.ClassSectionID, in)
	if err != nil {
		return nil, err
	}
	period.ID = id

	if err := s.periods.Update(ctx, period); err != nil {
		s.logger.Error("Failed to update period",
			zap.String("period_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("update period: %w", err)
	}

	s.invalidate(existing.ClassSectionID)
	s.logger.Info("Period updated",
		zap.String("period_id", id.String()),
		zap.String("section_id", existing.ClassSectionID.String()))

	return period, nil
}

// Delete removes a period.
func (s *PeriodService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get period: %w", err)
	}
	if existing == nil {
		return ErrPeriodNotFound
	}

	if err := s.periods.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete period",
			zap.String("period_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("delete period: %w", err)
	}

	s.invalidate(existing.ClassSectionID)
	s.logger.Info("Period deleted",
		zap.String("period_id", id.String()),
		zap.String("section_id", existing.ClassSectionID.String()))

	return nil
}

// SectionPeriods returns a section's periods, from cache when the section
// has not mutated since the last read.
func (s *PeriodService) SectionPeriods(ctx context.Context, sectionID uuid.UUID) ([]*model.Period, error) {
	s.mu.Lock()
	cached, ok := s.cache[sectionID]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	periods, err := s.periods.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}

	s.mu.Lock()
	s.cache[sectionID] = periods
	s.mu.Unlock()

	return periods, nil
}

// SectionGrid places a section's periods into the configured weekly grid.
func (s *PeriodService) SectionGrid(ctx context.Context, sectionID uuid.UUID) (*grid.Grid, error) {
	periods, err := s.SectionPeriods(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	return grid.PlacePeriods(periods, s.days, s.slots), nil
}

// Days returns the configured grid day list.
func (s *PeriodService) Days() []string { return s.days }

// Slots returns the configured grid slot list.
func (s *PeriodService) Slots() timeslot.Slots { return s.slots }

func (s *PeriodService) invalidate(sectionID uuid.UUID) {
	s.mu.Lock()
	delete(s.cache, sectionID)
	s.mu.Unlock()
}

// validateInput runs the struct tags plus the cross-field time checks and
// returns both bounds in minutes-since-midnight.
func (s *PeriodService) validateInput(in model.PeriodInput) (startMin, endMin int, err error) {
	if err := s.validate.Struct(in); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			f := fields[0]
			return 0, 0, &ValidationError{Field: jsonField(f.Field()), Reason: "failed " + f.Tag() + " check"}
		}
		return 0, 0, &ValidationError{Field: "input", Reason: err.Error()}
	}

	startMin = timeslot.MinutesOfDay(in.StartTime)
	if startMin == timeslot.NoMatch {
		return 0, 0, &ValidationError{Field: "startTime", Reason: "must be HH:MM"}
	}
	endMin = timeslot.MinutesOfDay(in.EndTime)
	if endMin == timeslot.NoMatch {
		return 0, 0, &ValidationError{Field: "endTime", Reason: "must be HH:MM"}
	}
	if startMin >= endMin {
		return 0, 0, &ValidationError{Field: "endTime", Reason: "must be after startTime"}
	}

	return startMin, endMin, nil
}

func (s *PeriodService) resolveClassSubject(ctx context.Context, sectionID, classSubjectID uuid.UUID) (*model.ClassSubject, error) {
	cs, err := s.sections.GetClassSubject(ctx, classSubjectID)
	if err != nil {
		return nil, fmt.Errorf("get class subject: %w", err)
	}
	if cs == nil || cs.ClassSectionID != sectionID {
		return nil, &ValidationError{Field: "classSubjectId", Reason: "unknown class subject for this section"}
	}
	return cs, nil
}

func (s *PeriodService) resolveRoom(ctx context.Context, roomID *uuid.UUID) error {
	if roomID == nil {
		return nil
	}
	room, err := s.sections.GetRoom(ctx, *roomID)
	if err != nil {
		return fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return &ValidationError{Field: "roomId", Reason: "unknown room"}
	}
	return nil
}

// checkConflicts rejects a period whose teacher or room already has an
// overlapping period on the same weekday, in any section. Stored rows are
// compared through their local time-of-day, the interpretation the edit
// path writes.
func (s *PeriodService) checkConflicts(ctx context.Context, selfID uuid.UUID, cs *model.ClassSubject, roomID *uuid.UUID, weekday, startMin, endMin int) error {
	others, err := s.periods.ListByWeekday(ctx, weekday)
	if err != nil {
		return fmt.Errorf("list periods for conflict check: %w", err)
	}

	for _, other := range others {
		if other.ID == selfID {
			continue
		}
		otherStart, _ := timeslot.ResolveSlotMinutes(other.StartTime)
		otherEnd, _ := timeslot.ResolveSlotMinutes(other.EndTime)
		if startMin >= otherEnd || endMin <= otherStart {
			continue
		}
		if other.TeacherID == cs.TeacherID {
			return &ConflictError{
				Dimension: ConflictTeacher,
				With:      other.TeacherName + " / " + other.SubjectName,
				Weekday:   weekday,
			}
		}
		if roomID != nil && other.RoomID != nil && *roomID == *other.RoomID {
			with := ""
			if other.RoomName != nil {
				with = *other.RoomName
			}
			return &ConflictError{Dimension: ConflictRoom, With: with, Weekday: weekday}
		}
	}

	return nil
}

// buildPeriod converts the form's local "HH:MM" fields to wire timestamps
// on the shared reference date.
func buildPeriod(sectionID uuid.UUID, in model.PeriodInput) (*model.Period, error) {
	start, err := timeslot.Combine(in.StartTime)
	if err != nil {
		return nil, &ValidationError{Field: "startTime", Reason: err.Error()}
	}
	end, err := timeslot.Combine(in.EndTime)
	if err != nil {
		return nil, &ValidationError{Field: "endTime", Reason: err.Error()}
	}

	return &model.Period{
		ClassSectionID: sectionID,
		ClassSubjectID: in.ClassSubjectID,
		RoomID:         in.RoomID,
		Weekday:        in.Weekday,
		StartTime:      start,
		EndTime:        end,
	}, nil
}

// jsonField maps the Go field names validator reports to their wire names.
func jsonField(field string) string {
	switch field {
	case "ClassSubjectID":
		return "classSubjectId"
	case "RoomID":
		return "roomId"
	case "Weekday":
		return "weekday"
	case "StartTime":
		return "startTime"
	case "EndTime":
		return "endTime"
	}
	return field
}
