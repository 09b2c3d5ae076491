package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolgrid/timetable/internal/model"
	"github.com/schoolgrid/timetable/internal/repository/base"
)

const periodColumns = `
	p.id, p.class_section_id, p.class_subject_id, p.room_id, p.weekday,
	p.start_time, p.end_time, p.created_at, p.updated_at,
	cs.subject_name, cs.teacher_id, cs.teacher_name, r.name
`

type PeriodRepository struct {
	*base.Repository
}

func NewPeriodRepository(pool *pgxpool.Pool) *PeriodRepository {
	return &PeriodRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a period and fills its generated fields.
func (r *PeriodRepository) Create(ctx context.Context, period *model.Period) error {
	query := `
		INSERT INTO timetable_periods (id, class_section_id, class_subject_id, room_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	if period.ID == uuid.Nil {
		period.ID = uuid.New()
	}

	err := r.QueryRow(
		ctx, query,
		period.ID,
		period.ClassSectionID,
		period.ClassSubjectID,
		period.RoomID,
		period.Weekday,
		period.StartTime,
		period.EndTime,
	).Scan(&period.CreatedAt, &period.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create period: %w", err)
	}

	return nil
}

// GetByID fetches one period with its display summary, or nil when missing.
func (r *PeriodRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM timetable_periods p
		JOIN class_subjects cs ON cs.id = p.class_subject_id
		LEFT JOIN rooms r ON r.id = p.room_id
		WHERE p.id = $1
	`

	period, err := scanPeriod(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get period by id: %w", err)
	}

	return period, nil
}

// ListBySection fetches a section's periods ordered by weekday and start.
func (r *PeriodRepository) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]*model.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM timetable_periods p
		JOIN class_subjects cs ON cs.id = p.class_subject_id
		LEFT JOIN rooms r ON r.id = p.room_id
		WHERE p.class_section_id = $1
		ORDER BY p.weekday, p.start_time::time
	`

	rows, err := r.Query(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list periods by section: %w", err)
	}
	defer rows.Close()

	return collectPeriods(rows)
}

// ListByWeekday fetches every section's periods on one weekday; the
// lifecycle service filters these down to conflicts in minute terms.
func (r *PeriodRepository) ListByWeekday(ctx context.Context, weekday int) ([]*model.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM timetable_periods p
		JOIN class_subjects cs ON cs.id = p.class_subject_id
		LEFT JOIN rooms r ON r.id = p.room_id
		WHERE p.weekday = $1
		ORDER BY p.start_time::time
	`

	rows, err := r.Query(ctx, query, weekday)
	if err != nil {
		return nil, fmt.Errorf("list periods by weekday: %w", err)
	}
	defer rows.Close()

	return collectPeriods(rows)
}

// Update rewrites a period's editable fields.
func (r *PeriodRepository) Update(ctx context.Context, period *model.Period) error {
	query := `
		UPDATE timetable_periods
		SET class_subject_id = $2, room_id = $3, weekday = $4, start_time = $5, end_time = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		period.ID,
		period.ClassSubjectID,
		period.RoomID,
		period.Weekday,
		period.StartTime,
		period.EndTime,
	).Scan(&period.UpdatedAt)

	if base.IsNotFound(err) {
		return fmt.Errorf("period not found")
	}
	if err != nil {
		return fmt.Errorf("update period: %w", err)
	}

	return nil
}

// Delete removes a period.
func (r *PeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM timetable_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("period not found")
	}

	return nil
}

func scanPeriod(row pgx.Row) (*model.Period, error) {
	var period model.Period
	err := row.Scan(
		&period.ID,
		&period.ClassSectionID,
		&period.ClassSubjectID,
		&period.RoomID,
		&period.Weekday,
		&period.StartTime,
		&period.EndTime,
		&period.CreatedAt,
		&period.UpdatedAt,
		&period.SubjectName,
		&period.TeacherID,
		&period.TeacherName,
		&period.RoomName,
	)
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func collectPeriods(rows pgx.Rows) ([]*model.Period, error) {
	var periods []*model.Period
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}
