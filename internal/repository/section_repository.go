package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolgrid/timetable/internal/model"
	"github.com/schoolgrid/timetable/internal/repository/base"
)

type SectionRepository struct {
	*base.Repository
}

func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{Repository: base.NewRepository(pool)}
}

// GetSection fetches one class section, or nil when missing.
func (r *SectionRepository) GetSection(ctx context.Context, id uuid.UUID) (*model.ClassSection, error) {
	query := `
		SELECT id, name, academic_year, created_at
		FROM class_sections
		WHERE id = $1
	`

	var section model.ClassSection
	err := r.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.Name,
		&section.AcademicYear,
		&section.CreatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get section: %w", err)
	}

	return &section, nil
}

// GetClassSubject fetches one (subject, teacher) pairing, or nil.
func (r *SectionRepository) GetClassSubject(ctx context.Context, id uuid.UUID) (*model.ClassSubject, error) {
	query := `
		SELECT id, class_section_id, subject_name, teacher_id, teacher_name, created_at
		FROM class_subjects
		WHERE id = $1
	`

	var cs model.ClassSubject
	err := r.QueryRow(ctx, query, id).Scan(
		&cs.ID,
		&cs.ClassSectionID,
		&cs.SubjectName,
		&cs.TeacherID,
		&cs.TeacherName,
		&cs.CreatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get class subject: %w", err)
	}

	return &cs, nil
}

// ListClassSubjects fetches a section's pairings for the edit form dropdown.
func (r *SectionRepository) ListClassSubjects(ctx context.Context, sectionID uuid.UUID) ([]*model.ClassSubject, error) {
	query := `
		SELECT id, class_section_id, subject_name, teacher_id, teacher_name, created_at
		FROM class_subjects
		WHERE class_section_id = $1
		ORDER BY subject_name
	`

	rows, err := r.Query(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list class subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*model.ClassSubject
	for rows.Next() {
		var cs model.ClassSubject
		err := rows.Scan(
			&cs.ID,
			&cs.ClassSectionID,
			&cs.SubjectName,
			&cs.TeacherID,
			&cs.TeacherName,
			&cs.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan class subject: %w", err)
		}
		subjects = append(subjects, &cs)
	}

	return subjects, rows.Err()
}

// GetRoom fetches one room, or nil when missing.
func (r *SectionRepository) GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	query := `
		SELECT id, name, capacity, created_at
		FROM rooms
		WHERE id = $1
	`

	var room model.Room
	err := r.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.CreatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	return &room, nil
}
