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

type ExamRepository struct {
	*base.Repository
}

func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{Repository: base.NewRepository(pool)}
}

// GetSession fetches one exam session, or nil when missing.
func (r *ExamRepository) GetSession(ctx context.Context, id uuid.UUID) (*model.ExamSession, error) {
	query := `
		SELECT id, name, academic_year, created_at
		FROM exam_sessions
		WHERE id = $1
	`

	var session model.ExamSession
	err := r.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Name,
		&session.AcademicYear,
		&session.CreatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exam session: %w", err)
	}

	return &session, nil
}

// GetExam fetches one exam, or nil when missing.
func (r *ExamRepository) GetExam(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	query := `
		SELECT id, session_id, title, created_at
		FROM exams
		WHERE id = $1
	`

	var exam model.Exam
	err := r.QueryRow(ctx, query, id).Scan(
		&exam.ID,
		&exam.SessionID,
		&exam.Title,
		&exam.CreatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	return &exam, nil
}

const examSubjectColumns = `
	es.id, es.exam_id, es.subject_name, es.max_score, es.weight, es.exam_date,
	es.created_at, e.title
`

// ListExamSubjectsByExam fetches one exam's subjects.
func (r *ExamRepository) ListExamSubjectsByExam(ctx context.Context, examID uuid.UUID) ([]*model.ExamSubject, error) {
	query := `
		SELECT ` + examSubjectColumns + `
		FROM exam_subjects es
		JOIN exams e ON e.id = es.exam_id
		WHERE es.exam_id = $1
		ORDER BY es.subject_name
	`

	rows, err := r.Query(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("list exam subjects by exam: %w", err)
	}
	defer rows.Close()

	return collectExamSubjects(rows)
}

// ListExamSubjectsBySession fetches every exam subject of a session,
// ordered so report-card assembly sees subjects grouped and exams in date
// order within each subject.
func (r *ExamRepository) ListExamSubjectsBySession(ctx context.Context, sessionID uuid.UUID) ([]*model.ExamSubject, error) {
	query := `
		SELECT ` + examSubjectColumns + `
		FROM exam_subjects es
		JOIN exams e ON e.id = es.exam_id
		WHERE e.session_id = $1
		ORDER BY es.subject_name, es.exam_date, es.id
	`

	rows, err := r.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list exam subjects by session: %w", err)
	}
	defer rows.Close()

	return collectExamSubjects(rows)
}

// ListMarksByExamSubject fetches every student's mark for one exam subject.
func (r *ExamRepository) ListMarksByExamSubject(ctx context.Context, examSubjectID uuid.UUID) ([]*model.StudentMark, error) {
	query := `
		SELECT id, exam_subject_id, student_id, score, created_at, updated_at
		FROM student_marks
		WHERE exam_subject_id = $1
		ORDER BY student_id
	`

	rows, err := r.Query(ctx, query, examSubjectID)
	if err != nil {
		return nil, fmt.Errorf("list marks by exam subject: %w", err)
	}
	defer rows.Close()

	return collectMarks(rows)
}

// ListMarksByStudentAndSession fetches one student's marks across a session.
func (r *ExamRepository) ListMarksByStudentAndSession(ctx context.Context, studentID, sessionID uuid.UUID) ([]*model.StudentMark, error) {
	query := `
		SELECT m.id, m.exam_subject_id, m.student_id, m.score, m.created_at, m.updated_at
		FROM student_marks m
		JOIN exam_subjects es ON es.id = m.exam_subject_id
		JOIN exams e ON e.id = es.exam_id
		WHERE m.student_id = $1 AND e.session_id = $2
	`

	rows, err := r.Query(ctx, query, studentID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list marks by student and session: %w", err)
	}
	defer rows.Close()

	return collectMarks(rows)
}

// ListMarksByExam fetches every mark of one exam, for the class overview.
func (r *ExamRepository) ListMarksByExam(ctx context.Context, examID uuid.UUID) ([]*model.StudentMark, error) {
	query := `
		SELECT m.id, m.exam_subject_id, m.student_id, m.score, m.created_at, m.updated_at
		FROM student_marks m
		JOIN exam_subjects es ON es.id = m.exam_subject_id
		WHERE es.exam_id = $1
		ORDER BY m.student_id
	`

	rows, err := r.Query(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("list marks by exam: %w", err)
	}
	defer rows.Close()

	return collectMarks(rows)
}

func collectExamSubjects(rows pgx.Rows) ([]*model.ExamSubject, error) {
	var subjects []*model.ExamSubject
	for rows.Next() {
		var es model.ExamSubject
		err := rows.Scan(
			&es.ID,
			&es.ExamID,
			&es.SubjectName,
			&es.MaxScore,
			&es.Weight,
			&es.ExamDate,
			&es.CreatedAt,
			&es.ExamTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("scan exam subject: %w", err)
		}
		subjects = append(subjects, &es)
	}
	return subjects, rows.Err()
}

func collectMarks(rows pgx.Rows) ([]*model.StudentMark, error) {
	var marks []*model.StudentMark
	for rows.Next() {
		var mark model.StudentMark
		err := rows.Scan(
			&mark.ID,
			&mark.ExamSubjectID,
			&mark.StudentID,
			&mark.Score,
			&mark.CreatedAt,
			&mark.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student mark: %w", err)
		}
		marks = append(marks, &mark)
	}
	return marks, rows.Err()
}
