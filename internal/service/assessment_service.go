package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolgrid/timetable/internal/model"
)

// ExamStore is the exam/mark persistence the aggregator reads from.
type ExamStore interface {
	GetSession(ctx context.Context, id uuid.UUID) (*model.ExamSession, error)
	GetExam(ctx context.Context, id uuid.UUID) (*model.Exam, error)
	ListExamSubjectsByExam(ctx context.Context, examID uuid.UUID) ([]*model.ExamSubject, error)
	ListExamSubjectsBySession(ctx context.Context, sessionID uuid.UUID) ([]*model.ExamSubject, error)
	ListMarksByExamSubject(ctx context.Context, examSubjectID uuid.UUID) ([]*model.StudentMark, error)
	ListMarksByStudentAndSession(ctx context.Context, studentID, sessionID uuid.UUID) ([]*model.StudentMark, error)
	ListMarksByExam(ctx context.Context, examID uuid.UUID) ([]*model.StudentMark, error)
}

// AssessmentService computes report cards and class overviews from sparse
// per-subject, per-exam marks. Results are derived on every call and never
// cached, so there is nothing to invalidate.
type AssessmentService struct {
	exams  ExamStore
	bands  []model.GradeBand
	logger *zap.Logger
}

func NewAssessmentService(exams ExamStore, bands []model.GradeBand, logger *zap.Logger) *AssessmentService {
	if len(bands) == 0 {
		bands = model.DefaultGradeBands
	}
	return &AssessmentService{exams: exams, bands: bands, logger: logger}
}

// ExamSubjects lists an exam's subjects, checking the exam exists.
func (s *AssessmentService) ExamSubjects(ctx context.Context, examID uuid.UUID) ([]*model.ExamSubject, error) {
	exam, err := s.exams.GetExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}
	subjects, err := s.exams.ListExamSubjectsByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list exam subjects: %w", err)
	}
	return subjects, nil
}

// Marks lists every student's mark for one exam subject.
func (s *AssessmentService) Marks(ctx context.Context, examSubjectID uuid.UUID) ([]*model.StudentMark, error) {
	marks, err := s.exams.ListMarksByExamSubject(ctx, examSubjectID)
	if err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return marks, nil
}

// ReportCard assembles one student's report card for an exam session.
func (s *AssessmentService) ReportCard(ctx context.Context, sessionID, studentID uuid.UUID) (*model.ReportCard, error) {
	session, err := s.exams.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	examSubjects, err := s.exams.ListExamSubjectsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list exam subjects: %w", err)
	}

	marks, err := s.exams.ListMarksByStudentAndSession(ctx, studentID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}

	card := BuildReportCard(studentID, session, examSubjects, marks, s.bands)
	return card, nil
}

// ClassSummary computes every graded student's overall standing for one
// exam, reusing the same exclusion rule for ungraded marks.
func (s *AssessmentService) ClassSummary(ctx context.Context, examID uuid.UUID) ([]model.StudentSummary, error) {
	exam, err := s.exams.GetExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}

	examSubjects, err := s.exams.ListExamSubjectsByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list exam subjects: %w", err)
	}
	maxBySubject := make(map[uuid.UUID]float64, len(examSubjects))
	for _, es := range examSubjects {
		maxBySubject[es.ID] = es.MaxScore
	}

	marks, err := s.exams.ListMarksByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}

	totals := make(map[uuid.UUID]*model.StudentSummary)
	for _, mark := range marks {
		if mark.Score == nil {
			continue
		}
		sum, ok := totals[mark.StudentID]
		if !ok {
			sum = &model.StudentSummary{StudentID: mark.StudentID}
			totals[mark.StudentID] = sum
		}
		sum.TotalObtained += *mark.Score
		sum.TotalMax += maxBySubject[mark.ExamSubjectID]
	}

	summaries := make([]model.StudentSummary, 0, len(totals))
	for _, sum := range totals {
		sum.Percentage = percentage(sum.TotalObtained, sum.TotalMax)
		sum.Grade = model.GradeFor(sum.Percentage, s.bands)
		summaries = append(summaries, *sum)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Percentage != summaries[j].Percentage {
			return summaries[i].Percentage > summaries[j].Percentage
		}
		return summaries[i].StudentID.String() < summaries[j].StudentID.String()
	})

	return summaries, nil
}

// BuildReportCard is the pure aggregation: group the session's exam
// subjects by subject, attach the student's graded tuples, and total.
//
// A missing mark row and a mark with a nil score are the same thing: not
// yet graded. Ungraded tuples contribute to neither totalObtained nor
// totalMax, so an incomplete grading round does not depress percentages.
// Subjects with zero graded tuples still appear, zeroed, so the student
// can see what has not been graded yet.
func BuildReportCard(studentID uuid.UUID, session *model.ExamSession, examSubjects []*model.ExamSubject, marks []*model.StudentMark, bands []model.GradeBand) *model.ReportCard {
	scored := make(map[uuid.UUID]float64, len(marks))
	for _, mark := range marks {
		if mark.StudentID != studentID || mark.Score == nil {
			continue
		}
		scored[mark.ExamSubjectID] = *mark.Score
	}

	card := &model.ReportCard{
		StudentID:   studentID,
		SessionID:   session.ID,
		SessionName: session.Name,
	}

	// Subjects keep first-seen order from the exam-subject list, which the
	// store returns grouped by subject and ordered by exam date.
	index := make(map[string]int)
	for _, es := range examSubjects {
		i, ok := index[es.SubjectName]
		if !ok {
			i = len(card.Subjects)
			index[es.SubjectName] = i
			card.Subjects = append(card.Subjects, model.SubjectReport{Subject: es.SubjectName})
		}
		score, graded := scored[es.ID]
		if !graded {
			continue
		}
		subject := &card.Subjects[i]
		subject.Entries = append(subject.Entries, model.ScoreEntry{
			ExamSubjectID: es.ID,
			ExamTitle:     es.ExamTitle,
			Score:         score,
			MaxScore:      es.MaxScore,
		})
		subject.TotalObtained += score
		subject.TotalMax += es.MaxScore
	}

	for i := range card.Subjects {
		subject := &card.Subjects[i]
		subject.Percentage = percentage(subject.TotalObtained, subject.TotalMax)
		subject.Grade = model.GradeFor(subject.Percentage, bands)
		card.TotalObtained += subject.TotalObtained
		card.TotalMax += subject.TotalMax
	}
	card.Percentage = percentage(card.TotalObtained, card.TotalMax)
	card.Grade = model.GradeFor(card.Percentage, bands)

	return card
}

// percentage guards the zero-max case: a report with nothing graded reads
// as 0%, not NaN.
func percentage(obtained, max float64) float64 {
	if max == 0 {
		return 0
	}
	return 100 * obtained / max
}
