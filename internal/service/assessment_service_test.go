package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schoolgrid/timetable/internal/model"
)

type fakeExamStore struct {
	sessions map[uuid.UUID]*model.ExamSession
	exams    map[uuid.UUID]*model.Exam
	subjects []*model.ExamSubject
	marks    []*model.StudentMark
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{
		sessions: make(map[uuid.UUID]*model.ExamSession),
		exams:    make(map[uuid.UUID]*model.Exam),
	}
}

func (f *fakeExamStore) GetSession(_ context.Context, id uuid.UUID) (*model.ExamSession, error) {
	return f.sessions[id], nil
}

func (f *fakeExamStore) GetExam(_ context.Context, id uuid.UUID) (*model.Exam, error) {
	return f.exams[id], nil
}

func (f *fakeExamStore) ListExamSubjectsByExam(_ context.Context, examID uuid.UUID) ([]*model.ExamSubject, error) {
	var out []*model.ExamSubject
	for _, es := range f.subjects {
		if es.ExamID == examID {
			out = append(out, es)
		}
	}
	return out, nil
}

func (f *fakeExamStore) ListExamSubjectsBySession(_ context.Context, sessionID uuid.UUID) ([]*model.ExamSubject, error) {
	var out []*model.ExamSubject
	for _, es := range f.subjects {
		if f.exams[es.ExamID] != nil && f.exams[es.ExamID].SessionID == sessionID {
			out = append(out, es)
		}
	}
	return out, nil
}

func (f *fakeExamStore) ListMarksByExamSubject(_ context.Context, examSubjectID uuid.UUID) ([]*model.StudentMark, error) {
	var out []*model.StudentMark
	for _, m := range f.marks {
		if m.ExamSubjectID == examSubjectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeExamStore) ListMarksByStudentAndSession(_ context.Context, studentID, sessionID uuid.UUID) ([]*model.StudentMark, error) {
	bySubject := make(map[uuid.UUID]bool)
	for _, es := range f.subjects {
		if f.exams[es.ExamID] != nil && f.exams[es.ExamID].SessionID == sessionID {
			bySubject[es.ID] = true
		}
	}
	var out []*model.StudentMark
	for _, m := range f.marks {
		if m.StudentID == studentID && bySubject[m.ExamSubjectID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeExamStore) ListMarksByExam(_ context.Context, examID uuid.UUID) ([]*model.StudentMark, error) {
	bySubject := make(map[uuid.UUID]bool)
	for _, es := range f.subjects {
		if es.ExamID == examID {
			bySubject[es.ID] = true
		}
	}
	var out []*model.StudentMark
	for _, m := range f.marks {
		if bySubject[m.ExamSubjectID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func ptr(v float64) *float64 { return &v }

type assessmentFixture struct {
	store     *fakeExamStore
	svc       *AssessmentService
	sessionID uuid.UUID
	examID    uuid.UUID
	studentID uuid.UUID
}

func newAssessmentFixture(t *testing.T) *assessmentFixture {
	t.Helper()

	store := newFakeExamStore()
	sessionID := uuid.New()
	store.sessions[sessionID] = &model.ExamSession{ID: sessionID, Name: "Term 1 2026"}

	examID := uuid.New()
	store.exams[examID] = &model.Exam{ID: examID, SessionID: sessionID, Title: "Midterm"}

	return &assessmentFixture{
		store:     store,
		svc:       NewAssessmentService(store, nil, zap.NewNop()),
		sessionID: sessionID,
		examID:    examID,
		studentID: uuid.New(),
	}
}

func (fx *assessmentFixture) addExamSubject(subject string, maxScore float64) uuid.UUID {
	id := uuid.New()
	fx.store.subjects = append(fx.store.subjects, &model.ExamSubject{
		ID: id, ExamID: fx.examID,
		SubjectName: subject, MaxScore: maxScore,
		ExamDate:  time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		ExamTitle: "Midterm",
	})
	return id
}

func (fx *assessmentFixture) addMark(examSubjectID, studentID uuid.UUID, score *float64) {
	fx.store.marks = append(fx.store.marks, &model.StudentMark{
		ID: uuid.New(), ExamSubjectID: examSubjectID, StudentID: studentID, Score: score,
	})
}

func TestReportCardExcludesUngraded(t *testing.T) {
	fx := newAssessmentFixture(t)

	math := fx.addExamSubject("Mathematics", 50)
	bio := fx.addExamSubject("Biology", 50)
	fx.addMark(math, fx.studentID, ptr(45))
	// Biology exists but the student's mark row is absent entirely.
	_ = bio

	card, err := fx.svc.ReportCard(context.Background(), fx.sessionID, fx.studentID)
	require.NoError(t, err)

	assert.Equal(t, 45.0, card.TotalObtained)
	assert.Equal(t, 50.0, card.TotalMax, "ungraded subject must not inflate the denominator")
	assert.InDelta(t, 90.0, card.Percentage, 1e-9)
	assert.Equal(t, "A+", card.Grade)

	// The ungraded subject still appears, zeroed.
	require.Len(t, card.Subjects, 2)
	assert.Equal(t, "Mathematics", card.Subjects[0].Subject)
	assert.Equal(t, "Biology", card.Subjects[1].Subject)
	assert.Empty(t, card.Subjects[1].Entries)
	assert.Zero(t, card.Subjects[1].TotalMax)
}

// A mark row with a null score is the same as no row at all.
func TestReportCardNullScoreIsNeutral(t *testing.T) {
	fx := newAssessmentFixture(t)

	math := fx.addExamSubject("Mathematics", 50)
	bio := fx.addExamSubject("Biology", 50)
	fx.addMark(math, fx.studentID, ptr(45))

	before, err := fx.svc.ReportCard(context.Background(), fx.sessionID, fx.studentID)
	require.NoError(t, err)

	fx.addMark(bio, fx.studentID, nil)

	after, err := fx.svc.ReportCard(context.Background(), fx.sessionID, fx.studentID)
	require.NoError(t, err)

	assert.Equal(t, before.TotalObtained, after.TotalObtained)
	assert.Equal(t, before.TotalMax, after.TotalMax)
	assert.Equal(t, before.Percentage, after.Percentage)
}

// Recomputing from the same marks yields the same card.
func TestReportCardIdempotent(t *testing.T) {
	fx := newAssessmentFixture(t)

	math := fx.addExamSubject("Mathematics", 100)
	fx.addMark(math, fx.studentID, ptr(72))

	first, err := fx.svc.ReportCard(context.Background(), fx.sessionID, fx.studentID)
	require.NoError(t, err)
	second, err := fx.svc.ReportCard(context.Background(), fx.sessionID, fx.studentID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReportCardNothingGraded(t *testing.T) {
	fx := newAssessmentFixture(t)
	fx.addExamSubject("Mathematics", 100)

	card, err := fx.svc.ReportCard(context.Background(), fx.sessionID, fx.studentID)
	require.NoError(t, err)
	assert.Zero(t, card.TotalMax)
	assert.Zero(t, card.Percentage, "empty card reads as 0%, not NaN")
	assert.Equal(t, "F", card.Grade)
}

func TestReportCardMultipleExamsPerSubject(t *testing.T) {
	fx := newAssessmentFixture(t)

	// Second exam in the same session, same subject.
	finalID := uuid.New()
	fx.store.exams[finalID] = &model.Exam{ID: finalID, SessionID: fx.sessionID, Title: "Final"}
	midterm := fx.addExamSubject("Mathematics", 50)
	final := &model.ExamSubject{
		ID: uuid.New(), ExamID: finalID,
		SubjectName: "Mathematics", MaxScore: 100,
		ExamTitle: "Final",
	}
	fx.store.subjects = append(fx.store.subjects, final)

	fx.addMark(midterm, fx.studentID, ptr(40))
	fx.addMark(final.ID, fx.studentID, ptr(80))

	card, err := fx.svc.ReportCard(context.Background(), fx.sessionID, fx.studentID)
	require.NoError(t, err)

	require.Len(t, card.Subjects, 1, "exams of one subject fold into one row")
	subject := card.Subjects[0]
	require.Len(t, subject.Entries, 2)
	assert.Equal(t, 120.0, subject.TotalObtained)
	assert.Equal(t, 150.0, subject.TotalMax)
	assert.InDelta(t, 80.0, subject.Percentage, 1e-9)
	assert.Equal(t, "A", subject.Grade)
}

func TestReportCardIgnoresOtherStudents(t *testing.T) {
	fx := newAssessmentFixture(t)

	math := fx.addExamSubject("Mathematics", 50)
	other := uuid.New()
	fx.addMark(math, other, ptr(50))
	fx.addMark(math, fx.studentID, ptr(30))

	card, err := fx.svc.ReportCard(context.Background(), fx.sessionID, fx.studentID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, card.TotalObtained)
}

func TestReportCardSessionNotFound(t *testing.T) {
	fx := newAssessmentFixture(t)
	_, err := fx.svc.ReportCard(context.Background(), uuid.New(), fx.studentID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPercentageZeroMax(t *testing.T) {
	assert.Zero(t, percentage(0, 0))
	assert.Zero(t, percentage(10, 0))
	assert.InDelta(t, 50.0, percentage(1, 2), 1e-9)
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{100, "A+"}, {90, "A+"}, {89.9, "A"}, {80, "A"},
		{79, "B+"}, {70, "B+"}, {65, "B"}, {55, "C"},
		{45, "D"}, {39.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, model.GradeFor(tt.percent, model.DefaultGradeBands), "percent %v", tt.percent)
	}
}

func TestClassSummary(t *testing.T) {
	fx := newAssessmentFixture(t)

	math := fx.addExamSubject("Mathematics", 50)
	bio := fx.addExamSubject("Biology", 50)

	alice := fx.studentID
	bob := uuid.New()
	carol := uuid.New()

	fx.addMark(math, alice, ptr(45))
	fx.addMark(bio, alice, ptr(40))
	fx.addMark(math, bob, ptr(45)) // biology ungraded for bob
	fx.addMark(bio, bob, nil)
	fx.addMark(math, carol, nil) // carol has no graded marks at all

	summaries, err := fx.svc.ClassSummary(context.Background(), fx.examID)
	require.NoError(t, err)

	// Carol never graded: she does not rank.
	require.Len(t, summaries, 2)

	// Bob: 45/50 = 90%. Alice: 85/100 = 85%.
	assert.Equal(t, bob, summaries[0].StudentID)
	assert.InDelta(t, 90.0, summaries[0].Percentage, 1e-9)
	assert.Equal(t, 50.0, summaries[0].TotalMax, "ungraded subject excluded from bob's denominator")
	assert.Equal(t, alice, summaries[1].StudentID)
	assert.InDelta(t, 85.0, summaries[1].Percentage, 1e-9)
}

func TestClassSummaryExamNotFound(t *testing.T) {
	fx := newAssessmentFixture(t)
	_, err := fx.svc.ClassSummary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrExamNotFound)
}
