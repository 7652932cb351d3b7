package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/config"
	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
	"github.com/acadex/acadex-backend/internal/websocket"
)

// AttemptService runs the student side of the exam lifecycle: eligibility,
// idempotent start, answer upserts, and submission with auto-grading.
type AttemptService struct {
	attemptRepo  *repository.AttemptRepository
	examRepo     *repository.ExamRepository
	courseRepo   *repository.CourseRepository
	questionRepo *repository.QuestionRepository
	examSvc      *ExamService
	rdb          *redis.Client
	reentry      config.ReentryPolicy
	log          zerolog.Logger
	now          func() time.Time
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	examRepo *repository.ExamRepository,
	courseRepo *repository.CourseRepository,
	questionRepo *repository.QuestionRepository,
	examSvc *ExamService,
	rdb *redis.Client,
	reentry config.ReentryPolicy,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		examRepo:     examRepo,
		courseRepo:   courseRepo,
		questionRepo: questionRepo,
		examSvc:      examSvc,
		rdb:          rdb,
		reentry:      reentry,
		log:          log.With().Str("component", "attempt_service").Logger(),
		now:          time.Now,
	}
}

// windowOpen reports whether the exam window contains the instant.
func windowOpen(exam *model.Exam, now time.Time) bool {
	return !now.Before(exam.ExamDate) && now.Before(exam.WindowEnd())
}

// attemptEnterable reports whether an in-progress attempt may still receive
// answers at the instant, under the configured re-entry policy.
func attemptEnterable(exam *model.Exam, attempt *model.Attempt, now time.Time, policy config.ReentryPolicy) bool {
	if attempt.SubmittedAt != nil {
		return false
	}
	if policy == config.ReentryUnlimited {
		return true
	}
	return windowOpen(exam, now)
}

// reenterDenial reports why an existing attempt refuses re-entry, or nil. A
// submitted attempt makes the exam unavailable outright; an expired open one
// is merely closed.
func reenterDenial(exam *model.Exam, attempt *model.Attempt, now time.Time, policy config.ReentryPolicy) error {
	if attempt.SubmittedAt != nil {
		return ErrNotEligible
	}
	if !attemptEnterable(exam, attempt, now, policy) {
		return ErrAttemptClosed
	}
	return nil
}

// Available retrieves published exams of the student's courses whose window
// is currently open and that the student has not submitted yet.
func (s *AttemptService) Available(ctx context.Context, studentID uuid.UUID) ([]model.Exam, error) {
	now := s.now()
	exams, err := s.examRepo.ListForStudent(ctx, studentID, now, false)
	if err != nil {
		return nil, err
	}

	open := make([]model.Exam, 0, len(exams))
	for _, exam := range exams {
		if !windowOpen(&exam, now) {
			continue
		}
		attempt, err := s.attemptRepo.GetByExamAndStudent(ctx, exam.ID, studentID)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
		} else if attempt.SubmittedAt != nil {
			continue
		}
		open = append(open, exam)
	}
	return open, nil
}

// Upcoming retrieves published exams of the student's courses whose window
// has not opened yet.
func (s *AttemptService) Upcoming(ctx context.Context, studentID uuid.UUID) ([]model.Exam, error) {
	exams, err := s.examRepo.ListForStudent(ctx, studentID, s.now(), true)
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, nil
}

// eligibleExam loads the exam and checks the student may interact with it:
// published and on a course the student is enrolled in.
func (s *AttemptService) eligibleExam(ctx context.Context, examID, studentID uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, ErrNotFound
	}
	if exam.Status != model.ExamStatusPublished {
		return nil, ErrNotEligible
	}
	enrolled, err := s.courseRepo.IsStudentEnrolled(ctx, studentID, exam.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEligible
	}
	return exam, nil
}

// Start begins (or re-enters) the student's attempt. Concurrent starts
// converge on a single attempt row; re-entry returns the original start time.
func (s *AttemptService) Start(ctx context.Context, examID, studentID uuid.UUID) (*model.StartAttemptResponse, error) {
	exam, err := s.eligibleExam(ctx, examID, studentID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !windowOpen(exam, now) {
		return nil, ErrNotEligible
	}

	attempt, created, err := s.attemptRepo.Create(ctx, examID, studentID)
	if err != nil {
		return nil, err
	}
	if !created {
		if err := reenterDenial(exam, attempt, now, s.reentry); err != nil {
			return nil, err
		}
	}

	if created {
		s.publish(ctx, websocket.MonitorEvent{
			Type:      websocket.EventAttemptStarted,
			ExamID:    examID,
			AttemptID: attempt.ID,
			StudentID: studentID,
			At:        now,
		})
		s.log.Info().Str("attempt_id", attempt.ID.String()).Str("exam_id", examID.String()).Msg("attempt started")
	}

	return &model.StartAttemptResponse{
		AttemptID: attempt.ID,
		StartTime: attempt.StartedAt,
		EndTime:   exam.WindowEnd(),
	}, nil
}

// Paper serves the student-facing exam content once an attempt is underway.
func (s *AttemptService) Paper(ctx context.Context, examID, studentID uuid.UUID) (*model.ExamPaper, error) {
	exam, err := s.eligibleExam(ctx, examID, studentID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.attemptRepo.GetByExamAndStudent(ctx, examID, studentID)
	if err != nil {
		return nil, ErrAttemptNotStarted
	}
	if !attemptEnterable(exam, attempt, s.now(), s.reentry) {
		return nil, ErrAttemptClosed
	}
	return s.examSvc.Paper(ctx, exam)
}

// SaveAnswer writes or replaces the answer to one question of the student's
// open attempt. Replacing discards any earlier grade on that answer.
func (s *AttemptService) SaveAnswer(ctx context.Context, examID, questionID, studentID uuid.UUID, req *model.SubmitAnswerRequest) (*model.Answer, error) {
	exam, err := s.eligibleExam(ctx, examID, studentID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.attemptRepo.GetByExamAndStudent(ctx, examID, studentID)
	if err != nil {
		return nil, ErrAttemptNotStarted
	}
	now := s.now()
	if !attemptEnterable(exam, attempt, now, s.reentry) {
		return nil, ErrAttemptClosed
	}

	inExam, err := s.examRepo.QuestionInExam(ctx, examID, questionID)
	if err != nil {
		return nil, err
	}
	if !inExam {
		return nil, ErrQuestionNotInExam
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, ErrNotFound
	}

	ans := &model.Answer{AttemptID: attempt.ID, QuestionID: questionID}
	switch question.Type {
	case model.QuestionTypeMCQ:
		choiceID, err := uuid.Parse(req.ChoiceID)
		if err != nil {
			return nil, ErrNotFound
		}
		choice, err := s.questionRepo.GetChoice(ctx, choiceID)
		if err != nil || choice.QuestionID != questionID {
			return nil, ErrNotFound
		}
		ans.ChoiceID = &choiceID
	default:
		ans.AnswerText = req.AnswerText
	}

	if err := s.attemptRepo.UpsertAnswer(ctx, ans); err != nil {
		return nil, err
	}

	s.publish(ctx, websocket.MonitorEvent{
		Type:       websocket.EventAnswerSaved,
		ExamID:     examID,
		AttemptID:  attempt.ID,
		StudentID:  studentID,
		QuestionID: &questionID,
		At:         now,
	})
	return ans, nil
}

// Submit closes the attempt, auto-grading MCQ answers and computing a
// provisional score. Submitting an already closed attempt is refused.
func (s *AttemptService) Submit(ctx context.Context, examID, studentID uuid.UUID) (*model.Attempt, error) {
	exam, err := s.eligibleExam(ctx, examID, studentID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.attemptRepo.GetByExamAndStudent(ctx, examID, studentID)
	if err != nil {
		return nil, ErrAttemptNotStarted
	}
	now := s.now()
	if !attemptEnterable(exam, attempt, now, s.reentry) {
		return nil, ErrAttemptClosed
	}

	closed, err := s.attemptRepo.Submit(ctx, attempt.ID, now)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, ErrAttemptClosed
	}

	s.publish(ctx, websocket.MonitorEvent{
		Type:      websocket.EventAttemptSubmitted,
		ExamID:    examID,
		AttemptID: attempt.ID,
		StudentID: studentID,
		At:        now,
	})
	s.log.Info().Str("attempt_id", attempt.ID.String()).Msg("attempt submitted")

	return s.attemptRepo.GetByID(ctx, attempt.ID)
}

// Results retrieves the student's submitted attempts.
func (s *AttemptService) Results(ctx context.Context, studentID uuid.UUID) ([]model.AttemptResult, error) {
	results, err := s.attemptRepo.ListResultsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.AttemptResult{}
	}
	return results, nil
}

// ResultDetail retrieves the per-question breakdown of one of the student's
// submitted attempts.
func (s *AttemptService) ResultDetail(ctx context.Context, attemptID, studentID uuid.UUID) (*model.Attempt, []model.AnswerBreakdown, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	if attempt.StudentID != studentID {
		return nil, nil, ErrNotFound
	}
	if attempt.SubmittedAt == nil {
		return nil, nil, ErrNotSubmitted
	}

	breakdown, err := s.attemptRepo.ListBreakdown(ctx, attemptID)
	if err != nil {
		return nil, nil, err
	}
	if breakdown == nil {
		breakdown = []model.AnswerBreakdown{}
	}
	return attempt, breakdown, nil
}

func (s *AttemptService) publish(ctx context.Context, ev websocket.MonitorEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.ExamMonitorChannel(ev.ExamID), payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("exam_id", ev.ExamID.String()).Msg("monitor publish failed")
	}
}
