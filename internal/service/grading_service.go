package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
)

// GradingService runs the doctor side of grading: reviewing submissions,
// scoring written answers, and stamping final grades.
type GradingService struct {
	attemptRepo  *repository.AttemptRepository
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewGradingService creates a new GradingService.
func NewGradingService(
	attemptRepo *repository.AttemptRepository,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	log zerolog.Logger,
) *GradingService {
	return &GradingService{
		attemptRepo:  attemptRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		log:          log.With().Str("component", "grading_service").Logger(),
	}
}

// ExamResults lists every attempt of one of the doctor's exams with grading
// progress per row.
func (s *GradingService) ExamResults(ctx context.Context, examID, doctorID uuid.UUID) ([]model.ExamResultRow, error) {
	if _, err := s.examRepo.GetOwned(ctx, examID, doctorID); err != nil {
		return nil, ErrNotFound
	}
	rows, err := s.attemptRepo.ListResultsForExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.ExamResultRow{}
	}
	return rows, nil
}

// AttemptDetail retrieves a submitted attempt of the doctor's exam with its
// answers and questions.
func (s *GradingService) AttemptDetail(ctx context.Context, attemptID, doctorID uuid.UUID) (*model.Attempt, []model.AnswerBreakdown, error) {
	attempt, err := s.ownedAttempt(ctx, attemptID, doctorID)
	if err != nil {
		return nil, nil, err
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

// GradeAnswer scores one written answer of a submitted attempt and refreshes
// the attempt's provisional score. The score is bounded by the question's
// exam weight.
func (s *GradingService) GradeAnswer(ctx context.Context, attemptID, answerID, doctorID uuid.UUID, req *model.GradeAnswerRequest) (*model.Answer, error) {
	attempt, err := s.ownedAttempt(ctx, attemptID, doctorID)
	if err != nil {
		return nil, err
	}
	if attempt.SubmittedAt == nil {
		return nil, ErrNotSubmitted
	}

	answer, err := s.attemptRepo.GetAnswer(ctx, answerID)
	if err != nil || answer.AttemptID != attemptID {
		return nil, ErrNotFound
	}

	question, err := s.questionRepo.GetByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, ErrNotFound
	}
	if question.Type != model.QuestionTypeWritten {
		return nil, ErrWrittenOnly
	}

	weight, err := s.examRepo.QuestionWeight(ctx, attempt.ExamID, answer.QuestionID)
	if err != nil {
		return nil, ErrQuestionNotInExam
	}
	if req.Score > weight {
		return nil, ErrScoreOutOfRange
	}

	if err := s.attemptRepo.GradeAnswer(ctx, answerID, doctorID, req.Score, req.Feedback); err != nil {
		return nil, err
	}

	s.log.Info().Str("answer_id", answerID.String()).Float64("score", req.Score).Msg("answer graded")
	return s.attemptRepo.GetAnswer(ctx, answerID)
}

// FinalizeGrade stamps the instructor's final score on a submitted attempt,
// overriding the computed one. The attempt moves to its graded state.
func (s *GradingService) FinalizeGrade(ctx context.Context, attemptID, doctorID uuid.UUID, req *model.FinalGradeRequest) (*model.Attempt, error) {
	if _, err := s.ownedAttempt(ctx, attemptID, doctorID); err != nil {
		return nil, err
	}

	finalized, err := s.attemptRepo.FinalizeGrade(ctx, attemptID, doctorID, req.Score, req.Feedback)
	if err != nil {
		return nil, err
	}
	if !finalized {
		return nil, ErrNotSubmitted
	}

	s.log.Info().Str("attempt_id", attemptID.String()).Float64("score", req.Score).Msg("final grade stamped")
	return s.attemptRepo.GetByID(ctx, attemptID)
}

// ownedAttempt loads an attempt and verifies its exam belongs to the doctor.
func (s *GradingService) ownedAttempt(ctx context.Context, attemptID, doctorID uuid.UUID) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.examRepo.GetOwned(ctx, attempt.ExamID, doctorID); err != nil {
		return nil, ErrNotFound
	}
	return attempt, nil
}
