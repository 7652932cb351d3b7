package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/config"
	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
)

// ExamService handles exam authoring. Mutations that would invalidate a live
// exam are refused once the first attempt exists.
type ExamService struct {
	examRepo     *repository.ExamRepository
	courseRepo   *repository.CourseRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	examRepo *repository.ExamRepository,
	courseRepo *repository.CourseRepository,
	questionRepo *repository.QuestionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		examRepo:     examRepo,
		courseRepo:   courseRepo,
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// List retrieves the doctor's exams.
func (s *ExamService) List(ctx context.Context, doctorID uuid.UUID) ([]model.Exam, error) {
	exams, err := s.examRepo.ListByAuthor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, nil
}

// Get retrieves one of the doctor's exams.
func (s *ExamService) Get(ctx context.Context, id, doctorID uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetOwned(ctx, id, doctorID)
	if err != nil {
		return nil, ErrNotFound
	}
	return exam, nil
}

// Create schedules an exam on a course the doctor teaches.
func (s *ExamService) Create(ctx context.Context, doctorID uuid.UUID, req *model.CreateExamRequest) (*model.Exam, error) {
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return nil, ErrNotFound
	}
	assigned, err := s.courseRepo.IsDoctorAssigned(ctx, doctorID, courseID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrForbidden
	}

	status := req.Status
	if status == "" {
		status = model.ExamStatusDraft
	}

	exam := &model.Exam{
		CourseID:        courseID,
		Name:            req.Name,
		ExamDate:        req.ExamDate,
		DurationMinutes: req.DurationMinutes,
		Instructions:    req.Instructions,
		Status:          status,
		CreatedBy:       doctorID,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, err
	}

	s.log.Info().Str("exam_id", exam.ID.String()).Str("course_id", courseID.String()).Msg("exam created")
	return exam, nil
}

// statusChangeAllowed encodes the exam lifecycle: draft to published to
// archived, with published back to draft as the only revert. Archived is
// terminal.
func statusChangeAllowed(from, to model.ExamStatus) bool {
	switch from {
	case model.ExamStatusDraft:
		return to == model.ExamStatusPublished
	case model.ExamStatusPublished:
		return to == model.ExamStatusDraft || to == model.ExamStatusArchived
	default:
		return false
	}
}

// Update edits an exam. Date and duration are frozen once attempts exist;
// other fields stay editable.
func (s *ExamService) Update(ctx context.Context, id, doctorID uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error) {
	exam, err := s.examRepo.GetOwned(ctx, id, doctorID)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.ExamDate != nil || req.DurationMinutes != nil {
		hasAttempts, err := s.examRepo.HasAttempts(ctx, id)
		if err != nil {
			return nil, err
		}
		if hasAttempts {
			return nil, ErrAttemptsExist
		}
		if req.ExamDate != nil {
			exam.ExamDate = *req.ExamDate
		}
		if req.DurationMinutes != nil {
			exam.DurationMinutes = *req.DurationMinutes
		}
	}
	if req.Name != "" {
		exam.Name = req.Name
	}
	if req.Instructions != "" {
		exam.Instructions = req.Instructions
	}
	if req.Status != "" && req.Status != exam.Status {
		if !statusChangeAllowed(exam.Status, req.Status) {
			return nil, ErrStatusTransition
		}
		// Unpublishing is allowed only while nobody has started the exam.
		if exam.Status == model.ExamStatusPublished && req.Status == model.ExamStatusDraft {
			hasAttempts, err := s.examRepo.HasAttempts(ctx, id)
			if err != nil {
				return nil, err
			}
			if hasAttempts {
				return nil, ErrAttemptsExist
			}
		}
		exam.Status = req.Status
	}

	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, err
	}

	// Any edit invalidates the cached paper.
	s.dropPaperCache(ctx, id)
	return exam, nil
}

// Delete removes an exam unless attempts exist.
func (s *ExamService) Delete(ctx context.Context, id, doctorID uuid.UUID) error {
	if _, err := s.examRepo.GetOwned(ctx, id, doctorID); err != nil {
		return ErrNotFound
	}
	hasAttempts, err := s.examRepo.HasAttempts(ctx, id)
	if err != nil {
		return err
	}
	if hasAttempts {
		return ErrAttemptsExist
	}
	if err := s.examRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.dropPaperCache(ctx, id)
	return nil
}

// ListQuestions retrieves the exam's questions and weights.
func (s *ExamService) ListQuestions(ctx context.Context, examID, doctorID uuid.UUID) ([]model.ExamQuestion, error) {
	if _, err := s.examRepo.GetOwned(ctx, examID, doctorID); err != nil {
		return nil, ErrNotFound
	}
	eqs, err := s.examRepo.ListQuestions(ctx, examID)
	if err != nil {
		return nil, err
	}
	if eqs == nil {
		eqs = []model.ExamQuestion{}
	}
	return eqs, nil
}

// AttachQuestion adds one of the doctor's questions to the exam with a
// weight. Refused once attempts exist.
func (s *ExamService) AttachQuestion(ctx context.Context, examID, doctorID uuid.UUID, req *model.AttachQuestionRequest) (*model.ExamQuestion, error) {
	if _, err := s.examRepo.GetOwned(ctx, examID, doctorID); err != nil {
		return nil, ErrNotFound
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.questionRepo.GetOwned(ctx, questionID, doctorID); err != nil {
		return nil, ErrNotFound
	}

	hasAttempts, err := s.examRepo.HasAttempts(ctx, examID)
	if err != nil {
		return nil, err
	}
	if hasAttempts {
		return nil, ErrAttemptsExist
	}

	eq := &model.ExamQuestion{ExamID: examID, QuestionID: questionID, Weight: req.Weight}
	inserted, err := s.examRepo.AttachQuestion(ctx, eq)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, ErrConflict
	}

	s.dropPaperCache(ctx, examID)
	return eq, nil
}

// DetachQuestion removes a question from the exam. Refused once attempts exist.
func (s *ExamService) DetachQuestion(ctx context.Context, examID, examQuestionID, doctorID uuid.UUID) error {
	if _, err := s.examRepo.GetOwned(ctx, examID, doctorID); err != nil {
		return ErrNotFound
	}
	eq, err := s.examRepo.GetExamQuestion(ctx, examQuestionID)
	if err != nil || eq.ExamID != examID {
		return ErrNotFound
	}

	hasAttempts, err := s.examRepo.HasAttempts(ctx, examID)
	if err != nil {
		return err
	}
	if hasAttempts {
		return ErrAttemptsExist
	}

	if err := s.examRepo.DetachQuestion(ctx, examQuestionID); err != nil {
		return err
	}
	s.dropPaperCache(ctx, examID)
	return nil
}

// Paper builds the student-facing view of an exam, serving from cache when
// possible.
func (s *ExamService) Paper(ctx context.Context, exam *model.Exam) (*model.ExamPaper, error) {
	key := config.CacheKey.ExamPaperKey(exam.ID)
	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var paper model.ExamPaper
		if err := json.Unmarshal([]byte(cached), &paper); err == nil {
			return &paper, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("exam_id", exam.ID.String()).Msg("paper cache read failed")
	}

	eqs, err := s.examRepo.ListQuestions(ctx, exam.ID)
	if err != nil {
		return nil, err
	}

	paper := &model.ExamPaper{
		ExamID:          exam.ID,
		Name:            exam.Name,
		CourseID:        exam.CourseID,
		ExamDate:        exam.ExamDate,
		DurationMinutes: exam.DurationMinutes,
		Instructions:    exam.Instructions,
		Questions:       make([]model.PaperQuestion, 0, len(eqs)),
	}
	for _, eq := range eqs {
		pq := model.PaperQuestion{
			ID:     eq.QuestionID,
			Text:   eq.Question.Text,
			Type:   eq.Question.Type,
			Weight: eq.Weight,
		}
		if eq.Question.Type == model.QuestionTypeMCQ {
			choices, err := s.questionRepo.ListChoices(ctx, eq.QuestionID)
			if err != nil {
				return nil, err
			}
			pq.Choices = make([]model.ChoiceForStudent, 0, len(choices))
			for _, c := range choices {
				pq.Choices = append(pq.Choices, model.ChoiceForStudent{ID: c.ID, Text: c.Text})
			}
		}
		paper.Questions = append(paper.Questions, pq)
	}

	if raw, err := json.Marshal(paper); err == nil {
		ttl := exam.WindowEnd().Sub(exam.ExamDate) * 2
		if err := s.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
			s.log.Warn().Err(err).Str("exam_id", exam.ID.String()).Msg("paper cache write failed")
		}
	}

	return paper, nil
}

func (s *ExamService) dropPaperCache(ctx context.Context, examID uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.ExamPaperKey(examID)).Err(); err != nil {
		s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("paper cache drop failed")
	}
}
