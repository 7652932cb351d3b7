package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
)

// QuestionService handles the question bank. Every operation is scoped to the
// authoring doctor: questions of other doctors behave as if they don't exist.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// List retrieves the doctor's questions with their choices.
func (s *QuestionService) List(ctx context.Context, doctorID uuid.UUID) ([]model.Question, error) {
	questions, err := s.questionRepo.ListByAuthor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	for i := range questions {
		if questions[i].Type != model.QuestionTypeMCQ {
			continue
		}
		choices, err := s.questionRepo.ListChoices(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Choices = choices
	}
	return questions, nil
}

// Get retrieves one of the doctor's questions with its choices.
func (s *QuestionService) Get(ctx context.Context, id, doctorID uuid.UUID) (*model.Question, error) {
	question, err := s.questionRepo.GetOwned(ctx, id, doctorID)
	if err != nil {
		return nil, ErrNotFound
	}
	if question.Type == model.QuestionTypeMCQ {
		choices, err := s.questionRepo.ListChoices(ctx, question.ID)
		if err != nil {
			return nil, err
		}
		question.Choices = choices
	}
	return question, nil
}

// Create authors a question.
func (s *QuestionService) Create(ctx context.Context, doctorID uuid.UUID, req *model.CreateQuestionRequest) (*model.Question, error) {
	question := &model.Question{
		Text:       req.Text,
		Type:       req.Type,
		Chapter:    req.Chapter,
		Difficulty: req.Difficulty,
		Rubric:     req.Rubric,
		CreatedBy:  doctorID,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// Update edits a question's content. The type is immutable.
func (s *QuestionService) Update(ctx context.Context, id, doctorID uuid.UUID, req *model.UpdateQuestionRequest) (*model.Question, error) {
	question, err := s.questionRepo.GetOwned(ctx, id, doctorID)
	if err != nil {
		return nil, ErrNotFound
	}

	question.Text = req.Text
	question.Chapter = req.Chapter
	question.Difficulty = req.Difficulty
	question.Rubric = req.Rubric

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes a question unless an exam references it.
func (s *QuestionService) Delete(ctx context.Context, id, doctorID uuid.UUID) error {
	if _, err := s.questionRepo.GetOwned(ctx, id, doctorID); err != nil {
		return ErrNotFound
	}
	inUse, err := s.questionRepo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrQuestionInUse
	}
	return s.questionRepo.Delete(ctx, id)
}

// AddChoice appends a choice to an MCQ question. Marking it correct demotes
// the previous correct choice so exactly one stays correct.
func (s *QuestionService) AddChoice(ctx context.Context, questionID, doctorID uuid.UUID, req *model.CreateChoiceRequest) (*model.Choice, error) {
	question, err := s.questionRepo.GetOwned(ctx, questionID, doctorID)
	if err != nil {
		return nil, ErrNotFound
	}
	if question.Type != model.QuestionTypeMCQ {
		return nil, ErrChoicesOnMCQOnly
	}

	choice := &model.Choice{
		QuestionID: questionID,
		Text:       req.Text,
		IsCorrect:  *req.IsCorrect,
	}
	if err := s.questionRepo.CreateChoice(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

// UpdateChoice edits a choice, preserving the single-correct invariant.
// Demoting the only correct choice is refused.
func (s *QuestionService) UpdateChoice(ctx context.Context, questionID, choiceID, doctorID uuid.UUID, req *model.UpdateChoiceRequest) (*model.Choice, error) {
	choice, err := s.ownedChoice(ctx, questionID, choiceID, doctorID)
	if err != nil {
		return nil, err
	}

	if choice.IsCorrect && !*req.IsCorrect {
		return nil, ErrLastCorrectChoice
	}

	choice.Text = req.Text
	choice.IsCorrect = *req.IsCorrect
	if err := s.questionRepo.UpdateChoice(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

// DeleteChoice removes a choice unless it is the last one, or the only
// correct one.
func (s *QuestionService) DeleteChoice(ctx context.Context, questionID, choiceID, doctorID uuid.UUID) error {
	choice, err := s.ownedChoice(ctx, questionID, choiceID, doctorID)
	if err != nil {
		return err
	}

	total, correct, err := s.questionRepo.ChoiceCounts(ctx, questionID)
	if err != nil {
		return err
	}
	if total <= 1 {
		return ErrLastChoice
	}
	if choice.IsCorrect && correct <= 1 {
		return ErrLastCorrectChoice
	}

	return s.questionRepo.DeleteChoice(ctx, choiceID)
}

func (s *QuestionService) ownedChoice(ctx context.Context, questionID, choiceID, doctorID uuid.UUID) (*model.Choice, error) {
	if _, err := s.questionRepo.GetOwned(ctx, questionID, doctorID); err != nil {
		return nil, ErrNotFound
	}
	choice, err := s.questionRepo.GetChoice(ctx, choiceID)
	if err != nil || choice.QuestionID != questionID {
		return nil, ErrNotFound
	}
	return choice, nil
}
