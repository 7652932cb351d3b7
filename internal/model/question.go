package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType distinguishes auto-graded from manually graded questions.
type QuestionType string

const (
	QuestionTypeMCQ     QuestionType = "mcq"
	QuestionTypeWritten QuestionType = "written"
)

// Difficulty enumerates question difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a bank question owned by the authoring doctor. MCQ questions
// carry choices; written questions carry a grading rubric.
type Question struct {
	ID         uuid.UUID    `json:"id"`
	Text       string       `json:"text"`
	Type       QuestionType `json:"type"`
	Chapter    string       `json:"chapter"`
	Difficulty Difficulty   `json:"difficulty"`
	Rubric     string       `json:"rubric,omitempty"`
	CreatedBy  uuid.UUID    `json:"created_by"`
	Choices    []Choice     `json:"choices,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Choice is one answer option of an MCQ question.
type Choice struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
}

// ChoiceForStudent is a choice without the is_correct flag, safe to serve to
// students taking an exam.
type ChoiceForStudent struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

// CreateQuestionRequest is the payload for authoring a question.
type CreateQuestionRequest struct {
	Text       string       `json:"text" binding:"required,min=1,max=4000"`
	Type       QuestionType `json:"type" binding:"required,oneof=mcq written"`
	Chapter    string       `json:"chapter" binding:"required,max=255"`
	Difficulty Difficulty   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Rubric     string       `json:"rubric" binding:"required_if=Type written,omitempty,max=4000"`
}

// UpdateQuestionRequest is the payload for editing a question.
type UpdateQuestionRequest struct {
	Text       string     `json:"text" binding:"required,min=1,max=4000"`
	Chapter    string     `json:"chapter" binding:"required,max=255"`
	Difficulty Difficulty `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Rubric     string     `json:"rubric" binding:"omitempty,max=4000"`
}

// CreateChoiceRequest is the payload for adding a choice to an MCQ question.
type CreateChoiceRequest struct {
	Text      string `json:"text" binding:"required,min=1,max=2000"`
	IsCorrect *bool  `json:"is_correct" binding:"required"`
}

// UpdateChoiceRequest is the payload for editing a choice.
type UpdateChoiceRequest struct {
	Text      string `json:"text" binding:"required,min=1,max=2000"`
	IsCorrect *bool  `json:"is_correct" binding:"required"`
}
