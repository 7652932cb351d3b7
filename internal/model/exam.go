package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamStatus enumerates the possible states of an exam.
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "draft"
	ExamStatusPublished ExamStatus = "published"
	ExamStatusArchived  ExamStatus = "archived"
)

// Exam represents a scheduled exam for a course.
type Exam struct {
	ID              uuid.UUID  `json:"id"`
	CourseID        uuid.UUID  `json:"course_id"`
	Name            string     `json:"name"`
	ExamDate        time.Time  `json:"exam_date"`
	DurationMinutes int        `json:"duration_minutes"`
	Instructions    string     `json:"instructions"`
	Status          ExamStatus `json:"status"`
	CreatedBy       uuid.UUID  `json:"created_by"`
	Course          *Course    `json:"course,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// WindowEnd returns the exclusive end of the exam window.
func (e *Exam) WindowEnd() time.Time {
	return e.ExamDate.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// ExamQuestion is the exam-question association carrying the question weight.
type ExamQuestion struct {
	ID         uuid.UUID `json:"id"`
	ExamID     uuid.UUID `json:"exam_id"`
	QuestionID uuid.UUID `json:"question_id"`
	Weight     float64   `json:"weight"`
	Question   *Question `json:"question,omitempty"`
}

// ExamPaper is the student-facing view of a published exam: questions with
// choices stripped of correctness flags. Cached in Redis once published.
type ExamPaper struct {
	ExamID          uuid.UUID       `json:"exam_id"`
	Name            string          `json:"name"`
	CourseID        uuid.UUID       `json:"course_id"`
	ExamDate        time.Time       `json:"exam_date"`
	DurationMinutes int             `json:"duration_minutes"`
	Instructions    string          `json:"instructions"`
	Questions       []PaperQuestion `json:"questions"`
}

// PaperQuestion is one question as presented to a student.
type PaperQuestion struct {
	ID      uuid.UUID          `json:"id"`
	Text    string             `json:"text"`
	Type    QuestionType       `json:"type"`
	Weight  float64            `json:"weight"`
	Choices []ChoiceForStudent `json:"choices,omitempty"`
}

// CreateExamRequest is the payload for creating an exam.
type CreateExamRequest struct {
	CourseID        string     `json:"course_id" binding:"required,uuid"`
	Name            string     `json:"name" binding:"required,min=2,max=255"`
	ExamDate        time.Time  `json:"exam_date" binding:"required"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,min=1,max=480"`
	Instructions    string     `json:"instructions" binding:"required,max=4000"`
	Status          ExamStatus `json:"status" binding:"omitempty,oneof=draft published"`
}

// UpdateExamRequest is the payload for editing an exam. Date and duration
// edits are refused once attempts exist.
type UpdateExamRequest struct {
	Name            string     `json:"name" binding:"omitempty,min=2,max=255"`
	ExamDate        *time.Time `json:"exam_date" binding:"omitempty"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	Instructions    string     `json:"instructions" binding:"omitempty,max=4000"`
	Status          ExamStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// AttachQuestionRequest is the payload for adding a question to an exam.
type AttachQuestionRequest struct {
	QuestionID string  `json:"question_id" binding:"required,uuid"`
	Weight     float64 `json:"weight" binding:"required,gt=0"`
}
