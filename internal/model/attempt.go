package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptState is the derived lifecycle state of an attempt.
type AttemptState string

const (
	AttemptInProgress AttemptState = "in_progress"
	AttemptSubmitted  AttemptState = "submitted"
	AttemptGraded     AttemptState = "graded"
)

// Attempt is one student's instance of taking one exam. There is at most one
// per (exam, student) pair.
type Attempt struct {
	ID          uuid.UUID  `json:"id"`
	ExamID      uuid.UUID  `json:"exam_id"`
	StudentID   uuid.UUID  `json:"student_id"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Score       *float64   `json:"score,omitempty"`
	Feedback    string     `json:"feedback,omitempty"`
	GradedAt    *time.Time `json:"graded_at,omitempty"`
	GradedBy    *uuid.UUID `json:"graded_by,omitempty"`
}

// State derives the lifecycle state. GRADED is a soft state: submitted with a
// final grade stamped by an instructor.
func (a *Attempt) State() AttemptState {
	switch {
	case a.SubmittedAt == nil:
		return AttemptInProgress
	case a.GradedAt != nil:
		return AttemptGraded
	default:
		return AttemptSubmitted
	}
}

// Answer is one response inside an attempt, unique per question.
type Answer struct {
	ID         uuid.UUID  `json:"id"`
	AttemptID  uuid.UUID  `json:"attempt_id"`
	QuestionID uuid.UUID  `json:"question_id"`
	ChoiceID   *uuid.UUID `json:"choice_id,omitempty"`
	AnswerText string     `json:"answer_text,omitempty"`
	Score      *float64   `json:"score,omitempty"`
	Graded     bool       `json:"graded"`
	Feedback   string     `json:"feedback,omitempty"`
	GradedAt   *time.Time `json:"graded_at,omitempty"`
	GradedBy   *uuid.UUID `json:"graded_by,omitempty"`
}

// ExpiredAttempt is an open attempt whose exam window has already closed.
type ExpiredAttempt struct {
	AttemptID uuid.UUID
	ExamID    uuid.UUID
	StudentID uuid.UUID
	WindowEnd time.Time
}

// StartAttemptResponse is returned when a student starts (or re-enters) an exam.
type StartAttemptResponse struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// SubmitAnswerRequest is the payload for answering one question. Exactly one
// of choice_id (MCQ) or answer_text (written) is expected.
type SubmitAnswerRequest struct {
	ChoiceID   string `json:"choice_id" binding:"omitempty,uuid"`
	AnswerText string `json:"answer_text" binding:"omitempty,max=8000"`
}

// GradeAnswerRequest is the payload for manually scoring a written answer.
// Score is in points against the question's weight.
type GradeAnswerRequest struct {
	Score    float64 `json:"score" binding:"min=0"`
	Feedback string  `json:"feedback" binding:"omitempty,max=4000"`
}

// FinalGradeRequest is the payload for overriding an attempt's final score.
type FinalGradeRequest struct {
	Score    float64 `json:"score" binding:"min=0,max=100"`
	Feedback string  `json:"feedback" binding:"omitempty,max=4000"`
}

// AttemptResult is a student-facing result row.
type AttemptResult struct {
	Attempt
	ExamName   string `json:"exam_name"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
}

// AnswerBreakdown is one graded answer joined with its question, served to
// students reviewing their results.
type AnswerBreakdown struct {
	QuestionID   uuid.UUID    `json:"question_id"`
	QuestionText string       `json:"question_text"`
	QuestionType QuestionType `json:"question_type"`
	Weight       float64      `json:"weight"`
	ChoiceID     *uuid.UUID   `json:"choice_id,omitempty"`
	AnswerText   string       `json:"answer_text,omitempty"`
	Score        *float64     `json:"score,omitempty"`
	Graded       bool         `json:"graded"`
	Feedback     string       `json:"feedback,omitempty"`
}

// ExamResultRow is one line of a doctor's grading overview for an exam.
type ExamResultRow struct {
	AttemptID     uuid.UUID  `json:"attempt_id"`
	StudentID     uuid.UUID  `json:"student_id"`
	StudentName   string     `json:"student_name"`
	Score         *float64   `json:"score,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	Graded        bool       `json:"graded"`
	UngradedCount int        `json:"ungraded_count"`
}
