package websocket

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the attempt progress events streamed to monitors.
type EventType string

const (
	EventAttemptStarted   EventType = "attempt_started"
	EventAnswerSaved      EventType = "answer_saved"
	EventAttemptSubmitted EventType = "attempt_submitted"
)

// MonitorEvent is one attempt progress event. Published on the exam's Redis
// channel and relayed verbatim to every connected monitor.
type MonitorEvent struct {
	Type       EventType  `json:"type"`
	ExamID     uuid.UUID  `json:"exam_id"`
	AttemptID  uuid.UUID  `json:"attempt_id"`
	StudentID  uuid.UUID  `json:"student_id"`
	QuestionID *uuid.UUID `json:"question_id,omitempty"`
	At         time.Time  `json:"at"`
}
