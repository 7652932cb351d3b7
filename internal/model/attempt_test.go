package model

import (
	"testing"
	"time"
)

func TestAttemptState(t *testing.T) {
	now := time.Now()
	score := 72.5

	tests := []struct {
		name    string
		attempt Attempt
		want    AttemptState
	}{
		{"fresh attempt", Attempt{StartedAt: now}, AttemptInProgress},
		{"submitted", Attempt{StartedAt: now, SubmittedAt: &now, Score: &score}, AttemptSubmitted},
		{"graded", Attempt{StartedAt: now, SubmittedAt: &now, Score: &score, GradedAt: &now}, AttemptGraded},
		// graded_at without submitted_at cannot happen through the API; the
		// derivation still treats the attempt as open.
		{"graded stamp on open attempt", Attempt{StartedAt: now, GradedAt: &now}, AttemptInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attempt.State(); got != tt.want {
				t.Errorf("State() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExamWindowEnd(t *testing.T) {
	start := time.Date(2026, 5, 2, 13, 30, 0, 0, time.UTC)
	exam := Exam{ExamDate: start, DurationMinutes: 120}

	want := start.Add(2 * time.Hour)
	if got := exam.WindowEnd(); !got.Equal(want) {
		t.Errorf("WindowEnd() = %v, want %v", got, want)
	}
}
