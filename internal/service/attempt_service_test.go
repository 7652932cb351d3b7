package service

import (
	"testing"
	"time"

	"github.com/acadex/acadex-backend/internal/config"
	"github.com/acadex/acadex-backend/internal/model"
)

func examAt(start time.Time, minutes int) *model.Exam {
	return &model.Exam{ExamDate: start, DurationMinutes: minutes}
}

func TestWindowOpen(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	exam := examAt(start, 90)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before window", start.Add(-time.Minute), false},
		{"at window start", start, true},
		{"mid window", start.Add(45 * time.Minute), true},
		{"last instant inside", start.Add(90*time.Minute - time.Second), true},
		{"at window end", start.Add(90 * time.Minute), false},
		{"after window", start.Add(2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := windowOpen(exam, tt.at); got != tt.want {
				t.Errorf("windowOpen(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestReenterDenial(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	exam := examAt(start, 60)
	submitted := start.Add(30 * time.Minute)

	open := &model.Attempt{StartedAt: start}
	closed := &model.Attempt{StartedAt: start, SubmittedAt: &submitted}

	tests := []struct {
		name    string
		attempt *model.Attempt
		at      time.Time
		policy  config.ReentryPolicy
		want    error
	}{
		{"open attempt in window", open, start.Add(time.Minute), config.ReentryWindow, nil},
		{"open attempt after window", open, start.Add(2 * time.Hour), config.ReentryWindow, ErrAttemptClosed},
		{"open attempt after window, unlimited", open, start.Add(2 * time.Hour), config.ReentryUnlimited, nil},
		// A submitted attempt means the exam is no longer available at all,
		// which is a different refusal than a merely closed attempt.
		{"submitted attempt", closed, start.Add(40 * time.Minute), config.ReentryWindow, ErrNotEligible},
		{"submitted attempt, unlimited", closed, start.Add(40 * time.Minute), config.ReentryUnlimited, ErrNotEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reenterDenial(exam, tt.attempt, tt.at, tt.policy); got != tt.want {
				t.Errorf("reenterDenial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttemptEnterable(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	exam := examAt(start, 60)
	submitted := start.Add(30 * time.Minute)

	open := &model.Attempt{StartedAt: start}
	closed := &model.Attempt{StartedAt: start, SubmittedAt: &submitted}

	tests := []struct {
		name    string
		attempt *model.Attempt
		at      time.Time
		policy  config.ReentryPolicy
		want    bool
	}{
		{"open attempt in window", open, start.Add(time.Minute), config.ReentryWindow, true},
		{"open attempt after window", open, start.Add(2 * time.Hour), config.ReentryWindow, false},
		{"open attempt after window, unlimited", open, start.Add(2 * time.Hour), config.ReentryUnlimited, true},
		{"submitted attempt in window", closed, start.Add(40 * time.Minute), config.ReentryWindow, false},
		{"submitted attempt, unlimited", closed, start.Add(40 * time.Minute), config.ReentryUnlimited, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attemptEnterable(exam, tt.attempt, tt.at, tt.policy); got != tt.want {
				t.Errorf("attemptEnterable() = %v, want %v", got, tt.want)
			}
		})
	}
}
