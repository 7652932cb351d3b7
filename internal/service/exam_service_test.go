package service

import (
	"testing"

	"github.com/acadex/acadex-backend/internal/model"
)

func TestStatusChangeAllowed(t *testing.T) {
	tests := []struct {
		name string
		from model.ExamStatus
		to   model.ExamStatus
		want bool
	}{
		{"publish draft", model.ExamStatusDraft, model.ExamStatusPublished, true},
		{"archive published", model.ExamStatusPublished, model.ExamStatusArchived, true},
		{"unpublish", model.ExamStatusPublished, model.ExamStatusDraft, true},
		{"archive draft", model.ExamStatusDraft, model.ExamStatusArchived, false},
		{"unarchive to draft", model.ExamStatusArchived, model.ExamStatusDraft, false},
		{"unarchive to published", model.ExamStatusArchived, model.ExamStatusPublished, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusChangeAllowed(tt.from, tt.to); got != tt.want {
				t.Errorf("statusChangeAllowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
