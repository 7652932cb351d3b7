package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex-backend/internal/response"
	"github.com/acadex/acadex-backend/internal/service"
)

func TestFailFromErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   response.ErrCode
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, response.ErrForbidden},
		{"duplicate", service.ErrConflict, http.StatusConflict, response.ErrConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
		{"session invalidated", service.ErrSessionInvalidated, http.StatusUnauthorized, response.ErrSessionInvalidated},
		{"not eligible", service.ErrNotEligible, http.StatusForbidden, response.ErrNotEligible},

		// Business-rule violations answer 400, never 409 or 422.
		{"attempt closed", service.ErrAttemptClosed, http.StatusBadRequest, response.ErrAttemptClosed},
		{"attempt not started", service.ErrAttemptNotStarted, http.StatusBadRequest, response.ErrAttemptNotStarted},
		{"not submitted", service.ErrNotSubmitted, http.StatusBadRequest, response.ErrNotSubmitted},
		{"question not in exam", service.ErrQuestionNotInExam, http.StatusBadRequest, response.ErrQuestionNotInExam},
		{"attempts exist", service.ErrAttemptsExist, http.StatusBadRequest, response.ErrAttemptsExist},
		{"last choice", service.ErrLastChoice, http.StatusBadRequest, response.ErrLastChoice},
		{"last correct choice", service.ErrLastCorrectChoice, http.StatusBadRequest, response.ErrLastCorrectChoice},
		{"written only", service.ErrWrittenOnly, http.StatusBadRequest, response.ErrWrittenOnly},
		{"choices on mcq only", service.ErrChoicesOnMCQOnly, http.StatusBadRequest, response.ErrChoicesOnMCQOnly},
		{"question in use", service.ErrQuestionInUse, http.StatusBadRequest, response.ErrQuestionInUse},
		{"course has exams", service.ErrCourseHasExams, http.StatusBadRequest, response.ErrCourseHasExams},
		{"status transition", service.ErrStatusTransition, http.StatusBadRequest, response.ErrStatusTransition},
		{"role immutable", service.ErrRoleImmutable, http.StatusBadRequest, response.ErrRoleImmutable},
		{"score out of range", service.ErrScoreOutOfRange, http.StatusBadRequest, response.ErrScoreOutOfRange},

		{"unknown", errors.New("boom"), http.StatusInternalServerError, response.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			failFromError(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var body struct {
				Error *response.ErrorBody `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error == nil {
				t.Fatal("error body missing")
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
		})
	}
}
