package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex-backend/internal/middleware"
	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/response"
	"github.com/acadex/acadex-backend/internal/service"
	"github.com/acadex/acadex-backend/internal/validator"
)

// GradingHandler exposes the doctor's grading endpoints.
type GradingHandler struct {
	gradingService *service.GradingService
}

// NewGradingHandler creates a new GradingHandler.
func NewGradingHandler(gradingService *service.GradingService) *GradingHandler {
	return &GradingHandler{gradingService: gradingService}
}

// ExamResults handles GET /api/v1/doctor/exams/:id/results.
func (h *GradingHandler) ExamResults(c *gin.Context) {
	examID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	results, err := h.gradingService.ExamResults(c.Request.Context(), examID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// AttemptDetail handles GET /api/v1/doctor/attempts/:attempt_id.
func (h *GradingHandler) AttemptDetail(c *gin.Context) {
	attemptID, ok := paramUUID(c, "attempt_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	attempt, answers, err := h.gradingService.AttemptDetail(c.Request.Context(), attemptID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": attempt, "answers": answers})
}

// GradeAnswer handles PUT /api/v1/doctor/attempts/:attempt_id/answers/:answer_id/grade.
func (h *GradingHandler) GradeAnswer(c *gin.Context) {
	attemptID, ok := paramUUID(c, "attempt_id")
	if !ok {
		return
	}
	answerID, ok := paramUUID(c, "answer_id")
	if !ok {
		return
	}

	var req model.GradeAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	answer, err := h.gradingService.GradeAnswer(c.Request.Context(), attemptID, answerID, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": answer})
}

// FinalizeGrade handles PUT /api/v1/doctor/attempts/:attempt_id/grade.
func (h *GradingHandler) FinalizeGrade(c *gin.Context) {
	attemptID, ok := paramUUID(c, "attempt_id")
	if !ok {
		return
	}

	var req model.FinalGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	attempt, err := h.gradingService.FinalizeGrade(c.Request.Context(), attemptID, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}
