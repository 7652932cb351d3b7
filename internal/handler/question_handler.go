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

// QuestionHandler exposes the doctor's question bank.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// List handles GET /api/v1/doctor/questions.
func (h *QuestionHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	questions, err := h.questionService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Get handles GET /api/v1/doctor/questions/:id.
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	question, err := h.questionService.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Create handles POST /api/v1/doctor/questions.
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	question, err := h.questionService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// Update handles PUT /api/v1/doctor/questions/:id.
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	question, err := h.questionService.Update(c.Request.Context(), id, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Delete handles DELETE /api/v1/doctor/questions/:id.
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.questionService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "question deleted successfully"})
}

// AddChoice handles POST /api/v1/doctor/questions/:id/choices.
func (h *QuestionHandler) AddChoice(c *gin.Context) {
	questionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req model.CreateChoiceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	choice, err := h.questionService.AddChoice(c.Request.Context(), questionID, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"choice": choice})
}

// UpdateChoice handles PUT /api/v1/doctor/questions/:id/choices/:choice_id.
func (h *QuestionHandler) UpdateChoice(c *gin.Context) {
	questionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	choiceID, ok := paramUUID(c, "choice_id")
	if !ok {
		return
	}

	var req model.UpdateChoiceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	choice, err := h.questionService.UpdateChoice(c.Request.Context(), questionID, choiceID, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"choice": choice})
}

// DeleteChoice handles DELETE /api/v1/doctor/questions/:id/choices/:choice_id.
func (h *QuestionHandler) DeleteChoice(c *gin.Context) {
	questionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	choiceID, ok := paramUUID(c, "choice_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.questionService.DeleteChoice(c.Request.Context(), questionID, choiceID, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "choice deleted successfully"})
}
