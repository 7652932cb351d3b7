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

// ExamHandler exposes the doctor's exam authoring endpoints.
type ExamHandler struct {
	examService   *service.ExamService
	courseService *service.CourseService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, courseService *service.CourseService) *ExamHandler {
	return &ExamHandler{examService: examService, courseService: courseService}
}

// ListCourses handles GET /api/v1/doctor/courses.
func (h *ExamHandler) ListCourses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courses, err := h.courseService.ListForDoctor(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// List handles GET /api/v1/doctor/exams.
func (h *ExamHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	exams, err := h.examService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// Get handles GET /api/v1/doctor/exams/:id.
func (h *ExamHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	exam, err := h.examService.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Create handles POST /api/v1/doctor/exams.
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	exam, err := h.examService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// Update handles PUT /api/v1/doctor/exams/:id.
func (h *ExamHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	exam, err := h.examService.Update(c.Request.Context(), id, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Delete handles DELETE /api/v1/doctor/exams/:id.
func (h *ExamHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.examService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "exam deleted successfully"})
}

// ListQuestions handles GET /api/v1/doctor/exams/:id/questions.
func (h *ExamHandler) ListQuestions(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	questions, err := h.examService.ListQuestions(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// AttachQuestion handles POST /api/v1/doctor/exams/:id/questions.
func (h *ExamHandler) AttachQuestion(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req model.AttachQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	eq, err := h.examService.AttachQuestion(c.Request.Context(), id, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam_question": eq})
}

// DetachQuestion handles DELETE /api/v1/doctor/exams/:id/questions/:eq_id.
func (h *ExamHandler) DetachQuestion(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	eqID, ok := paramUUID(c, "eq_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.examService.DetachQuestion(c.Request.Context(), id, eqID, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "question removed successfully"})
}
