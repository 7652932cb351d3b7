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

// StudentHandler exposes the student portal: courses, exams, attempts, results.
type StudentHandler struct {
	attemptService *service.AttemptService
	courseService  *service.CourseService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(attemptService *service.AttemptService, courseService *service.CourseService) *StudentHandler {
	return &StudentHandler{attemptService: attemptService, courseService: courseService}
}

// ListCourses handles GET /api/v1/student/courses.
func (h *StudentHandler) ListCourses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courses, err := h.courseService.ListForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// AvailableExams handles GET /api/v1/student/exams/available.
func (h *StudentHandler) AvailableExams(c *gin.Context) {
	claims := middleware.GetClaims(c)
	exams, err := h.attemptService.Available(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// UpcomingExams handles GET /api/v1/student/exams/upcoming.
func (h *StudentHandler) UpcomingExams(c *gin.Context) {
	claims := middleware.GetClaims(c)
	exams, err := h.attemptService.Upcoming(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// StartAttempt handles POST /api/v1/student/exams/:exam_id/start. Starting
// twice re-enters the existing attempt with the original clock.
func (h *StudentHandler) StartAttempt(c *gin.Context) {
	examID, ok := paramUUID(c, "exam_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.attemptService.Start(c.Request.Context(), examID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Paper handles GET /api/v1/student/exams/:exam_id/paper.
func (h *StudentHandler) Paper(c *gin.Context) {
	examID, ok := paramUUID(c, "exam_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	paper, err := h.attemptService.Paper(c.Request.Context(), examID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// SaveAnswer handles PUT /api/v1/student/exams/:exam_id/questions/:question_id/answer.
func (h *StudentHandler) SaveAnswer(c *gin.Context) {
	examID, ok := paramUUID(c, "exam_id")
	if !ok {
		return
	}
	questionID, ok := paramUUID(c, "question_id")
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	answer, err := h.attemptService.SaveAnswer(c.Request.Context(), examID, questionID, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": answer})
}

// SubmitAttempt handles POST /api/v1/student/exams/:exam_id/submit.
func (h *StudentHandler) SubmitAttempt(c *gin.Context) {
	examID, ok := paramUUID(c, "exam_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	attempt, err := h.attemptService.Submit(c.Request.Context(), examID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// Results handles GET /api/v1/student/results.
func (h *StudentHandler) Results(c *gin.Context) {
	claims := middleware.GetClaims(c)
	results, err := h.attemptService.Results(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// ResultDetail handles GET /api/v1/student/results/:attempt_id.
func (h *StudentHandler) ResultDetail(c *gin.Context) {
	attemptID, ok := paramUUID(c, "attempt_id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	attempt, breakdown, err := h.attemptService.ResultDetail(c.Request.Context(), attemptID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": attempt, "answers": breakdown})
}
