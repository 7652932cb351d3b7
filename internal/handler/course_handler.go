package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/response"
	"github.com/acadex/acadex-backend/internal/service"
	"github.com/acadex/acadex-backend/internal/validator"
)

// CourseHandler exposes course management and assignment endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// parseInclude turns ?include=majors,doctors,students into typed options.
func parseInclude(raw string) model.CourseInclude {
	var inc model.CourseInclude
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case "majors":
			inc.Majors = true
		case "doctors":
			inc.Doctors = true
		case "students":
			inc.Students = true
		}
	}
	return inc
}

// List handles GET /api/v1/admin/courses?major_id=&page=&per_page=.
func (h *CourseHandler) List(c *gin.Context) {
	majorID := uuid.Nil
	if raw := c.Query("major_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		majorID = parsed
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	courses, pagination, err := h.courseService.List(c.Request.Context(), majorID, page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": courses}, pagination)
}

// Get handles GET /api/v1/admin/courses/:id?include=majors,doctors,students.
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.courseService.Get(c.Request.Context(), id, parseInclude(c.Query("include")))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": detail})
}

// Create handles POST /api/v1/admin/courses.
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// Update handles PUT /api/v1/admin/courses/:id.
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Delete handles DELETE /api/v1/admin/courses/:id.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}

// AssignDoctor handles POST /api/v1/admin/courses/:id/doctors/:user_id.
func (h *CourseHandler) AssignDoctor(c *gin.Context) {
	courseID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	doctorID, ok := paramUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.courseService.AssignDoctor(c.Request.Context(), doctorID, courseID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "doctor assigned successfully"})
}

// UnassignDoctor handles DELETE /api/v1/admin/courses/:id/doctors/:user_id.
func (h *CourseHandler) UnassignDoctor(c *gin.Context) {
	courseID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	doctorID, ok := paramUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.courseService.UnassignDoctor(c.Request.Context(), doctorID, courseID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "doctor unassigned successfully"})
}

// EnrollStudent handles POST /api/v1/admin/courses/:id/students/:user_id.
func (h *CourseHandler) EnrollStudent(c *gin.Context) {
	courseID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	studentID, ok := paramUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.courseService.EnrollStudent(c.Request.Context(), studentID, courseID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "student enrolled successfully"})
}

// UnenrollStudent handles DELETE /api/v1/admin/courses/:id/students/:user_id.
func (h *CourseHandler) UnenrollStudent(c *gin.Context) {
	courseID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	studentID, ok := paramUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.courseService.UnenrollStudent(c.Request.Context(), studentID, courseID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "student unenrolled successfully"})
}
