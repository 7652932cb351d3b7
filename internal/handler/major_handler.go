package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/response"
	"github.com/acadex/acadex-backend/internal/service"
	"github.com/acadex/acadex-backend/internal/validator"
)

// MajorHandler exposes the majors dictionary.
type MajorHandler struct {
	majorService *service.MajorService
}

// NewMajorHandler creates a new MajorHandler.
func NewMajorHandler(majorService *service.MajorService) *MajorHandler {
	return &MajorHandler{majorService: majorService}
}

// List handles GET /api/v1/admin/majors.
func (h *MajorHandler) List(c *gin.Context) {
	majors, err := h.majorService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"majors": majors})
}

// Get handles GET /api/v1/admin/majors/:id.
func (h *MajorHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	major, err := h.majorService.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"major": major})
}

// Create handles POST /api/v1/admin/majors.
func (h *MajorHandler) Create(c *gin.Context) {
	var req model.CreateMajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	major, err := h.majorService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"major": major})
}

// Update handles PUT /api/v1/admin/majors/:id.
func (h *MajorHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateMajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	major, err := h.majorService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"major": major})
}

// Delete handles DELETE /api/v1/admin/majors/:id.
func (h *MajorHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.majorService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "major deleted successfully"})
}
