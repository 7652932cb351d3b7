package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acadex/acadex-backend/internal/response"
	"github.com/acadex/acadex-backend/internal/service"
)

// failFromError maps service domain errors onto API error codes. Anything
// unrecognized is a 500.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrSessionInvalidated):
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
	case errors.Is(err, service.ErrNotEligible):
		response.Fail(c, http.StatusForbidden, response.ErrNotEligible)
	// Business-rule violations are 400s; 409 is reserved for duplicates.
	case errors.Is(err, service.ErrAttemptClosed):
		response.Fail(c, http.StatusBadRequest, response.ErrAttemptClosed)
	case errors.Is(err, service.ErrAttemptNotStarted):
		response.Fail(c, http.StatusBadRequest, response.ErrAttemptNotStarted)
	case errors.Is(err, service.ErrNotSubmitted):
		response.Fail(c, http.StatusBadRequest, response.ErrNotSubmitted)
	case errors.Is(err, service.ErrQuestionNotInExam):
		response.Fail(c, http.StatusBadRequest, response.ErrQuestionNotInExam)
	case errors.Is(err, service.ErrAttemptsExist):
		response.Fail(c, http.StatusBadRequest, response.ErrAttemptsExist)
	case errors.Is(err, service.ErrLastChoice):
		response.Fail(c, http.StatusBadRequest, response.ErrLastChoice)
	case errors.Is(err, service.ErrLastCorrectChoice):
		response.Fail(c, http.StatusBadRequest, response.ErrLastCorrectChoice)
	case errors.Is(err, service.ErrWrittenOnly):
		response.Fail(c, http.StatusBadRequest, response.ErrWrittenOnly)
	case errors.Is(err, service.ErrChoicesOnMCQOnly):
		response.Fail(c, http.StatusBadRequest, response.ErrChoicesOnMCQOnly)
	case errors.Is(err, service.ErrQuestionInUse):
		response.Fail(c, http.StatusBadRequest, response.ErrQuestionInUse)
	case errors.Is(err, service.ErrCourseHasExams):
		response.Fail(c, http.StatusBadRequest, response.ErrCourseHasExams)
	case errors.Is(err, service.ErrStatusTransition):
		response.Fail(c, http.StatusBadRequest, response.ErrStatusTransition)
	case errors.Is(err, service.ErrRoleImmutable):
		response.Fail(c, http.StatusBadRequest, response.ErrRoleImmutable)
	case errors.Is(err, service.ErrScoreOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrScoreOutOfRange)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// paramUUID parses a UUID path parameter, failing the request on bad input.
func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
