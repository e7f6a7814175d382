// internal/api/errors.go
package api

import (
	"errors"
	"fittrack/backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer errors onto HTTP statuses and the
// symbolic error codes of the API contract. Unrecognized errors become a
// generic internal failure; for cascade operations that means "possibly
// partially applied" and the client should re-fetch.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		abortWithCode(c, http.StatusForbidden, CodePermissionDenied, err.Error())
	case errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, service.ErrWeekNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrSetNotFound):
		abortWithCode(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, service.ErrPathMismatch):
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, err.Error())
	default:
		abortWithCode(c, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}
