package api

import (
	"errors"
	"net/http"

	"fittrack/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error to an HTTP status. Unexpected errors
// are attached to the context for the request logger and hidden from the
// client.
func respondWithError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		abortWithError(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrUserAlreadyExists), errors.Is(err, service.ErrAlreadyJoined):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
