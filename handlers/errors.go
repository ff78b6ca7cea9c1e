package handlers

import (
	"errors"
	"net/http"

	"officepool/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const internalErrorMessage = "Internal server error."

var errInvalidBody = service.NewInvalidInputError("Invalid request body.")

// RespondError writes the JSON error response for err.
// Domain errors carry their own message; anything else is logged and hidden.
func RespondError(c *gin.Context, err error) {
	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(statusForKind(domainErr.Kind), gin.H{"message": domainErr.Message})
		return
	}

	log.WithError(err).WithFields(log.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"message": internalErrorMessage})
}

func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, service.ErrNotFound),
		errors.Is(kind, service.ErrAlreadyJoined),
		errors.Is(kind, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(kind, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
