package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okruhlystol/catalog/internal/core/model"
	log "github.com/sirupsen/logrus"
)

var (
	// errForbidden is returned when a token acts on behalf of another user.
	errForbidden = errors.New("token subject does not match user_id")

	errMissingUser = model.NewValidationError("user_id is required")
	errInvalidUser = model.NewValidationError("invalid user_id")
)

// writeError converts err into the public error taxonomy. Only unexpected errors are
// logged, and their detail never reaches the client.
func writeError(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "reason": verr.Reason})
	case errors.Is(err, model.ErrAlreadyExists):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "exists"})
	case errors.Is(err, model.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, errForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		log.WithError(err).
			WithField("method", c.Request.Method).
			WithField("path", c.FullPath()).
			Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
	}
}

// badRequest reports a request that could not even be decoded.
func badRequest(c *gin.Context, reason string) {
	writeError(c, model.NewValidationError(reason))
}
