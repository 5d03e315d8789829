package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/meetup-api/internal/application"
	"github.com/oksasatya/meetup-api/pkg/response"
)

// writeServiceError is the single boundary translating application error
// kinds into response outcomes. Anything unrecognized is an unexpected
// storage failure: logged with context, answered as a generic 500 so no
// internal detail leaks.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		response.Error[any](c, http.StatusBadRequest, "validation failed", verr.Details)
		return
	}

	var cerr *application.InvalidCategoriesError
	if errors.As(err, &cerr) {
		response.Error[any](c, http.StatusBadRequest, "invalid categories", gin.H{
			"invalid": cerr.Invalid,
			"allowed": cerr.Allowed,
		})
		return
	}

	switch {
	case errors.Is(err, application.ErrInvalidID):
		response.Error[any](c, http.StatusBadRequest, "invalid meetup id", nil)
	case errors.Is(err, application.ErrMeetupNotFound):
		response.Error[any](c, http.StatusNotFound, "meetup not found", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrAlreadyJoined):
		response.Error[any](c, http.StatusConflict, "already joined", nil)
	case errors.Is(err, application.ErrMeetupFull):
		response.Error[any](c, http.StatusConflict, "meetup is full", nil)
	case errors.Is(err, application.ErrJoinConflict):
		response.Error[any](c, http.StatusBadRequest, "could not join meetup", nil)
	case errors.Is(err, application.ErrDuplicateEmail):
		response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusBadRequest, "invalid credentials", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			}).Error("unexpected failure")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
