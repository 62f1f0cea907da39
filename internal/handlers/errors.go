package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/bug-tracking-api/internal/errors"
	"github.com/yukikurage/bug-tracking-api/internal/services"
)

// respondServiceError is the single place service error kinds become
// transport-facing status codes. Unknown faults are logged with context and
// surfaced as an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBugNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrAlreadyResolved),
		errors.Is(err, services.ErrBugReopened):
		apierrors.InvalidOperation(c, err.Error())

	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrAssigneeRequired),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrResolvedDateMismatch),
		errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrEditConflict),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())

	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled service error")
		apierrors.InternalError(c, "")
	}
}
