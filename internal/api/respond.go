package api

import (
	"net/http"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/logger"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string, detail interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: message, Error: detail})
}

// StatusFor maps an error kind to its HTTP status. Conflicts are reported
// as 400 to keep the public booking contract.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict, apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an error envelope. Internal errors are logged,
// reported to Sentry and hidden behind a generic message.
func RespondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err.Error(),
		)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		Fail(c, http.StatusInternalServerError, internalErrorMessage, nil)
		return
	}

	msg := apperr.Message(err, internalErrorMessage)
	Fail(c, StatusFor(kind), msg, msg)
}
