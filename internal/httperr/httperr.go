package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// statusByKind maps engine error kinds to HTTP statuses. Validation and
// capacity failures are caller mistakes; conflicts, in-use and stale
// transitions mean the caller should re-fetch and retry deliberately.
var statusByKind = map[bookingerr.Kind]int{
	bookingerr.KindValidation:        http.StatusBadRequest,
	bookingerr.KindCapacity:          http.StatusBadRequest,
	bookingerr.KindNotFound:          http.StatusNotFound,
	bookingerr.KindConflict:          http.StatusConflict,
	bookingerr.KindInUse:             http.StatusConflict,
	bookingerr.KindInvalidTransition: http.StatusConflict,
}

// FromDomain writes a booking engine error with its mapped status, falling
// back to 500 for anything without a kind.
func FromDomain(c *gin.Context, err error, fallbackCode string) {
	var be *bookingerr.Error
	if errors.As(err, &be) {
		status, known := statusByKind[be.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		Write(c, status, be.Code, be.Message)
		return
	}

	Internal(c, fallbackCode, "internal error")
}
