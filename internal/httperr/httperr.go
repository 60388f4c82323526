package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextRequestID is the gin key the request logger stores the request id under.
const ContextRequestID = "requestID"

type HTTPError struct {
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func body(c *gin.Context, code, message string) HTTPError {
	return HTTPError{
		Code:      code,
		Message:   message,
		RequestID: c.GetString(ContextRequestID),
	}
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, body(c, code, message))
}

// Abort writes the error and stops the handler chain. Middleware uses it.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, body(c, code, message))
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func ServiceUnavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}
