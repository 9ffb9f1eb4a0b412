package response

import (
	"github.com/gin-gonic/gin"
)

// MessageBody is the plain {"message": ...} reply used by most endpoints.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody carries a message plus optional error detail.
type ErrorBody struct {
	Message string `json:"message"`
	Error   any    `json:"error,omitempty"`
}

// InternalError is the only detail sent to clients for server-side faults.
const InternalError = "internal server error"

// JSON writes data as-is with the given status.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message writes {"message": msg}.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageBody{Message: msg})
}

// Error writes {"message": msg, "error": detail}; detail is omitted when nil.
func Error(c *gin.Context, status int, msg string, detail any) {
	c.JSON(status, ErrorBody{Message: msg, Error: detail})
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(c *gin.Context, status int, msg string, detail any) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: msg, Error: detail})
}
