package response

import (
	"github.com/gin-gonic/gin"
)

// OKResponse is returned when a submission has been delivered
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse carries a user-facing error message
type ErrorResponse struct {
	Error string `json:"error"`
}

// OK sends {"ok": true}
func OK(c *gin.Context, code int) {
	c.JSON(code, OKResponse{OK: true})
}

// JSON sends data as-is
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// RequestID returns the id assigned by the RequestID middleware, if any.
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
