package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanam-academy-backend/internal/delivery/http/response"
	"kanam-academy-backend/pkg/apperror"
	"kanam-academy-backend/pkg/logger"
)

const genericErrorMessage = "An unexpected error occurred. Please try again later."

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("request failed",
					zap.String("request_id", response.RequestID(c)),
					zap.Int("status", appErr.Code),
					zap.Error(appErr.Err),
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Log.Error("unhandled request error",
			zap.String("request_id", response.RequestID(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, genericErrorMessage)
	}
}
