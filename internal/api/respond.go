package api

import (
	"github.com/gin-gonic/gin"

	"codesage_backend/internal/apperror"
)

// Error classifies err and writes the structured error body. The raw error
// text rides along in the detail field; handlers that must not leak detail
// (credential checks) substitute a generic error before calling this.
func Error(c *gin.Context, err error) {
	status, message := apperror.Classify(err)
	c.JSON(status, apperror.Response{
		Error:  message,
		Detail: err.Error(),
		Path:   c.Request.URL.Path,
	})
}

// AbortError is Error for middleware: it also stops the handler chain.
func AbortError(c *gin.Context, err error) {
	status, message := apperror.Classify(err)
	c.AbortWithStatusJSON(status, apperror.Response{
		Error:  message,
		Detail: err.Error(),
		Path:   c.Request.URL.Path,
	})
}
