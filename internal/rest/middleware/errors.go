package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/hometuition/hometuition/internal/errors"
)

// ErrorHandler renders the first error attached to the gin context as a
// JSON body with the status derived from the error's mark.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors[0].Err
		c.JSON(statusCode(err), ierr.NewErrorResponse(err))
	}
}

func statusCode(err error) int {
	switch {
	case ierr.IsValidation(err):
		return http.StatusBadRequest
	case ierr.IsNotFound(err):
		return http.StatusNotFound
	case ierr.IsAlreadyExists(err):
		return http.StatusConflict
	case ierr.IsInvalidOperation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
