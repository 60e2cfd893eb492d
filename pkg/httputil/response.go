package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookdesk/booking-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithMessage sends a success response with a message and data
func RespondWithMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// RespondWithError sends an error response. Unclassified failures surface as a
// generic 500 so internals never leak to the caller.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		c.JSON(appErr.StatusCode(), Response{
			Status:  "error",
			Message: appErr.Message,
		})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Response{
		Status:  "error",
		Message: "server error",
	})
}
