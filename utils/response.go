package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StandardResponse is the body of every error response and of plain acknowledgements
type StandardResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK sends payload with 200
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created sends payload with 201
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// Message sends a 200 acknowledgement carrying only a message
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, StandardResponse{
		Status:  "success",
		Message: message,
	})
}

// Error sends a standardized error response
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, StandardResponse{
		Status:  "error",
		Message: message,
	})
}

// AbortWithError sends a standardized error response and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}

// RespondError maps err to its HTTP status and writes it. Errors that are not
// AppErrors, and internal ones, are logged and reported generically.
func RespondError(c *gin.Context, err error) {
	appErr := GetAppError(err)
	if appErr == nil {
		LogError("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		Error(c, http.StatusInternalServerError, ErrInternalServer)
		return
	}
	if appErr.Kind == KindInternal {
		LogError("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
		Error(c, appErr.Code, ErrInternalServer)
		return
	}
	Error(c, appErr.Code, appErr.Message)
}
