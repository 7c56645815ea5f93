package util

import (
	"github.com/gin-gonic/gin"
)

// Error aborts the request with a short plain-text message.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.String(httpStatus, msg)
	c.Abort()
}

// Message writes {"message": msg}, plus any extra fields.
func Message(c *gin.Context, httpStatus int, msg string, extra gin.H) {
	body := gin.H{"message": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(httpStatus, body)
}
