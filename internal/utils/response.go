package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes the uniform success envelope. Exactly one of text/error is
// populated per response, so payload must not carry an "error" key.
func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error writes the uniform failure envelope with the given status code.
func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}
