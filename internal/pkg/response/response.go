package response

import "github.com/gin-gonic/gin"

// Success writes data as the bare response body.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, gin.H{
		"error":   message,
		"details": details,
	})
}
