package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultOrigins are the local web and Expo dev-server origins.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8081",
	"http://localhost:19006",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:8081",
	"http://127.0.0.1:19006",
}

// CORS allows DefaultOrigins plus extra.
// e.g. CORS_ALLOWED_ORIGINS=http://192.168.1.240:8081
func CORS(extra ...string) gin.HandlerFunc {
	allowedOrigins := make(map[string]bool, len(DefaultOrigins)+len(extra))
	for _, o := range DefaultOrigins {
		allowedOrigins[o] = true
	}
	for _, o := range extra {
		if o != "" {
			allowedOrigins[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" && allowedOrigins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept, Origin, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
