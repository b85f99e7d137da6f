package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const corsAllowedMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

// corsMiddleware allows cross-origin calls with credentials. With "*" in the
// allow list every origin is accepted and echoed back.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		headers := c.Writer.Header()
		if resolved := resolveOrigin(origin, allowed); resolved != "" {
			headers.Set("Access-Control-Allow-Origin", resolved)
			if resolved != "*" {
				headers.Set("Access-Control-Allow-Credentials", "true")
				headers.Add("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			headers.Set("Access-Control-Allow-Methods", corsAllowedMethods)
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				headers.Set("Access-Control-Allow-Headers", requested)
			}
			headers.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// resolveOrigin returns the value for Access-Control-Allow-Origin, or "" when
// the origin is not allowed.
func resolveOrigin(requestOrigin string, allowed []string) string {
	for _, candidate := range allowed {
		if candidate == "*" {
			if requestOrigin == "" {
				return "*"
			}
			return requestOrigin
		}
		if requestOrigin != "" && strings.EqualFold(candidate, requestOrigin) {
			return requestOrigin
		}
	}
	return ""
}
