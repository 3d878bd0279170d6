package guard

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware aborts denied requests with 403 and the denial reason.
func Middleware(g *Guard, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := g.Check(c.Request)
		if !d.Allowed {
			logger.WarnContext(c.Request.Context(), "request denied",
				slog.String("path", c.Request.URL.Path),
				slog.String("reason", d.Reason),
				slog.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: " + d.Reason})
			return
		}
		c.Next()
	}
}
