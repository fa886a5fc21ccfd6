package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/seo-page-analyzer/backend/logging"
)

// VisitorTracking records each client IP against the statistics
// singleton. Analysis outcomes are tracked by the analyze handler
// itself, which knows the score.
func VisitorTracking(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats.TrackVisitor(c.ClientIP())
		c.Next()
	}
}
