package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"signupservice/internal/infrastructure/metrics"
)

// Prometheus labels requests by route template, never by raw path, so
// activity names do not blow up label cardinality.
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
