package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"itemsvc/internal/metrics"
)

// Metrics records every request under its route pattern rather than the raw path.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
