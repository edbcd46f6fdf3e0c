package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"tours/internal/metrics"
)

// Metrics records request count, latency and in-flight requests. Paths are
// labelled by route template to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPMetrics(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
