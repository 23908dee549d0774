package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/pkg/metrics"
)

// Metrics records request counts and latency for every handled request. The
// route template is used as the path label so IDs do not explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
