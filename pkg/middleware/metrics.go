package middleware

import (
	"strconv"
	"time"

	"creatitube/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(service, c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
