package metrics

import (
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GinMiddleware records request count and latency per route.
// Routes listed in skip (probes, the scrape endpoint) are not recorded.
func GinMiddleware(skip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if slices.Contains(skip, route) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		if route == "" {
			route = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestDuration.WithLabelValues(route, c.Request.Method, status).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, status).Inc()
	}
}
