package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/util/metrics"
)

// Metrics records every request by its route template, so /parties/3/edit
// and /parties/4/edit share a series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
