package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Observer receives one observation per handled request.
type Observer interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
}

// Middleware records request counts and latencies. The route template
// is used as the path label so parameterized routes do not explode
// cardinality.
func Middleware(observer Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
