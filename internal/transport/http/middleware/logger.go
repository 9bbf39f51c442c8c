package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one line per request. Path includes the raw query.
func RequestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		return fmt.Sprintf("Request: %s %s | %s | %d | %dms\n",
			p.Method,
			p.Path,
			p.ClientIP,
			p.StatusCode,
			p.Latency.Milliseconds(),
		)
	})
}
