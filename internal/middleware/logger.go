package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger - gin.Logger с request id в каждой строке
func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		return fmt.Sprintf("[GIN] %s | %3d | %13v | %15s | %-7s %#v | %v %s\n",
			p.TimeStamp.Format(time.RFC3339),
			p.StatusCode,
			p.Latency,
			p.ClientIP,
			p.Method,
			p.Path,
			p.Keys[requestIDKey],
			p.ErrorMessage,
		)
	})
}
