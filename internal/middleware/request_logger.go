package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"Mergington-App/internal/logger"
	"Mergington-App/internal/metrics"
)

// RequestLogger リクエストごとにアクセスログを出し、処理時間をメトリクスに記録する
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(latency.Seconds())

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      route,
			"status":     status,
			"latency_ms": latency.Milliseconds(),
			"request_id": GetRequestID(c),
			"client_ip":  c.ClientIP(),
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields)
		case status >= 400:
			log.Warn("request rejected", fields)
		default:
			log.Info("request handled", fields)
		}
	}
}
