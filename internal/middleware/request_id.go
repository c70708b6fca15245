package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader リクエストIDを受け渡すヘッダー
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey gin.Context に保存するキー
	RequestIDKey = "request_id"
)

// RequestID リクエストIDを付与する。クライアントが指定した値はそのまま使う
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID gin.Context からリクエストIDを取得
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
