package server

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestID は各レスポンスに一意のリクエストIDを付与するミドルウェア
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-Id", uuid.NewString())
		c.Next()
	}
}

// corsHeaders はすべてのレスポンスへCORSヘッダーを付与するミドルウェア
// 404を含むあらゆるレスポンスに無条件で適用される
func corsHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}

// accessLog はリクエストごとに1行のアクセスログを出力するミドルウェア
// favicon.ico と .map を含むパスは配信はするがログを抑制する
func accessLog(out io.Writer) gin.HandlerFunc {
	logger := log.New(out, "", 0)
	return func(c *gin.Context) {
		requestPath := c.Request.URL.Path

		c.Next()

		if suppressLog(requestPath) {
			return
		}

		logger.Printf("[%s] %s %s %d",
			time.Now().Format(time.RFC3339),
			c.Request.Method,
			requestPath,
			c.Writer.Status())
	}
}

// suppressLog はログを抑制すべきパスか判定する
func suppressLog(requestPath string) bool {
	return strings.Contains(requestPath, "favicon.ico") ||
		strings.Contains(requestPath, ".map")
}
