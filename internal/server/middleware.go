package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	fallbackKey     = "fallback"
)

// fallback is what a route answers if its handler panics
type fallback struct {
	status int
	body   func(msg string) any
}

func setFallback(c *gin.Context, status int, body func(msg string) any) {
	c.Set(fallbackKey, fallback{status: status, body: body})
}

// requestID tags every request with an id, reusing the caller's if given
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// instrument records request counts and latency per route
func instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.HTTPRequest(handler, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// recoverJSON turns a panic into the route's zero-valued JSON body
func recoverJSON() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		msg := fmt.Sprintf("internal error: %v", recovered)
		logger.Error("Recovered from panic", logger.Fields{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(requestIDKey),
			"error":      msg,
		})

		if v, ok := c.Get(fallbackKey); ok {
			if fb, ok := v.(fallback); ok {
				c.AbortWithStatusJSON(fb.status, fb.body(msg))
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
	})
}
