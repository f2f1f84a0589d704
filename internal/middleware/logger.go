package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/cperes/tickerpulse/internal/logger"
	"github.com/cperes/tickerpulse/internal/metrics"
	"github.com/gin-gonic/gin"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available), and hands the same
// request-scoped latency measurement to the metrics recorder.
//
// The recorder may be nil (e.g. in tests that only care about logs); the
// measurement is then dropped. Latency lives only for the duration of the
// request; there is no process-wide running average.
//
// Example log output:
//
//	request_id=123e4567-... method=GET path=/api/v1/tickers status=200 latency_ms=15
func RequestLogger(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		rid, _ := c.Get(RequestIDKey)

		logger.L().Info().
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")

		if rec != nil {
			rec.RecordRequest(method, path, status, latency.Seconds())
		}
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client represents a rate-limited client with request count and last seen timestamp.
type client struct {
	lastSeen time.Time
	count    int
}

// In-memory store for rate limiting.
// NOTE: for multi-instance deployments this would need a shared store.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// RateLimiter limits the number of requests per client IP using a fixed
// window (default: 60 requests per minute). Exceeding the limit returns
// HTTP 429 Too Many Requests.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.lastSeen) > window {
			cl = &client{lastSeen: now, count: 1}
			clients[ip] = cl
		} else {
			cl.count++
			cl.lastSeen = now
		}
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
