package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// RequestIDKey ключ идентификатора запроса в gin.Context
	RequestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// GinLoggerMiddleware пишет строку access-лога на каждый запрос
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		requestID := ensureRequestID(c)

		c.Next()

		status := c.Writer.Status()
		entry := eventForStatus(status).
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Dur("latency", time.Since(started))

		if query := c.Request.URL.RawQuery; query != "" {
			entry = entry.Str("query", query)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			entry = entry.Str("error", errs.String())
		}

		entry.Msg("HTTP request")
	}
}

// ensureRequestID берет X-Request-ID клиента или создает новый
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(RequestIDKey, requestID)
	c.Header(requestIDHeader, requestID)
	return requestID
}

func eventForStatus(status int) *zerolog.Event {
	switch {
	case status >= 500:
		return Error()
	case status >= 400:
		return Warn()
	default:
		return Info()
	}
}
