package logger

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestIDHeader is read from incoming requests and always set on responses
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// AccessLog is a gin middleware logging one line per request
// a request ID is generated when the client did not send one, it is stored in the request context
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()

		entry := FromContext(c.Request.Context()).WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"query":   c.Request.URL.RawQuery,
			"status":  c.Writer.Status(),
			"bytes":   c.Writer.Size(),
			"latency": time.Since(start).String(),
		})

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request done")
		case status >= http.StatusBadRequest:
			entry.Warn("request done")
		default:
			entry.Info("request done")
		}
	}
}

// WithRequestID returns a copy of ctx carrying the request ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// FromContext returns a log entry tagged with the request ID of ctx, if any
func FromContext(ctx context.Context) *log.Entry {
	entry := log.NewEntry(log.StandardLogger())
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		entry = entry.WithField("requestID", requestID)
	}

	return entry
}
