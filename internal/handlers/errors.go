package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// abortWithError writes the JSON error payload. Server-side failures are
// additionally reported on the active span with route context; client
// errors only tag it.
func abortWithError(c *gin.Context, status int, reason string) {
	span := trace.SpanFromContext(c.Request.Context())
	span.SetAttributes(
		attribute.String("http.route", c.FullPath()),
		attribute.String("error.reason", reason),
	)
	if status >= http.StatusInternalServerError {
		span.RecordError(errors.New(reason))
		span.SetStatus(codes.Error, reason)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": reason})
}

// panicHandler turns a recovered panic into a 500 and reports it like any
// other unhandled failure.
func panicHandler(logger *zap.SugaredLogger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered interface{}) {
		reason := fmt.Sprintf("%v", recovered)

		span := trace.SpanFromContext(c.Request.Context())
		span.RecordError(fmt.Errorf("panic: %s", reason))
		span.SetStatus(codes.Error, reason)

		logger.Errorw("💥 panic recovered",
			"route", c.FullPath(),
			"panic", reason,
			"request_id", c.GetString(ContextRequestID),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
