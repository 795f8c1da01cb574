package api

import (
	"alcyxob/studio-admin/internal/logging"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDMiddleware makes sure every request carries an X-Request-ID.
// A caller-supplied ID is reused, otherwise one is generated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(logging.RequestIDHeader)
		if id == "" {
			id = fmt.Sprintf("rest-%s", uuid.New().String())
			c.Request.Header.Set(logging.RequestIDHeader, id)
		}
		c.Writer.Header().Set(logging.RequestIDHeader, id)
		c.Next()
	}
}

// RequestLoggerMiddleware writes one http_request line per request.
// Must run AFTER RequestIDMiddleware.
func RequestLoggerMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		entry := logging.LoggerWithContext(logger, c).WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    latency.String(),
			"latency_ns": latency.Nanoseconds(),
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		entry.Info("http_request")
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// abortWithInternalError logs the cause and hides it from the caller.
func abortWithInternalError(c *gin.Context, logger logrus.FieldLogger, err error, message string) {
	logging.LoggerWithContext(logger, c).WithError(err).Error(message)
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, message)
}

// deleteConfirmed reports whether the caller confirmed a destructive request.
func deleteConfirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}
