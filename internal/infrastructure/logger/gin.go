package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Keys the auth middleware sets on the gin context once a token is accepted
const (
	ginUserIDKey = "jwt_user_id"
	ginRoleKey   = "jwt_role"
)

// GinMiddleware writes one access log line per stub API request. It expects
// the RequestID middleware to run first.
func GinMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		reqLogger := base.With(
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		)
		c.Set("logger", reqLogger)
		c.Request = req.WithContext(WithContext(req.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("body_size", c.Writer.Size()),
		}
		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
		}
		if req.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", req.URL.RawQuery))
		}
		if uid := c.GetString(ginUserIDKey); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		if role, ok := c.Get(ginRoleKey); ok {
			fields = append(fields, zap.Any("role", role))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		log := reqLogger.Info
		if status >= http.StatusInternalServerError {
			log = reqLogger.Error
		} else if status >= http.StatusBadRequest {
			log = reqLogger.Warn
		}
		log("Request handled", fields...)
	}
}

// Recovery turns a handler panic into a bare 500
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				base.Error("Handler panicked",
					zap.String("request_id", c.GetString("request_id")),
					zap.String("route", c.FullPath()),
					zap.Any("panic", rec),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GetGinLogger returns the request logger, or a no-op logger outside a request
func GetGinLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Value("logger").(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
