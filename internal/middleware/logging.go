package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/telemetry"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger writes one line per request and records its metrics.
func RequestLogger(log zerolog.Logger, m *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Writer.Header().Set(HeaderRequestID, reqID)
		c.Set(httperr.ContextRequestID, reqID)

		reqLog := log.With().Str("request_id", reqID).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()

		m.ObserveRequest(c.Request.Method, path, status, elapsed)

		ev := reqLog.Info()
		if status >= 500 {
			ev = reqLog.Error()
		} else if status >= 400 {
			ev = reqLog.Warn()
		}

		if companyID, ok := c.Get(ContextCompanyID); ok {
			ev = ev.Interface("company_id", companyID)
		}

		ev.Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("request")
	}
}
