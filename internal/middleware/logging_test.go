package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/telemetry"
)

func TestRequestLoggerWritesLineAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	m := telemetry.New("test")

	r := gin.New()
	r.Use(RequestLogger(log, m))
	r.GET("/items/:id", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))
	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, "inside handler")
	assert.Contains(t, out, `"path":"/items/:id"`)
	assert.Contains(t, out, `"level":"warn"`)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestTotal.WithLabelValues("GET", "/items/:id", "418")))
}

func TestRequestIDReachesErrorBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop(), nil))
	r.GET("/fail", func(c *gin.Context) {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(HeaderRequestID, "req-7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"request_id":"req-7"`)
}
