package httperr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create appointment: %w", ErrBusiness("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "service_not_found"))

	code, ok := BusinessCode(err)
	assert.True(t, ok)
	assert.Equal(t, "time_conflict", code)

	_, ok = BusinessCode(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestPostgresErrorCodes(t *testing.T) {
	excl := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	other := &pgconn.PgError{Code: "23505"}

	assert.True(t, IsExclusionConflict(excl))
	assert.False(t, IsExclusionConflict(other))
	assert.False(t, IsExclusionConflict(fmt.Errorf("boom")))
}

func TestWriteEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Write(c, http.StatusConflict, "time_conflict", "Conflito de horário.")

	assert.Equal(t, http.StatusConflict, w.Code)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "time_conflict", body.Code)
	assert.Equal(t, "Conflito de horário.", body.Message)
	assert.Empty(t, body.RequestID)
}

func TestAbortStopsChainAndEchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	reached := false
	r.GET("/x",
		func(c *gin.Context) {
			c.Set(ContextRequestID, "req-42")
			Abort(c, http.StatusUnauthorized, "invalid_token", "Não autorizado.")
		},
		func(c *gin.Context) { reached = true },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_token", body.Code)
	assert.Equal(t, "req-42", body.RequestID)
}
