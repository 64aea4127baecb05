package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMiddleware(t *testing.T, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/guilds/g1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorsTotal.Reset()
	return rec, Middleware()(handler)(c)
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	require.NoError(t, counter.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMiddleware_CategorizedError(t *testing.T) {
	rec, err := runMiddleware(t, func(c echo.Context) error {
		return NotFoundError("guild not found").WithField("guild_id", "g1")
	})
	require.NoError(t, err, "the middleware consumes categorized errors")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"type":"not_found","error":"guild not found","fields":{"guild_id":"g1"}}`, rec.Body.String())
	assert.Equal(t, 1.0, counterValue(t, HTTPErrorsTotal.WithLabelValues("not_found")))
}

func TestMiddleware_PlainErrorStaysGeneric(t *testing.T) {
	rec, err := runMiddleware(t, func(c echo.Context) error {
		return fmt.Errorf("open /data/users.json: permission denied")
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"internal server error"`)
	assert.NotContains(t, rec.Body.String(), "permission denied", "internal detail never reaches the client")
	assert.Equal(t, 1.0, counterValue(t, HTTPErrorsTotal.WithLabelValues("internal")))
}

func TestMiddleware_EchoErrorPassesThrough(t *testing.T) {
	httpErr := echo.NewHTTPError(http.StatusForbidden, "invalid csrf token")
	_, err := runMiddleware(t, func(c echo.Context) error {
		return httpErr
	})

	assert.Equal(t, httpErr, err, "echo-native errors keep their own handling")
	assert.Equal(t, 1.0, counterValue(t, HTTPErrorsTotal.WithLabelValues("validation")))
}

func TestMiddleware_SuccessUntouched(t *testing.T) {
	rec, err := runMiddleware(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, 0.0, counterValue(t, HTTPErrorsTotal.WithLabelValues("internal")))
}

func TestTypeForStatus(t *testing.T) {
	tests := []struct {
		code int
		want ErrorType
	}{
		{http.StatusBadRequest, TypeValidation},
		{http.StatusForbidden, TypeValidation},
		{http.StatusNotFound, TypeNotFound},
		{http.StatusBadGateway, TypeExternal},
		{http.StatusServiceUnavailable, TypeExternal},
		{http.StatusInternalServerError, TypeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, typeForStatus(tt.code), "status %d", tt.code)
	}
}
