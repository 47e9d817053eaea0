package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerHeader(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rec := httptest.NewRecorder()
	rec.Header().Set(echo.HeaderServer, "Echo")

	h := ServerHeader()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))

	assert.Empty(t, rec.Header().Get(echo.HeaderServer))
}

func TestSkipPaths(t *testing.T) {
	t.Parallel()

	skipper := SkipPaths("/api/health")
	e := echo.New()

	tests := []struct {
		target string
		want   bool
	}{
		{"/api/health", true},
		{"/api/health?foo=bar", true},
		{"/api/health/", false},
		{"/api", false},
	}

	for _, tt := range tests {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, tt.target, nil), httptest.NewRecorder())
		assert.Equal(t, tt.want, skipper(c), tt.target)
	}
}
