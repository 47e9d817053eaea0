package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstrumentedEcho(m *Metrics) *echo.Echo {
	e := echo.New()
	e.Use(m.Middleware())

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{"status":"ok"}`))
	})
	e.GET("/api/items/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad")
	})

	return e
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("성공 요청 기록", func(t *testing.T) {
		t.Parallel()

		m := New()
		e := newInstrumentedEcho(m)

		for i := 0; i < 3; i++ {
			rec := serve(e, http.MethodGet, "/api/health?foo=bar")
			require.Equal(t, http.StatusOK, rec.Code)
		}

		assert.Equal(t, 3.0, promtestutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/health", "200")))
		assert.Equal(t, 1, promtestutil.CollectAndCount(m.requestDuration))
	})

	t.Run("라우트 패턴을 레이블로 사용", func(t *testing.T) {
		t.Parallel()

		m := New()
		e := newInstrumentedEcho(m)

		serve(e, http.MethodGet, "/api/items/1")
		serve(e, http.MethodGet, "/api/items/2")

		assert.Equal(t, 2.0, promtestutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/items/:id", "400")))
		assert.Equal(t, 1, promtestutil.CollectAndCount(m.requestsTotal), "ID마다 별도의 시계열이 생기면 안 됩니다")
	})

	t.Run("일치하지 않는 경로", func(t *testing.T) {
		t.Parallel()

		m := New()
		e := newInstrumentedEcho(m)

		rec := serve(e, http.MethodGet, "/does/not/exist")
		require.Equal(t, http.StatusNotFound, rec.Code)
		serve(e, http.MethodGet, "/another/random/path")

		assert.Equal(t, 2.0, promtestutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, unmatchedPath, "404")))
	})
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New()
	serve(newInstrumentedEcho(m), http.MethodGet, "/api/health")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/api/health",status="200"} 1`)
	assert.Contains(t, string(body), "http_request_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_Independent(t *testing.T) {
	t.Parallel()

	// 전용 레지스트리를 사용하므로 여러 번 생성해도 패닉이 발생하지 않아야 합니다.
	assert.NotPanics(t, func() {
		a, b := New(), New()
		assert.NotSame(t, a.Registry(), b.Registry())
	})
}
