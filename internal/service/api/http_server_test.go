package api

import (
	"net/http"
	"strings"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	"github.com/darkkaiser/contenthub-server/internal/service/api/handler/system"
	"github.com/darkkaiser/contenthub-server/internal/service/metrics"
	"github.com/darkkaiser/contenthub-server/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const healthBody = `{"status":"ok"}`

// oversizedBody 본문 크기 제한(128K)을 넘는 요청 본문
var oversizedBody = strings.Repeat("a", 200<<10)

func newTestServer(cfg HTTPServerConfig) *echo.Echo {
	if cfg.AllowOrigins == nil {
		cfg.AllowOrigins = []string{"*"}
	}

	e := NewHTTPServer(cfg)
	RegisterRoutes(e, system.New())
	return e
}

func doRequest(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	if req.RemoteAddr == "" {
		req.RemoteAddr = "10.1.1.1:4321"
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewHTTPServer_Settings(t *testing.T) {
	t.Parallel()

	e := NewHTTPServer(HTTPServerConfig{Debug: true})

	assert.True(t, e.Debug)
	assert.True(t, e.HideBanner)
	assert.Equal(t, constants.DefaultReadTimeout, e.Server.ReadTimeout)
	assert.Equal(t, constants.DefaultReadHeaderTimeout, e.Server.ReadHeaderTimeout)
	assert.Equal(t, constants.DefaultWriteTimeout, e.Server.WriteTimeout)
	assert.Equal(t, constants.DefaultIdleTimeout, e.Server.IdleTimeout)
}

func TestNewHTTPServer_HealthEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(HTTPServerConfig{})

	tests := []struct {
		name   string
		target string
		header map[string]string
		body   string
	}{
		{"기본 요청", "/api/health", nil, ""},
		{"쿼리 문자열", "/api/health?foo=bar", nil, ""},
		{"임의의 헤더", "/api/health", map[string]string{"X-Custom": "1", echo.HeaderAccept: "text/html"}, ""},
		{"크기 제한을 넘는 본문", "/api/health", nil, oversizedBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.target, strings.NewReader(tt.body))
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rec := doRequest(e, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, healthBody, rec.Body.String())
			assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
		})
	}
}

func TestNewHTTPServer_Idempotent(t *testing.T) {
	t.Parallel()

	e := newTestServer(HTTPServerConfig{})

	for i := 0; i < 5; i++ {
		rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, healthBody, rec.Body.String())
	}
}

func TestNewHTTPServer_Headers(t *testing.T) {
	t.Parallel()

	t.Run("Request ID와 보안 헤더", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(newTestServer(HTTPServerConfig{}), httptest.NewRequest(http.MethodGet, "/api/health", nil))

		_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
		assert.NoError(t, err, "Request ID는 UUID 형식이어야 합니다")
		assert.Empty(t, rec.Header().Get(echo.HeaderServer))
		assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
		assert.Empty(t, rec.Header().Get(echo.HeaderStrictTransportSecurity))
	})

	t.Run("TLS 환경의 HSTS", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set(echo.HeaderXForwardedProto, "https")

		rec := doRequest(newTestServer(HTTPServerConfig{EnableHSTS: true}), req)
		assert.Contains(t, rec.Header().Get(echo.HeaderStrictTransportSecurity), "max-age=31536000")
	})

	t.Run("CORS", func(t *testing.T) {
		t.Parallel()

		e := newTestServer(HTTPServerConfig{AllowOrigins: []string{"https://example.com"}})

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set(echo.HeaderOrigin, "https://example.com")
		rec := doRequest(e, req)
		assert.Equal(t, "https://example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

		req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set(echo.HeaderOrigin, "https://evil.example")
		rec = doRequest(e, req)
		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}

func TestNewHTTPServer_Errors(t *testing.T) {
	t.Parallel()

	t.Run("등록되지 않은 경로", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(newTestServer(HTTPServerConfig{}), httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"result_code":404,"message":"요청한 리소스를 찾을 수 없습니다"}`, rec.Body.String())
	})

	t.Run("본문 크기 초과", func(t *testing.T) {
		t.Parallel()

		e := newTestServer(HTTPServerConfig{})
		e.POST("/api/upload", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

		rec := doRequest(e, httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(oversizedBody)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.JSONEq(t, `{"result_code":413,"message":"요청 본문이 허용된 크기를 초과했습니다"}`, rec.Body.String())
	})

	t.Run("허용되지 않은 메서드", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(newTestServer(HTTPServerConfig{}), httptest.NewRequest(http.MethodPost, "/api/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.JSONEq(t, `{"result_code":405,"message":"Method Not Allowed"}`, rec.Body.String())
	})

	t.Run("핸들러 패닉", func(t *testing.T) {
		t.Parallel()

		e := newTestServer(HTTPServerConfig{})
		e.GET("/api/panic", func(echo.Context) error { panic("boom") })

		rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/api/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"result_code":500,"message":"내부 서버 오류가 발생했습니다"}`, rec.Body.String())
	})

	t.Run("요청 처리 시간 초과", func(t *testing.T) {
		t.Parallel()

		e := newTestServer(HTTPServerConfig{RequestTimeout: 20 * time.Millisecond})
		e.GET("/api/slow", func(c echo.Context) error {
			select {
			case <-c.Request().Context().Done():
			case <-time.After(time.Second):
			}
			return c.NoContent(http.StatusOK)
		})

		rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/api/slow", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestNewHTTPServer_RateLimiting(t *testing.T) {
	t.Parallel()

	e := newTestServer(HTTPServerConfig{RequestsPerSecond: 1, Burst: 1})

	// 헬스체크는 속도 제한 대상이 아닙니다.
	for i := 0; i < 20; i++ {
		rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"result_code":429,"message":"요청이 너무 많습니다. 잠시 후 다시 시도해주세요"}`, rec.Body.String())
}

func TestNewHTTPServer_Metrics(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	e := newTestServer(HTTPServerConfig{Metrics: m})

	doRequest(e, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	doRequest(e, httptest.NewRequest(http.MethodGet, "/api/health?foo=bar", nil))
	doRequest(e, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	count, err := promtestutil.GatherAndCount(m.Registry(), "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "헬스체크와 unmatched 두 개의 시계열만 생성되어야 합니다")
}

// TestNewHTTPServer_AccessLog 전역 로거를 사용하므로 병렬로 실행하지 않습니다.
func TestNewHTTPServer_AccessLog(t *testing.T) {
	hook := testutil.CaptureLogs(t)

	e := newTestServer(HTTPServerConfig{})

	doRequest(e, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/api/health", strings.NewReader(oversizedBody)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, hook.AllEntries(), "헬스체크 요청은 어떠한 로그도 남기지 않아야 합니다")

	doRequest(e, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	entry := testutil.FindLogEntry(hook, constants.LogMsgHTTPRequest)
	require.NotNil(t, entry)
	assert.Equal(t, "/api/unknown", entry.Data["path"])
}
