// Package metrics HTTP 요청 지표를 수집하고 Prometheus 형식으로 노출합니다.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedPath 등록된 라우트와 일치하지 않은 요청의 path 레이블 값입니다.
// 임의의 URL이 레이블로 기록되어 시계열 수가 무한히 늘어나는 것을 막습니다.
const unmatchedPath = "unmatched"

// Metrics HTTP 요청 지표와 이를 보관하는 전용 레지스트리입니다.
//
// 전역 레지스트리(prometheus.DefaultRegisterer)를 사용하지 않으므로
// 테스트에서 여러 인스턴스를 생성해도 중복 등록 오류가 발생하지 않습니다.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New 새 레지스트리에 HTTP 지표와 Go 런타임/프로세스 수집기를 등록하여 반환합니다.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// Registry 지표가 등록된 레지스트리를 반환합니다.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 레지스트리의 지표를 Prometheus 텍스트 형식으로 응답하는 핸들러를 반환합니다.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

// Middleware 요청 수와 처리 시간을 기록하는 Echo 미들웨어를 반환합니다.
//
// 하위 핸들러가 반환한 에러는 이 미들웨어에서 c.Error()로 처리되므로,
// 에러 응답의 상태 코드까지 정확히 기록됩니다.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status

			path := c.Path()
			if path == "" || status == http.StatusNotFound {
				path = unmatchedPath
			}

			method := c.Request().Method

			m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}
