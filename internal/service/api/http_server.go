package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	"github.com/darkkaiser/contenthub-server/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/contenthub-server/internal/service/api/middleware"
	"github.com/darkkaiser/contenthub-server/internal/service/metrics"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// EnableHSTS Strict-Transport-Security 헤더 전송 여부 (TLS 서버일 때만 활성화)
	EnableHSTS bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (0이면 기본값 60초)
	RequestTimeout time.Duration

	// RequestsPerSecond, Burst IP당 요청 속도 제한 (0이면 기본값 20/40)
	RequestsPerSecond int
	Burst             int

	// Metrics 요청 지표 수집기 (nil이면 수집하지 않음)
	Metrics *metrics.Metrics
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 이후 모든 미들웨어와 핸들러의 panic 복구
//  2. RequestID - X-Request-ID 부여 (로그보다 먼저 적용되어야 로그에 포함됨)
//  3. ServerHeader - Server 헤더 제거
//  4. Metrics - 요청 수/처리 시간 수집 (설정된 경우)
//  5. HTTPLogger - 요청/응답 로깅 (헬스체크 제외, 429/503도 기록되도록 RateLimit/Timeout 앞에 위치)
//  6. RateLimiting - IP 기반 요청 제한 (헬스체크 제외)
//  7. BodyLimit - 요청 본문 크기 제한 (초과 시 413, 헬스체크 제외)
//  8. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  9. CORS
//  10. Secure - 보안 헤더 (HSTS는 TLS일 때만)
//
// 라우트는 포함되지 않으며, 반환된 Echo 인스턴스에 RegisterRoutes로 등록해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	requestsPerSecond := cfg.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = constants.DefaultRateLimitPerSecond
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	// 헬스체크는 모니터링 시스템이 주기적으로 호출하므로 로깅, 속도 제한, 본문 크기 제한에서 제외합니다.
	skipHealth := appmiddleware.SkipPaths(constants.HealthPath)

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmiddleware.ServerHeader())
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}
	e.Use(appmiddleware.HTTPLogger(skipHealth))
	e.Use(appmiddleware.RateLimiting(requestsPerSecond, burst, skipHealth))
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Skipper: skipHealth,
		Limit:   constants.DefaultMaxBodySize,
	}))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgServiceUnavailable,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))

	secureConfig := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secureConfig.HSTSMaxAge = constants.HSTSMaxAge
	}
	e.Use(middleware.SecureWithConfig(secureConfig))

	return e
}
