package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	"github.com/darkkaiser/contenthub-server/internal/service/api/httputil"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// ipRateLimiter IP 주소별 Token Bucket을 관리합니다.
//
// IP 주소는 한 번 추가되면 서버가 재시작될 때까지 유지됩니다.
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter

	rate  rate.Limit
	burst int
}

func newIPRateLimiter(requestsPerSecond int, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter IP에 해당하는 Limiter를 반환하며, 없으면 새로 생성합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// 락을 얻는 사이에 다른 고루틴이 생성했을 수 있습니다.
	if limiter, exists = i.limiters[ip]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimiting IP 기반 요청 속도 제한 미들웨어를 반환합니다.
//
// 제한을 초과한 요청에는 Retry-After 헤더와 함께 429 Too Many Requests로 응답합니다.
// skipper가 true를 반환하는 요청은 제한하지 않습니다 (nil이면 모든 요청 대상).
//
// requestsPerSecond 또는 burst가 0 이하이면 panic이 발생합니다.
func RateLimiting(requestsPerSecond int, burst int, skipper middleware.Skipper) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, burst))
	}
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set("Retry-After", "1")

				return httputil.NewError(http.StatusTooManyRequests, constants.ErrMsgTooManyRequests)
			}

			return next(c)
		}
	}
}
