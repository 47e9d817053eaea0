package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/darkkaiser/contenthub-server/pkg/strutil"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// defaultBytesIn Content-Length 헤더가 없는 경우(Chunked Transfer Encoding 등) bytes_in 필드에 기록될 값
	defaultBytesIn = "0"
)

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// skipper가 true를 반환하는 요청은 기록하지 않습니다. 헬스체크처럼 주기적으로
// 호출되는 엔드포인트가 로그를 채우지 않도록 할 때 사용합니다. nil이면 모든 요청을 기록합니다.
//
// 기록되는 정보:
//   - 요청: IP, 메서드, URI(민감 쿼리 파라미터 마스킹), User-Agent, Content-Length
//   - 응답: 상태 코드, 응답 크기, Request ID
//   - 성능: 처리 시간
func HTTPLogger(skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			return logRequest(c, next)
		}
	}
}

func logRequest(c echo.Context, next echo.HandlerFunc) error {
	req := c.Request()
	res := c.Response()
	start := time.Now()

	// 패닉이 발생해도 로그가 남도록 defer로 기록합니다.
	defer func() {
		stop := time.Now()
		latency := stop.Sub(start)

		path := req.URL.Path
		if path == "" {
			path = "/"
		}

		bytesIn := req.Header.Get(echo.HeaderContentLength)
		if bytesIn == "" {
			bytesIn = defaultBytesIn
		}

		applog.WithComponentAndFields(constants.ComponentMiddlewareHTTPLogger, applog.Fields{
			"time_rfc3339": stop.Format(time.RFC3339),

			"method":   req.Method,
			"path":     path,
			"uri":      maskSensitiveQueryParams(req.RequestURI),
			"host":     req.Host,
			"protocol": req.Proto,

			"remote_ip":  c.RealIP(),
			"user_agent": req.UserAgent(),
			"referer":    req.Referer(),

			"status":    res.Status,
			"bytes_in":  bytesIn,
			"bytes_out": strconv.FormatInt(res.Size, 10),

			"latency":       strconv.FormatInt(latency.Microseconds(), 10),
			"latency_human": latency.String(),

			"request_id": res.Header().Get(echo.HeaderXRequestID),
		}).Info(constants.LogMsgHTTPRequest)
	}()

	// 상태 코드를 확정하기 위해 에러를 여기서 처리합니다.
	if err := next(c); err != nil {
		c.Error(err)
	}

	return nil
}

// maskSensitiveQueryParams URI에 포함된 민감한 쿼리 파라미터 값을 마스킹합니다.
// 파싱에 실패하면 원본을 반환합니다.
//
//	입력: "/api/health?token=secret123&id=100"
//	출력: "/api/health?id=100&token=secr%2A%2A%2A"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, strutil.Mask(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
