package middleware

import (
	"net/http"
	"runtime"

	apperrors "github.com/darkkaiser/contenthub-server/internal/pkg/errors"
	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
	stackBufferSize = 4 << 10
)

// PanicRecovery 핸들러와 하위 미들웨어에서 발생한 panic을 복구하는 미들웨어를 반환합니다.
//
// 복구된 panic은 스택 트레이스와 함께 기록되고, 500 에러로 변환되어 전역 에러 핸들러로 전달됩니다.
// http.ErrAbortHandler는 net/http가 연결을 끊기 위해 사용하는 값이므로 복구하지 않고 다시 panic합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				err, ok := r.(error)
				if !ok {
					err = apperrors.Newf(apperrors.Internal, "%v", r)
				}

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error":  err,
					"stack":  string(stack[:length]),
					"path":   c.Request().URL.Path,
					"method": c.Request().Method,
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)

				c.Error(err)
				returnErr = nil
			}()

			return next(c)
		}
	}
}
