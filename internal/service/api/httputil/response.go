package httputil

import (
	"github.com/darkkaiser/contenthub-server/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

// NewError 지정한 상태 코드와 메시지로 표준 ErrorResponse를 담은 HTTP 에러를 생성합니다.
func NewError(code int, message string) error {
	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
