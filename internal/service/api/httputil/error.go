// Package httputil API 서버의 공통 HTTP 응답 처리 유틸리티를 제공합니다.
package httputil

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	"github.com/darkkaiser/contenthub-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// localizedMessages Echo가 기본으로 사용하는 영문 상태 문구를 대체할 메시지입니다.
var localizedMessages = map[int]string{
	http.StatusNotFound:              constants.ErrMsgNotFound,
	http.StatusRequestEntityTooLarge: constants.ErrMsgRequestTooLarge,
	http.StatusTooManyRequests:       constants.ErrMsgTooManyRequests,
	http.StatusInternalServerError:   constants.ErrMsgInternalServer,
	http.StatusServiceUnavailable:    constants.ErrMsgServiceUnavailable,
}

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 에러를 {"result_code":N,"message":"..."} 형식의 JSON으로 변환하여 응답합니다.
// 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := resolve(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 추가 응답을 시도하지 않습니다.
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// resolve 에러로부터 응답할 상태 코드와 메시지를 결정합니다.
func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return http.StatusInternalServerError, constants.ErrMsgInternalServer
	}

	code := he.Code
	message := constants.ErrMsgInternalServer

	switch m := he.Message.(type) {
	case string:
		message = m
	case response.ErrorResponse:
		message = m.Message
	}

	// Echo 기본 문구("Not Found" 등)는 한국어 메시지로 통일합니다.
	if message == http.StatusText(code) {
		if localized, ok := localizedMessages[code]; ok {
			message = localized
		}
	}

	return code, message
}
