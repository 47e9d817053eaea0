package middleware

import "github.com/labstack/echo/v4"

// ServerHeader 응답의 Server 헤더를 비워 서버 스택(Go/Echo 버전 등)이 노출되지 않도록 합니다.
func ServerHeader() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	}
}
