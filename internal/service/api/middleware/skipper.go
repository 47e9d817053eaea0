package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SkipPaths 요청 경로가 paths 중 하나와 정확히 일치하면 미들웨어를 건너뛰는 Skipper를 반환합니다.
// 쿼리 문자열은 비교에 포함되지 않습니다.
func SkipPaths(paths ...string) middleware.Skipper {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}

	return func(c echo.Context) bool {
		_, ok := set[c.Request().URL.Path]
		return ok
	}
}
