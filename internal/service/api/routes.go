package api

import (
	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	"github.com/darkkaiser/contenthub-server/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes API 서버의 라우트를 등록합니다.
//
// 등록되는 엔드포인트:
//   - GET /api/health: 헬스체크 (인증 불필요)
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.GET(constants.HealthPath, h.HealthCheckHandler)
}
