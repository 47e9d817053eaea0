// Package system 시스템 엔드포인트 핸들러를 제공합니다.
package system

import (
	"encoding/json"
	"net/http"

	"github.com/darkkaiser/contenthub-server/internal/service/api/model/system"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	// healthBody 미리 직렬화된 헬스체크 응답 본문. 생성 후 변경되지 않습니다.
	healthBody []byte
}

// New Handler 인스턴스를 생성합니다.
func New() *Handler {
	body, err := json.Marshal(system.HealthStatus{Status: system.StatusOK})
	if err != nil {
		// 고정된 구조체의 직렬화이므로 실패할 수 없습니다.
		panic(err)
	}

	return &Handler{
		healthBody: body,
	}
}

// HealthCheckHandler 서버가 요청을 처리할 수 있는지 확인합니다.
//
// 요청 파라미터, 헤더, 본문은 모두 무시되며 항상 200 {"status":"ok"}를 반환합니다.
// 로깅이나 외부 호출 없이 미리 직렬화된 본문만 전송합니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	return c.JSONBlob(http.StatusOK, h.healthBody)
}
