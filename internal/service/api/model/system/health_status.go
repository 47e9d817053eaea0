// Package system 시스템 엔드포인트의 응답 모델을 정의합니다.
package system

// StatusOK 서버가 요청을 처리할 수 있는 상태
const StatusOK = "ok"

// HealthStatus 헬스체크 응답
type HealthStatus struct {
	Status string `json:"status"`
}
