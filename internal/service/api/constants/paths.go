package constants

// 라우트 경로 상수입니다.
const (
	// APIPrefix API 엔드포인트 공통 접두사
	APIPrefix = "/api"

	// HealthPath 헬스체크 엔드포인트 경로
	HealthPath = APIPrefix + "/health"
)
