package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout 설정값이 없을 때 적용하는 요청 처리 제한 시간
	DefaultRequestTimeout = 60 * time.Second

	// DefaultRateLimitPerSecond 설정값이 없을 때 적용하는 IP당 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst 설정값이 없을 때 적용하는 IP당 버스트 허용량
	DefaultRateLimitBurst = 40

	// ShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)
