package constants

import "time"

// 보안 및 리소스 보호 관련 상수입니다.
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기
	DefaultMaxBodySize = "128K"

	// DefaultReadTimeout 요청 전체(헤더 + 본문) 읽기 제한 시간
	DefaultReadTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout 요청 헤더 읽기 제한 시간 (Slowloris 공격 방어)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한 시간
	// 요청 처리 제한 시간(Timeout 미들웨어)보다 길어야 타임아웃 응답을 보낼 수 있습니다.
	DefaultWriteTimeout = 75 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결의 최대 유휴 시간
	DefaultIdleTimeout = 120 * time.Second

	// HSTSMaxAge Strict-Transport-Security 헤더의 max-age (1년)
	HSTSMaxAge = 31536000
)

// SensitiveQueryParams 로그 기록 시 값을 마스킹해야 하는 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"access_token",
	"password",
	"token",
	"secret",
}
