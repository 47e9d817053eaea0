// Package strutil 문자열 처리 유틸리티를 제공합니다.
package strutil

const maskSuffix = "***"

// Mask 토큰, 키 등의 민감 정보를 로그에 안전하게 남길 수 있도록 마스킹합니다.
//
//   - 3자 이하: 전체 마스킹
//   - 12자 이하: 앞 4자만 노출
//   - 그 외: 앞 4자와 뒤 4자만 노출
func Mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 3:
		return maskSuffix
	case len(s) <= 12:
		return s[:4] + maskSuffix
	default:
		return s[:4] + maskSuffix + s[len(s)-4:]
	}
}
