package strutil

import "unicode/utf8"

const ellipsis = "..."

// Truncate 문자열을 최대 maxRunes 글자(rune)로 자릅니다.
// 잘린 경우 끝에 "..."을 붙이며, 결과 길이는 maxRunes를 넘지 않습니다.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	if maxRunes <= len(ellipsis) {
		return string([]rune(s)[:maxRunes])
	}

	return string([]rune(s)[:maxRunes-len(ellipsis)]) + ellipsis
}
