package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류할 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 시스템 또는 인프라 오류 (디스크, 네트워크 등)
	System

	// InvalidInput 잘못된 입력값 (유효성 검사 실패)
	InvalidInput

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// ParsingFailed 데이터 파싱 또는 형식 변환 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 서비스 일시적 사용 불가
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:       "Unknown",
	Internal:      "Internal",
	System:        "System",
	InvalidInput:  "InvalidInput",
	NotFound:      "NotFound",
	ParsingFailed: "ParsingFailed",
	Timeout:       "Timeout",
	Unavailable:   "Unavailable",
}

// String ErrorType의 이름을 반환합니다. 정의되지 않은 값은 "ErrorType(n)" 형태로 표현합니다.
func (t ErrorType) String() string {
	if t >= 0 && int(t) < len(errorTypeNames) {
		return errorTypeNames[t]
	}
	return "ErrorType(" + strconv.Itoa(int(t)) + ")"
}
