package constants

import "time"

const (
	// DefaultRetryDelay 알림 발송 실패 시 재시도 대기 시간의 기본값입니다.
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetries 한 건의 알림에 대한 최대 전송 시도 횟수입니다.
	DefaultMaxRetries = 3

	// DefaultRateLimit 텔레그램 API Rate Limit 기본값 (초당 허용 요청 수)
	// 공식 문서는 채팅방당 초당 1회를 권장합니다.
	DefaultRateLimit = 1

	// DefaultRateBurst 텔레그램 API Rate Limit 버스트 기본값
	DefaultRateBurst = 5

	// DefaultHTTPClientTimeout 텔레그램 API 클라이언트의 HTTP 요청 타임아웃 기본값
	DefaultHTTPClientTimeout = 10 * time.Second

	// TelegramQueueSize 발송 대기열 크기
	// 가득 찬 상태에서 들어온 알림은 버려집니다.
	TelegramQueueSize = 30

	// TelegramShutdownTimeout 종료 시 대기열에 남은 알림을 처리하기 위해 기다리는 최대 시간입니다.
	TelegramShutdownTimeout = 30 * time.Second

	// TelegramMessageMaxLength 텔레그램 메시지 최대 길이 (API 제한: 4096자)
	TelegramMessageMaxLength = 4096
)
