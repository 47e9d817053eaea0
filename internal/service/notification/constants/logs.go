package constants

// 로그 메시지 상수 정의
const (
	LogMsgTelegramInitClient   = "텔레그램 봇 API 클라이언트 초기화"
	LogMsgTelegramInitialized  = "텔레그램 알림 발송자 초기화 완료"
	LogMsgTelegramDisabled     = "텔레그램 알림 설정이 없어 장애 알림을 사용하지 않습니다"
	LogMsgTelegramSendSuccess  = "텔레그램 알림 전송 성공"
	LogMsgTelegramSendFail     = "텔레그램 알림 전송 실패"
	LogMsgTelegramSendGiveUp   = "텔레그램 알림 전송을 포기합니다 (재시도 횟수 초과 또는 재시도 불가 오류)"
	LogMsgTelegramQueueFull    = "알림 대기열이 가득 차 알림이 버려졌습니다"
	LogMsgTelegramClosedDrop   = "종료된 발송자로 들어온 알림이 버려졌습니다"
	LogMsgTelegramRateLimitErr = "Rate Limit 대기 중 종료되어 알림 전송이 취소되었습니다"
	LogMsgTelegramWorkerPanic  = "알림 처리 중 패닉 발생 (해당 건 스킵)"
	LogMsgTelegramDrainTimeout = "종료 대기 시간이 초과되어 남은 알림을 버립니다"
)
