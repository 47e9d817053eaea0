package constants

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	// ComponentSender 알림 발송자 컴포넌트 이름
	ComponentSender = "notification.sender"

	// ComponentTelegram Telegram 발송자 컴포넌트 이름
	ComponentTelegram = "notification.sender.telegram"
)
