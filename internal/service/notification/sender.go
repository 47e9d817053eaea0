// Package notification 서버 장애 발생 시 운영자에게 알림을 발송합니다.
package notification

import (
	"github.com/darkkaiser/contenthub-server/internal/config"
	"github.com/darkkaiser/contenthub-server/internal/service/notification/constants"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender 장애 알림 발송자 인터페이스
type Sender interface {
	// NotifyError 장애 알림을 비동기로 발송합니다. 호출자를 블로킹하지 않습니다.
	NotifyError(message string)

	// Close 대기열에 남은 알림을 처리한 뒤 발송자를 종료합니다.
	Close() error
}

// NewSender 설정에 따라 알림 발송자를 생성합니다.
// 텔레그램 설정이 없으면 아무것도 하지 않는 발송자를 반환합니다.
func NewSender(appConfig *config.AppConfig) (Sender, error) {
	if !appConfig.Alert.Telegram.Enabled() {
		applog.WithComponent(constants.ComponentSender).Info(constants.LogMsgTelegramDisabled)
		return NoopSender{}, nil
	}

	return newTelegramSender(appConfig.Alert.Telegram, appConfig.Debug, tgbotapi.APIEndpoint)
}

// NoopSender 알림을 버리는 Sender 구현체입니다.
type NoopSender struct{}

func (NoopSender) NotifyError(string) {}

func (NoopSender) Close() error { return nil }

var _ Sender = NoopSender{}
