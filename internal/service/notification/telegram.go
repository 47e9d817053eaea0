package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/darkkaiser/contenthub-server/internal/config"
	apperrors "github.com/darkkaiser/contenthub-server/internal/pkg/errors"
	"github.com/darkkaiser/contenthub-server/internal/service/notification/constants"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/darkkaiser/contenthub-server/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// botClient 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// telegramSender 텔레그램으로 장애 알림을 발송하는 Sender 구현체입니다.
//
// 알림은 버퍼 채널에 적재되고, 단일 워커 고루틴이 Rate Limit을 지키며 순서대로 전송합니다.
type telegramSender struct {
	chatID int64
	client botClient

	limiter    *rate.Limiter
	retryDelay time.Duration
	maxRetries int

	shutdownTimeout time.Duration

	// 메시지 앞에 붙는 발신 서버 식별 정보
	origin string

	queue chan string

	// ctx 워커의 전송 작업을 중단시키기 위한 컨텍스트 (종료 대기 시간 초과 시 취소)
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	closeOnce sync.Once
	stopped   chan struct{}
}

var _ Sender = (*telegramSender)(nil)

// newTelegramSender 텔레그램 봇 API 클라이언트를 초기화하여 Sender를 생성합니다.
// apiEndpoint는 "https://host/bot%s/%s" 형식이어야 합니다.
func newTelegramSender(cfg config.TelegramConfig, debug bool, apiEndpoint string) (*telegramSender, error) {
	applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
		"bot_token": strutil.Mask(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug(constants.LogMsgTelegramInitClient)

	// 기본 http.DefaultClient는 타임아웃이 없으므로 명시적인 타임아웃을 설정합니다.
	client := &http.Client{
		Timeout: constants.DefaultHTTPClientTimeout,
	}

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, apiEndpoint, client)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}
	botAPI.Debug = debug

	s := newTelegramSenderWithClient(botAPI, cfg.ChatID)

	applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
		"bot_username": botAPI.Self.UserName,
		"chat_id":      cfg.ChatID,
	}).Info(constants.LogMsgTelegramInitialized)

	return s, nil
}

// newTelegramSenderWithClient 주입된 botClient로 Sender를 생성하고 워커를 시작합니다.
func newTelegramSenderWithClient(client botClient, chatID int64) *telegramSender {
	ctx, cancel := context.WithCancel(context.Background())

	s := &telegramSender{
		chatID: chatID,
		client: client,

		limiter:    rate.NewLimiter(rate.Limit(constants.DefaultRateLimit), constants.DefaultRateBurst),
		retryDelay: constants.DefaultRetryDelay,
		maxRetries: constants.DefaultMaxRetries,

		shutdownTimeout: constants.TelegramShutdownTimeout,

		origin: newOrigin(),

		queue: make(chan string, constants.TelegramQueueSize),

		ctx:    ctx,
		cancel: cancel,

		stopped: make(chan struct{}),
	}

	go s.run()

	return s
}

func newOrigin() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return config.AppName
	}
	return fmt.Sprintf("%s@%s", config.AppName, hostname)
}

// NotifyError 알림을 대기열에 넣습니다. 대기열이 가득 찼거나 이미 종료된 경우 알림은 버려집니다.
func (s *telegramSender) NotifyError(message string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		applog.WithComponent(constants.ComponentTelegram).Warn(constants.LogMsgTelegramClosedDrop)
		return
	}

	select {
	case s.queue <- message:
	default:
		applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
			"queue_size": cap(s.queue),
		}).Warn(constants.LogMsgTelegramQueueFull)
	}
}

// Close 새 알림 접수를 중단하고, 대기열에 남은 알림이 처리될 때까지 최대 shutdownTimeout 동안 기다립니다.
func (s *telegramSender) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	timer := time.NewTimer(s.shutdownTimeout)
	defer timer.Stop()

	select {
	case <-s.stopped:
		s.cancel()
		return nil

	case <-timer.C:
		applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
			"pending": len(s.queue),
		}).Warn(constants.LogMsgTelegramDrainTimeout)

		s.cancel()
		<-s.stopped

		return apperrors.New(apperrors.Timeout, "텔레그램 알림 발송자 종료 대기 시간이 초과되었습니다")
	}
}

// run 대기열이 닫힐 때까지 알림을 순서대로 전송하는 워커 루프입니다.
func (s *telegramSender) run() {
	defer close(s.stopped)

	for message := range s.queue {
		s.sendSafely(message)
	}
}

// sendSafely 개별 알림 처리 중 발생한 패닉이 워커 루프 전체를 중단시키지 않도록 격리합니다.
func (s *telegramSender) sendSafely(message string) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
				"chat_id": s.chatID,
				"panic":   r,
			}).Error(constants.LogMsgTelegramWorkerPanic)
		}
	}()

	s.send(message)
}

func (s *telegramSender) send(message string) {
	if s.ctx.Err() != nil {
		return
	}

	// 채팅방당 전송 속도 제한 준수
	if err := s.limiter.Wait(s.ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
			"error": err,
		}).Debug(constants.LogMsgTelegramRateLimitErr)
		return
	}

	text := strutil.Truncate(fmt.Sprintf("[%s]\n%s", s.origin, message), constants.TelegramMessageMaxLength)
	msg := tgbotapi.NewMessage(s.chatID, text)

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		_, err := s.client.Send(msg)
		if err == nil {
			applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
				"chat_id": s.chatID,
				"attempt": attempt,
			}).Info(constants.LogMsgTelegramSendSuccess)
			return
		}

		applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
			"chat_id": s.chatID,
			"attempt": attempt,
			"error":   err,
		}).Warn(constants.LogMsgTelegramSendFail)

		errCode, retryAfter := extractTelegramErrorCode(err)
		if !shouldRetryError(errCode) || attempt == s.maxRetries {
			break
		}

		wait := s.retryDelay
		if retryAfter > 0 {
			wait = time.Duration(retryAfter) * time.Second
		}

		select {
		case <-s.ctx.Done():
			return
		case <-time.After(wait):
		}
	}

	applog.WithComponentAndFields(constants.ComponentTelegram, applog.Fields{
		"chat_id": s.chatID,
	}).Error(constants.LogMsgTelegramSendGiveUp)
}

// extractTelegramErrorCode 텔레그램 API 에러에서 에러 코드와 Retry-After 값을 추출합니다.
func extractTelegramErrorCode(err error) (code int, retryAfter int) {
	var apiErrPtr *tgbotapi.Error
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, apiErrPtr.RetryAfter
	}
	var apiErr tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.RetryAfter
	}
	return 0, 0
}

// shouldRetryError 429 (Too Many Requests)를 제외한 4xx 오류는 재시도하지 않습니다.
func shouldRetryError(errCode int) bool {
	if errCode >= 400 && errCode < 500 {
		return errCode == http.StatusTooManyRequests
	}
	return true
}
