// Package api 헬스체크 엔드포인트를 제공하는 HTTP API 서버를 구성하고 생명주기를 관리합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/darkkaiser/contenthub-server/internal/config"
	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	"github.com/darkkaiser/contenthub-server/internal/service/api/handler/system"
	"github.com/darkkaiser/contenthub-server/internal/service/metrics"
	"github.com/darkkaiser/contenthub-server/internal/service/notification"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service API 서버의 생명주기를 관리하는 서비스입니다.
//
// 이 서비스는 다음과 같은 역할을 수행합니다:
//   - Echo 기반 HTTP/HTTPS 서버 시작 및 종료
//   - 미들웨어 체인과 전역 에러 핸들러 설정
//   - 헬스체크 라우트 등록
//   - Graceful Shutdown (5초 타임아웃)
//   - 서버가 예기치 않게 종료된 경우 운영자 알림 전송
//
// Start()로 시작하고, 전달한 context를 취소하면 종료됩니다.
type Service struct {
	appConfig *config.AppConfig

	alertSender notification.Sender

	metrics *metrics.Metrics

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. m이 nil이면 요청 지표를 수집하지 않습니다.
func NewService(appConfig *config.AppConfig, alertSender notification.Sender, m *metrics.Metrics) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if alertSender == nil {
		panic(constants.PanicMsgAlertSenderRequired)
	}

	return &Service{
		appConfig: appConfig,

		alertSender: alertSender,

		metrics: m,
	}
}

// Start API 서비스를 시작합니다.
//
// 서버는 별도의 고루틴에서 실행되며 이 함수는 즉시 반환됩니다.
// serviceStopCtx가 취소되면 Graceful Shutdown을 수행한 뒤 serviceStopWG.Done()을 호출합니다.
// 이미 실행 중이면 경고 로그를 남기고 serviceStopWG.Done()만 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// runServiceLoop 서버 설정, HTTP 서버 시작, Shutdown 대기를 순차적으로 수행합니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버를 생성하고 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	e := NewHTTPServer(HTTPServerConfig{
		Debug:             s.appConfig.Debug,
		EnableHSTS:        s.appConfig.HTTP.TLSServer,
		AllowOrigins:      s.appConfig.CORS.AllowOrigins,
		RequestTimeout:    s.appConfig.HTTP.RequestTimeout,
		RequestsPerSecond: s.appConfig.RateLimit.RequestsPerSecond,
		Burst:             s.appConfig.RateLimit.Burst,
		Metrics:           s.metrics,
	})

	RegisterRoutes(e, system.New())

	return e
}

// startHTTPServer 설정에 따라 HTTP 또는 HTTPS 서버를 시작합니다.
// 서버가 종료될 때까지 블로킹되며, 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.HTTP.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
		"tls":  s.appConfig.HTTP.TLSServer,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if s.appConfig.HTTP.TLSServer {
		err = e.StartTLS(fmt.Sprintf(":%d", port), s.appConfig.HTTP.TLSCertFile, s.appConfig.HTTP.TLSKeyFile)
	} else {
		err = e.Start(fmt.Sprintf(":%d", port))
	}

	s.handleServerError(err)
}

// handleServerError HTTP 서버 실행 결과를 처리합니다.
//
//   - nil: 처리하지 않음
//   - http.ErrServerClosed: Graceful Shutdown에 의한 정상 종료
//   - 그 외: Error 로그 + 운영자 알림 (포트 충돌, 인증서 오류 등)
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	message := constants.LogMsgServiceHTTPServerFatalError
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.HTTP.ListenPort,
		"error": err,
	}).Error(message)

	s.alertSender.NotifyError(fmt.Sprintf("%s\r\n\r\n%s", message, err))
}

// waitForShutdown 종료 신호를 기다린 뒤 Graceful Shutdown을 수행합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		// 서버가 이미 종료되었으므로 Shutdown 없이 상태만 정리합니다.
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
