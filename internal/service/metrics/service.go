package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/darkkaiser/contenthub-server/internal/config"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service 수집된 지표를 별도 포트의 /metrics 엔드포인트로 노출하는 서비스입니다.
//
// API 서버와 포트를 분리하여, 외부에 공개되는 API 포트로는 내부 지표가 노출되지 않도록 합니다.
type Service struct {
	appConfig *config.AppConfig

	metrics *Metrics

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, m *Metrics) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}
	if m == nil {
		panic("Metrics는 필수입니다")
	}

	return &Service{
		appConfig: appConfig,

		metrics: m,
	}
}

// Start 지표 노출 서버를 시작합니다.
// 설정에서 비활성화된 경우 서버를 띄우지 않고 즉시 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.appConfig.Metrics.Enabled {
		defer serviceStopWG.Done()
		applog.WithComponent(ComponentService).Info(logMsgServiceDisabled)
		return nil
	}

	applog.WithComponent(ComponentService).Info(logMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(ComponentService).Warn(logMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(ComponentService).Info(logMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

func (s *Service) setupServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = readHeaderTimeout

	e.GET(MetricsPath, echo.WrapHandler(s.metrics.Handler()))

	return e
}

func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.Metrics.ListenPort
	applog.WithComponentAndFields(ComponentService, applog.Fields{
		"port": port,
		"path": MetricsPath,
	}).Debug(logMsgHTTPServerStarting)

	s.handleServerError(e.Start(fmt.Sprintf(":%d", port)))
}

func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(ComponentService).Info(logMsgHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(ComponentService, applog.Fields{
		"port":  s.appConfig.Metrics.ListenPort,
		"error": err,
	}).Error(logMsgHTTPServerFatalError)
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(ComponentService).Info(logMsgServiceStopping)
	case <-httpServerDone:
		applog.WithComponent(ComponentService).Error(logMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(ComponentService, applog.Fields{
			"error": err,
		}).Error(logMsgHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(ComponentService).Info(logMsgServiceStopped)
}
