package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/contenthub-server/internal/config"
	"github.com/darkkaiser/contenthub-server/internal/pkg/version"
	"github.com/darkkaiser/contenthub-server/internal/service"
	"github.com/darkkaiser/contenthub-server/internal/service/api"
	"github.com/darkkaiser/contenthub-server/internal/service/metrics"
	"github.com/darkkaiser/contenthub-server/internal/service/notification"
	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/spf13/cobra"
)

const componentMain = "main"

// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
const banner = `
   ____            _             _   _   _       _
  / ___| ___  _ __ | |_ ___ _ __ | |_| | | |_   _| |__
 | |    / _ \| '_ \| __/ _ \ '_ \| __| |_| | | | | '_ \
 | |___| (_) | | | | ||  __/ | | | |_|  _  | |_| | |_) |
  \____|\___/|_| |_|\__\___|_| |_|\__|_| |_|\__,_|_.__/
                                                  %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`

// newRootCommand 서버 구동(serve)을 기본 동작으로 하는 루트 명령을 생성합니다.
func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "콘텐츠 허브 API 서버",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configFile)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultFilename, "설정 파일 경로")

	cmd.AddCommand(newHealthcheckCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// serve 설정과 로그 시스템을 초기화하고 종료 시그널을 받을 때까지 서비스를 구동합니다.
func serve(ctx context.Context, configFile string) error {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		return fmt.Errorf("환경설정 로드 실패: %w", err)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		return fmt.Errorf("로그 시스템 초기화 실패: %w", err)
	}
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(componentMain, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(componentMain).Warn(warning)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	alertSender, err := notification.NewSender(appConfig)
	if err != nil {
		return fmt.Errorf("알림 발송자 초기화 실패: %w", err)
	}

	return run(ctx, appConfig, alertSender)
}

// run 서비스를 시작하고 ctx가 종료될 때까지 대기한 뒤, 모든 서비스의 종료를 기다립니다.
// alertSender는 서비스가 모두 종료된 후 닫힙니다.
func run(ctx context.Context, appConfig *config.AppConfig, alertSender notification.Sender) error {
	defer func() {
		if err := alertSender.Close(); err != nil {
			applog.WithComponentAndFields(componentMain, applog.Fields{
				"error": err,
			}).Warn("알림 발송자 종료 중 오류가 발생했습니다")
		}
	}()

	m := metrics.New()
	services := []service.Service{
		metrics.NewService(appConfig, m),
		api.NewService(appConfig, alertSender, m),
	}

	serviceStopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(componentMain, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			return fmt.Errorf("서비스 초기화 실패: %w", err)
		}
	}

	applog.WithComponent(componentMain).Info("서버 가동 완료")

	<-serviceStopCtx.Done()

	applog.WithComponent(componentMain).Info("종료 신호를 수신하였습니다")
	cancel()
	serviceStopWG.Wait()

	applog.WithComponent(componentMain).Info("서버가 정상적으로 종료되었습니다")

	return nil
}
