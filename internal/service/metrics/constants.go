package metrics

import "time"

// ComponentService 로그 컴포넌트 이름
const ComponentService = "metrics.service"

const (
	// MetricsPath 지표 노출 경로
	MetricsPath = "/metrics"

	// shutdownTimeout Graceful Shutdown 시 최대 대기 시간
	shutdownTimeout = 5 * time.Second

	readHeaderTimeout = 10 * time.Second
)

const (
	logMsgServiceStarting       = "Metrics 서비스 시작중..."
	logMsgServiceStarted        = "Metrics 서비스 시작됨"
	logMsgServiceDisabled       = "Metrics 서비스가 비활성화되어 있어 시작하지 않습니다"
	logMsgServiceAlreadyStarted = "Metrics 서비스가 이미 시작됨!!!"
	logMsgServiceStopping       = "Metrics 서비스 중지중..."
	logMsgServiceStopped        = "Metrics 서비스 중지됨"
	logMsgServiceUnexpectedExit = "Metrics 서비스가 예기치 않게 종료되었습니다"

	logMsgHTTPServerStarting      = "Metrics 서비스 > http 서버 시작"
	logMsgHTTPServerStopped       = "Metrics 서비스 > http 서버 중지됨"
	logMsgHTTPServerShutdownError = "Metrics 서비스 > http 서버 종료 중 오류 발생"
	logMsgHTTPServerFatalError    = "Metrics 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다"
)
