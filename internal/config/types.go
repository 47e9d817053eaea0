package config

import (
	"fmt"
	"slices"
	"time"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug     bool            `json:"debug"`
	HTTP      HTTPConfig      `json:"http"`
	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Metrics   MetricsConfig   `json:"metrics"`
	Alert     AlertConfig     `json:"alert"`
}

// HTTPConfig API 서버의 포트, TLS, 요청 타임아웃을 정의하는 설정 구조체
type HTTPConfig struct {
	ListenPort     int           `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer      bool          `json:"tls_server"`
	TLSCertFile    string        `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile     string        `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	RequestTimeout time.Duration `json:"request_timeout" validate:"gt=0"`
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

// HasWildcard 허용 목록에 와일드카드(*)가 포함되어 있는지 여부를 반환합니다.
func (c CORSConfig) HasWildcard() bool {
	return slices.Contains(c.AllowOrigins, "*")
}

// RateLimitConfig IP별 요청 속도 제한 설정 구조체
type RateLimitConfig struct {
	RequestsPerSecond int `json:"requests_per_second" validate:"min=1"`
	Burst             int `json:"burst" validate:"min=1"`
}

// MetricsConfig Prometheus 메트릭 수집 서버 설정 구조체
type MetricsConfig struct {
	Enabled    bool `json:"enabled"`
	ListenPort int  `json:"listen_port" validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
}

// AlertConfig 서버 장애 알림 채널 설정 구조체
type AlertConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 텔레그램 봇 토큰 및 채팅 ID 정보를 담는 설정 구조체
// 두 값이 모두 비어있으면 알림을 사용하지 않습니다.
type TelegramConfig struct {
	BotToken string `json:"bot_token" validate:"required_with=ChatID,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_with=BotToken"`
}

// Enabled 텔레그램 알림이 설정되어 있는지 여부를 반환합니다.
func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}

// newDefaultConfig 설정 파일에 값이 없을 때 적용되는 기본값을 반환합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		HTTP: HTTPConfig{
			ListenPort:     DefaultListenPort,
			RequestTimeout: DefaultRequestTimeout,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenPort: DefaultMetricsListenPort,
		},
	}
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 강제적인 에러를 발생시키지는 않으나, 잠재적 위험 요소에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.HTTP.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.HTTP.ListenPort))
	}
	if c.Metrics.Enabled && c.Metrics.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("메트릭 서버가 시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d)", c.Metrics.ListenPort))
	}

	if !c.Debug && c.CORS.HasWildcard() {
		warnings = append(warnings, "운영 모드에서 CORS 와일드카드(*)가 허용되어 있습니다. 허용할 Origin을 명시적으로 지정하는 것을 권장합니다")
	}

	if !c.Debug && !c.HTTP.TLSServer {
		warnings = append(warnings, "운영 모드에서 TLS가 비활성화되어 있습니다. 리버스 프록시에서 TLS를 종단하지 않는다면 tls_server 설정을 확인하세요")
	}

	return warnings
}
