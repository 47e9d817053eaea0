package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/contenthub-server/internal/pkg/errors"
	"github.com/darkkaiser/contenthub-server/pkg/validation"
	"github.com/go-playground/validator/v10"
)

var (
	// 텔레그램 봇 토큰 검증을 위한 정규식 (예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)
	telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 구조체 필드명 대신 JSON 이름(예: listen_port)이 표시되도록 합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("telegram_bot_token", validateTelegramBotToken); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'telegram_bot_token' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateCORSOrigin 실제 검증은 validation.ValidateCORSOrigin 함수로 위임합니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// validateTelegramBotToken 텔레그램 봇 토큰은 식별자(숫자)와 비밀키가 콜론(:)으로 구분된 형태여야 합니다.
func validateTelegramBotToken(fl validator.FieldLevel) bool {
	return telegramBotTokenRegex.MatchString(fl.Field().String())
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c); err != nil {
		return err
	}

	if c.CORS.HasWildcard() && len(c.CORS.AllowOrigins) > 1 {
		return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 Origin과 함께 사용할 수 없습니다. 모든 Origin을 허용하려면 와일드카드만 설정하세요")
	}

	if c.Metrics.Enabled && c.Metrics.ListenPort == c.HTTP.ListenPort {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("메트릭 서버 포트(metrics.listen_port)는 API 서버 포트(http.listen_port)와 달라야 합니다: %d", c.Metrics.ListenPort))
	}

	return nil
}

// checkStruct 구조체의 유효성을 태그 규칙에 따라 검증하고, 첫 번째 오류를 사용자 친화적인 도메인 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 유효성 검증 중 알 수 없는 오류가 발생했습니다")
	}

	firstErr := validationErrors[0]

	// 필드별 커스텀 에러 처리 (StructNamespace 예: AppConfig.HTTP.ListenPort)
	switch strings.TrimPrefix(firstErr.StructNamespace(), "AppConfig.") {
	case "HTTP.ListenPort":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("API 서버 포트(http.listen_port)는 1에서 65535 사이의 값이어야 합니다: '%v'", firstErr.Value()))
	case "HTTP.RequestTimeout":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("요청 타임아웃(http.request_timeout)은 0보다 커야 합니다: '%v'", firstErr.Value()))
	case "HTTP.TLSCertFile":
		switch firstErr.Tag() {
		case "required_if":
			return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 TLS 인증서 파일 경로(http.tls_cert_file)는 필수입니다")
		case "file":
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 인증서 파일(http.tls_cert_file)을 찾을 수 없습니다: '%v'", firstErr.Value()))
		}
	case "HTTP.TLSKeyFile":
		switch firstErr.Tag() {
		case "required_if":
			return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 TLS 키 파일 경로(http.tls_key_file)는 필수입니다")
		case "file":
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 키 파일(http.tls_key_file)을 찾을 수 없습니다: '%v'", firstErr.Value()))
		}
	case "CORS.AllowOrigins":
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 Origin(cors.allow_origins) 목록이 비어있습니다")
	case "Metrics.ListenPort":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("메트릭 서버 포트(metrics.listen_port)는 1에서 65535 사이의 값이어야 합니다: '%v'", firstErr.Value()))
	case "Alert.Telegram.ChatID":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰이 설정된 경우 채팅 ID(alert.telegram.chat_id)는 필수입니다")
	}

	// 태그별 커스텀 에러 처리
	switch firstErr.Tag() {
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", firstErr.Value()))
	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰(alert.telegram.bot_token) 형식이 올바르지 않습니다 (올바른 형식: 123456:ABC-DEF...)")
	case "required_with":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("'%s' 설정이 누락되었습니다", jsonPath(firstErr)))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("'%s' 설정이 올바르지 않습니다 (조건: %s)", jsonPath(firstErr), conditionOf(firstErr)))
}

// jsonPath 검증 오류가 발생한 필드의 JSON 경로(예: rate_limit.burst)를 반환합니다.
func jsonPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}
	return ns
}

func conditionOf(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
