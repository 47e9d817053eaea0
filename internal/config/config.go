// Package config 애플리케이션 설정 파일을 로드하고 검증합니다.
//
// 설정 값은 기본값, JSON 설정 파일, 환경 변수 순서로 병합되며 뒤에 오는 값이 우선합니다.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/contenthub-server/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "contenthub-server"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 참조하는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정 값을 덮어쓰는 환경 변수의 접두사입니다.
	EnvPrefix = "CONTENTHUB_"
)

const (
	DefaultListenPort        = 8080
	DefaultRequestTimeout    = 60 * time.Second
	DefaultRequestsPerSecond = 20
	DefaultBurst             = 40
	DefaultMetricsListenPort = 9090
)

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위)
	// 예: CONTENTHUB_HTTP__LISTEN_PORT -> http.listen_port
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (정의되지 않은 키가 있으면 실패)
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &appConfig,
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 설정 키 경로로 변환합니다.
// 이중 언더스코어(__)는 계층 구분자(.)로 변환됩니다.
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
