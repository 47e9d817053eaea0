// Package log logrus 기반의 애플리케이션 공용 로거를 제공합니다.
//
// Setup으로 파일 출력(lumberjack 로테이션)과 레벨별 분리 저장을 구성하고,
// WithComponent 계열 함수로 로그 발생 위치(component)를 일관되게 기록합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// componentKey 로그 발생 위치를 나타내는 필드 이름
const componentKey = "component"

// SetDebugMode Debug 모드이면 Trace 레벨, 아니면 Info 레벨로 전역 로그 레벨을 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// StandardLogger 전역 Logger 인스턴스를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// WithFields 주어진 필드를 포함한 로그 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(componentKey, component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
// 전달된 fields 맵은 변경하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields[componentKey] = component

	return logrus.WithFields(newFields)
}
