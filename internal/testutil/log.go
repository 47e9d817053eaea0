package testutil

import (
	"io"
	"testing"

	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// CaptureLogs 테스트 동안 전역 로거에 기록되는 로그를 수집하는 Hook을 설치합니다.
// 테스트 종료 시 기존 Hook, 출력 대상, 로그 레벨을 복구합니다.
//
// 주의: 전역 로거 상태를 변경하므로 이 함수를 사용하는 테스트는 t.Parallel()을 호출하면 안 됩니다.
func CaptureLogs(t testing.TB) *test.Hook {
	t.Helper()

	logger := applog.StandardLogger()

	originalOut := logger.Out
	originalLevel := logger.GetLevel()
	originalHooks := logger.ReplaceHooks(make(logrus.LevelHooks))

	hook := new(test.Hook)
	logger.AddHook(hook)
	logger.SetOutput(io.Discard)
	logger.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		logger.ReplaceHooks(originalHooks)
		logger.SetOutput(originalOut)
		logger.SetLevel(originalLevel)
	})

	return hook
}

// FindLogEntry 수집된 로그 중 메시지가 일치하는 첫 번째 항목을 반환합니다.
func FindLogEntry(hook *test.Hook, message string) *logrus.Entry {
	for _, entry := range hook.AllEntries() {
		if entry.Message == message {
			return entry
		}
	}
	return nil
}
