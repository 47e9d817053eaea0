package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer Setup이 생성한 로그 파일들(Main, Critical, Verbose)의 해제를 통합 관리합니다.
// Close는 여러 번 호출해도 안전하며, 두 번째 이후 호출은 nil을 반환합니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	// 파일을 닫기 전에 Hook을 먼저 비활성화하여 닫힌 파일에 대한 쓰기를 막습니다.
	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}

		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}

		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}

// silentFormatter 아무것도 출력하지 않는 포맷터입니다.
// 실제 포맷팅은 hook에서 수행하므로 logrus 기본 출력 경로의 포맷팅 비용을 없애기 위해 사용합니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *Entry) ([]byte, error) {
	return nil, nil
}
