package log

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failWriter 항상 에러를 반환하는 Writer입니다.
type failWriter struct {
	err error
}

func (w *failWriter) Write(_ []byte) (int, error) {
	return 0, w.err
}

// safeBuffer hook.Fire는 Read Lock만 잡으므로 동시 쓰기에 안전한 버퍼가 필요합니다.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type errorFormatter struct{}

func (f *errorFormatter) Format(_ *Entry) ([]byte, error) {
	return nil, errors.New("formatting failed")
}

func newTestHook() (*hook, *safeBuffer, *safeBuffer, *safeBuffer, *safeBuffer) {
	mainBuf, critBuf, verbBuf, consBuf := &safeBuffer{}, &safeBuffer{}, &safeBuffer{}, &safeBuffer{}

	h := &hook{
		mainWriter:     mainBuf,
		criticalWriter: critBuf,
		verboseWriter:  verbBuf,
		consoleWriter:  consBuf,
		formatter:      &messageFormatter{},
	}

	return h, mainBuf, critBuf, verbBuf, consBuf
}

// messageFormatter 메시지만 그대로 출력하는 테스트용 포맷터입니다.
type messageFormatter struct{}

func (f *messageFormatter) Format(entry *Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}

func TestHook_Fire_Routing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		level        Level
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{"Error: main + critical", ErrorLevel, true, true, false},
		{"Warn: main", WarnLevel, true, false, false},
		{"Info: main", InfoLevel, true, false, false},
		{"Debug: verbose", DebugLevel, false, false, true},
		{"Trace: verbose", TraceLevel, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, mainBuf, critBuf, verbBuf, consBuf := newTestHook()

			err := h.Fire(&Entry{Level: tt.level, Message: "hello"})
			require.NoError(t, err)

			assert.Equal(t, "hello\n", consBuf.String(), "콘솔에는 모든 레벨이 기록되어야 합니다")
			assert.Equal(t, tt.wantMain, mainBuf.String() != "")
			assert.Equal(t, tt.wantCritical, critBuf.String() != "")
			assert.Equal(t, tt.wantVerbose, verbBuf.String() != "")
		})
	}
}

func TestHook_Fire_Errors(t *testing.T) {
	t.Parallel()

	t.Run("포맷팅 실패 시 에러 반환", func(t *testing.T) {
		t.Parallel()

		h := &hook{mainWriter: &safeBuffer{}, formatter: &errorFormatter{}}
		assert.EqualError(t, h.Fire(&Entry{Level: InfoLevel}), "formatting failed")
	})

	t.Run("Critical 쓰기 실패해도 Main 기록은 수행", func(t *testing.T) {
		t.Parallel()

		writeErr := errors.New("disk full")
		mainBuf := &safeBuffer{}
		h := &hook{
			mainWriter:     mainBuf,
			criticalWriter: &failWriter{err: writeErr},
			formatter:      &messageFormatter{},
		}

		err := h.Fire(&Entry{Level: ErrorLevel, Message: "boom"})
		assert.ErrorIs(t, err, writeErr)
		assert.Equal(t, "boom\n", mainBuf.String())
	})

	t.Run("콘솔 쓰기 실패는 전파하지 않음", func(t *testing.T) {
		t.Parallel()

		h := &hook{
			mainWriter:    &safeBuffer{},
			consoleWriter: &failWriter{err: errors.New("closed")},
			formatter:     &messageFormatter{},
		}
		assert.NoError(t, h.Fire(&Entry{Level: InfoLevel, Message: "ok"}))
	})
}

func TestHook_Close(t *testing.T) {
	t.Parallel()

	h, mainBuf, _, _, consBuf := newTestHook()
	require.NoError(t, h.Close())

	require.NoError(t, h.Fire(&Entry{Level: InfoLevel, Message: "after close"}))
	assert.Empty(t, mainBuf.String())
	assert.Empty(t, consBuf.String())
	assert.Equal(t, AllLevels, h.Levels())
}

func TestHook_ConcurrentFire(t *testing.T) {
	t.Parallel()

	h, mainBuf, _, _, _ := newTestHook()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Fire(&Entry{Level: InfoLevel, Message: "x"})
		}()
	}
	wg.Wait()

	assert.Len(t, mainBuf.String(), 50*len("x\n"))
}
