package metrics

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/contenthub-server/internal/config"
	"github.com/darkkaiser/contenthub-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// waitGroupDone WaitGroup이 제한 시간 안에 완료되는지 확인합니다.
func waitGroupDone(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("서비스가 제한 시간 안에 종료되지 않았습니다")
	}
}

func TestNewService_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewService(nil, New()) })
	assert.Panics(t, func() { NewService(&config.AppConfig{}, nil) })
}

func TestService_Start(t *testing.T) {
	t.Run("비활성화 상태", func(t *testing.T) {
		s := NewService(&config.AppConfig{}, New())

		wg := &sync.WaitGroup{}
		wg.Add(1)
		require.NoError(t, s.Start(context.Background(), wg))

		waitGroupDone(t, wg, time.Second)
	})

	t.Run("지표 노출 및 종료", func(t *testing.T) {
		port := testutil.FreePort(t)
		s := NewService(&config.AppConfig{
			Metrics: config.MetricsConfig{Enabled: true, ListenPort: port},
		}, New())

		ctx, cancel := context.WithCancel(context.Background())
		wg := &sync.WaitGroup{}
		wg.Add(1)
		require.NoError(t, s.Start(ctx, wg))
		require.NoError(t, testutil.WaitForServer(port, 5*time.Second))

		client := testutil.NewHTTPClient(2 * time.Second)
		resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d%s", port, MetricsPath))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "go_goroutines")

		cancel()
		waitGroupDone(t, wg, 10*time.Second)
		assert.NoError(t, testutil.WaitForServerDown(port, 5*time.Second))
	})

	t.Run("중복 시작", func(t *testing.T) {
		port := testutil.FreePort(t)
		s := NewService(&config.AppConfig{
			Metrics: config.MetricsConfig{Enabled: true, ListenPort: port},
		}, New())

		ctx, cancel := context.WithCancel(context.Background())
		wg := &sync.WaitGroup{}
		wg.Add(2)
		require.NoError(t, s.Start(ctx, wg))
		require.NoError(t, s.Start(ctx, wg))
		require.NoError(t, testutil.WaitForServer(port, 5*time.Second))

		cancel()
		waitGroupDone(t, wg, 10*time.Second)
	})

	t.Run("포트 충돌 시 서비스 종료", func(t *testing.T) {
		l, err := net.Listen("tcp", ":0")
		require.NoError(t, err)
		defer l.Close()

		s := NewService(&config.AppConfig{
			Metrics: config.MetricsConfig{Enabled: true, ListenPort: l.Addr().(*net.TCPAddr).Port},
		}, New())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		wg := &sync.WaitGroup{}
		wg.Add(1)
		require.NoError(t, s.Start(ctx, wg))

		waitGroupDone(t, wg, 5*time.Second)

		s.runningMu.Lock()
		defer s.runningMu.Unlock()
		assert.False(t, s.running)
	})
}
