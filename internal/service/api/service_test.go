package api

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/contenthub-server/internal/config"
	"github.com/darkkaiser/contenthub-server/internal/service/api/constants"
	"github.com/darkkaiser/contenthub-server/internal/service/metrics"
	"github.com/darkkaiser/contenthub-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestAppConfig(port int) *config.AppConfig {
	return &config.AppConfig{
		HTTP: config.HTTPConfig{
			ListenPort:     port,
			RequestTimeout: 5 * time.Second,
		},
		CORS:      config.CORSConfig{AllowOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 20, Burst: 40},
	}
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

func getHealth(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()

	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestNewService(t *testing.T) {
	t.Parallel()

	t.Run("필수 의존성 누락", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, constants.PanicMsgAppConfigRequired, func() {
			NewService(nil, &mockAlertSender{}, nil)
		})
		assert.PanicsWithValue(t, constants.PanicMsgAlertSenderRequired, func() {
			NewService(&config.AppConfig{}, nil, nil)
		})
	})

	t.Run("정상 생성", func(t *testing.T) {
		t.Parallel()

		appConfig := newTestAppConfig(8080)
		sender := &mockAlertSender{}
		m := metrics.New()

		s := NewService(appConfig, sender, m)

		assert.Same(t, appConfig, s.appConfig)
		assert.Same(t, sender, s.alertSender)
		assert.Same(t, m, s.metrics)
		assert.False(t, s.running)
	})
}

func TestService_setupServer(t *testing.T) {
	t.Parallel()

	appConfig := newTestAppConfig(8080)
	appConfig.Debug = true

	e := NewService(appConfig, &mockAlertSender{}, nil).setupServer()

	assert.True(t, e.Debug)
	require.Len(t, e.Routes(), 1)
	assert.Equal(t, constants.HealthPath, e.Routes()[0].Path)
}

func TestService_StartAndShutdown(t *testing.T) {
	port := testutil.FreePort(t)
	sender := &mockAlertSender{}
	s := NewService(newTestAppConfig(port), sender, metrics.New())

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	require.NoError(t, testutil.WaitForServer(port, 5*time.Second))

	client := testutil.NewHTTPClient(2 * time.Second)
	url := fmt.Sprintf("http://127.0.0.1:%d/api/health", port)

	for _, target := range []string{url, url + "?foo=bar"} {
		code, body := getHealth(t, client, target)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, `{"status":"ok"}`, body)
	}

	cancel()
	waitGroupDone(t, wg, 10*time.Second)

	assert.NoError(t, testutil.WaitForServerDown(port, 5*time.Second))
	assert.False(t, s.running)
	sender.AssertNotCalled(t, "NotifyError", mock.Anything)
}

func TestService_DoubleStart(t *testing.T) {
	port := testutil.FreePort(t)
	s := NewService(newTestAppConfig(port), &mockAlertSender{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(2)

	require.NoError(t, s.Start(ctx, wg))
	require.NoError(t, s.Start(ctx, wg), "중복 시작은 에러 없이 무시되어야 합니다")
	require.NoError(t, testutil.WaitForServer(port, 5*time.Second))

	cancel()
	waitGroupDone(t, wg, 10*time.Second)
}

func TestService_StartTLS(t *testing.T) {
	certFile, keyFile := testutil.GenerateSelfSignedCert(t)

	port := testutil.FreePort(t)
	appConfig := newTestAppConfig(port)
	appConfig.HTTP.TLSServer = true
	appConfig.HTTP.TLSCertFile = certFile
	appConfig.HTTP.TLSKeyFile = keyFile

	s := NewService(appConfig, &mockAlertSender{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	require.NoError(t, testutil.WaitForServer(port, 5*time.Second))

	pemBytes, err := os.ReadFile(certFile)
	require.NoError(t, err)
	pool := x509.NewCertPool()
	require.True(t, pool.AppendCertsFromPEM(pemBytes))

	client := &http.Client{
		Timeout: 2 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig:   &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12},
			DisableKeepAlives: true,
		},
	}

	code, body := getHealth(t, client, fmt.Sprintf("https://127.0.0.1:%d/api/health", port))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"status":"ok"}`, body)

	cancel()
	waitGroupDone(t, wg, 10*time.Second)
}

func TestService_UnexpectedExit(t *testing.T) {
	t.Run("인증서 파일 오류", func(t *testing.T) {
		appConfig := newTestAppConfig(testutil.FreePort(t))
		appConfig.HTTP.TLSServer = true
		appConfig.HTTP.TLSCertFile = filepath.Join(t.TempDir(), "missing-cert.pem")
		appConfig.HTTP.TLSKeyFile = filepath.Join(t.TempDir(), "missing-key.pem")

		sender := &mockAlertSender{}
		sender.On("NotifyError", mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, constants.LogMsgServiceHTTPServerFatalError)
		})).Once()

		s := NewService(appConfig, sender, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		wg := &sync.WaitGroup{}
		wg.Add(1)
		require.NoError(t, s.Start(ctx, wg))

		// 컨텍스트를 취소하지 않아도 서버가 종료되면 서비스도 종료되어야 합니다.
		waitGroupDone(t, wg, 5*time.Second)

		sender.AssertExpectations(t)
		assert.False(t, s.running)
	})

	t.Run("포트 충돌", func(t *testing.T) {
		l, err := net.Listen("tcp", ":0")
		require.NoError(t, err)
		defer l.Close()

		sender := &mockAlertSender{}
		sender.On("NotifyError", mock.Anything).Once()

		s := NewService(newTestAppConfig(l.Addr().(*net.TCPAddr).Port), sender, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		wg := &sync.WaitGroup{}
		wg.Add(1)
		require.NoError(t, s.Start(ctx, wg))

		waitGroupDone(t, wg, 5*time.Second)
		sender.AssertExpectations(t)
	})
}

func TestService_handleServerError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantNotify bool
	}{
		{"nil", nil, false},
		{"정상 종료", http.ErrServerClosed, false},
		{"감싼 정상 종료", fmt.Errorf("closed: %w", http.ErrServerClosed), false},
		{"예상치 못한 에러", errors.New("bind: address already in use"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockAlertSender{}
			if tt.wantNotify {
				sender.On("NotifyError", mock.MatchedBy(func(msg string) bool {
					return strings.Contains(msg, tt.err.Error())
				})).Once()
			}

			s := NewService(newTestAppConfig(8080), sender, nil)
			s.handleServerError(tt.err)

			if tt.wantNotify {
				sender.AssertExpectations(t)
			} else {
				sender.AssertNotCalled(t, "NotifyError", mock.Anything)
			}
		})
	}
}
