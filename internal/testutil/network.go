// Package testutil 서비스 테스트에서 공통으로 사용하는 헬퍼 함수를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"
)

// FreePort 테스트용으로 사용 가능한 임의의 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("사용 가능한 포트를 찾지 못했습니다: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForServer 서버가 해당 포트에서 연결을 수락할 때까지 대기합니다.
func WaitForServer(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), 100*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server did not start on port %d within %v", port, timeout)
}

// WaitForServerDown 서버가 더 이상 연결을 수락하지 않을 때까지 대기합니다.
func WaitForServerDown(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), 100*time.Millisecond)
		if err != nil {
			return nil
		}
		_ = conn.Close()
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server on port %d is still accepting connections after %v", port, timeout)
}

// NewHTTPClient Keep-Alive를 사용하지 않는 테스트용 HTTP 클라이언트를 반환합니다.
// 테스트 종료 후 유휴 연결 고루틴이 남지 않도록 합니다.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DisableKeepAlives: true,
		},
	}
}
