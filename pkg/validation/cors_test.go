package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCORSOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origin  string
		wantErr bool
	}{
		{"성공: 와일드카드", "*", false},
		{"성공: https 도메인", "https://example.com", false},
		{"성공: 포트 포함", "http://localhost:3000", false},
		{"성공: IPv4", "http://192.168.0.10:8080", false},
		{"성공: IPv6", "http://[::1]:8080", false},
		{"실패: 빈 문자열", "  ", true},
		{"실패: 후행 슬래시", "https://example.com/", true},
		{"실패: 지원하지 않는 스키마", "ftp://example.com", true},
		{"실패: 경로 포함", "https://example.com/path", true},
		{"실패: 쿼리 포함", "https://example.com?a=b", true},
		{"실패: 사용자 정보 포함", "https://user:pw@example.com", true},
		{"실패: 포트 범위 초과", "https://example.com:70000", true},
		{"실패: 잘못된 호스트명", "https://-bad-.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateCORSOrigin(tt.origin)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(65536))
}
