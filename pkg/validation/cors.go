// Package validation 설정 파일 등 외부 입력값의 형식을 검사하는 함수를 제공합니다.
package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// hostValidator 호스트명 형식 검사에 사용하는 Validator입니다. (*validator.Validate는 동시 사용에 안전합니다)
var hostValidator = validator.New()

// ValidateCORSOrigin 주어진 문자열이 'Scheme://Host[:Port]' 형식의 CORS Origin인지 검증합니다.
//
// 와일드카드('*')는 유효합니다. 스키마는 http/https만 허용하며,
// 경로, 쿼리, Fragment, UserInfo를 포함하면 유효하지 않습니다.
func ValidateCORSOrigin(origin string) error {
	trimmedOrigin := strings.TrimSpace(origin)
	if trimmedOrigin == "*" {
		return nil
	}
	if trimmedOrigin == "" {
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	}
	if strings.HasSuffix(trimmedOrigin, "/") {
		return fmt.Errorf("CORS Origin 포맷 오류: 경로 구분자('/')로 끝날 수 없습니다 (input=%q)", trimmedOrigin)
	}

	u, err := url.Parse(trimmedOrigin)
	if err != nil {
		return fmt.Errorf("CORS Origin 파싱 실패: 유효한 URL 형식이 아닙니다 (input=%q): %w", trimmedOrigin, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS Origin 스키마 오류: 'http' 또는 'https'만 허용됩니다 (input=%q)", trimmedOrigin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("CORS Origin 포맷 오류: 경로, 쿼리, Fragment, 사용자 정보를 포함할 수 없습니다 (input=%q)", trimmedOrigin)
	}

	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("CORS Origin 포트 오류: 포트 번호가 유효하지 않습니다 (input=%q, port=%s)", trimmedOrigin, portStr)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("CORS Origin 포트 오류: %w (input=%q)", err, trimmedOrigin)
		}
	}

	if err := ValidateHostname(u.Hostname()); err != nil {
		return fmt.Errorf("CORS Origin 호스트 유효성 검증 실패: %w", err)
	}

	return nil
}

// ValidatePort 포트 번호가 유효한 범위(1-65535) 내에 있는지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname localhost, IP 주소 또는 RFC 1123 호스트명인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "" {
		return fmt.Errorf("호스트(Host) 정보가 누락되었습니다")
	}
	if host == "localhost" {
		return nil
	}
	if err := hostValidator.Var(host, "ip|fqdn|hostname_rfc1123"); err != nil {
		return fmt.Errorf("호스트명 형식이 올바르지 않습니다 (host=%q)", host)
	}
	return nil
}
