// Package middleware API 서버의 Echo 미들웨어를 제공합니다.
//
// 제공되는 미들웨어:
//
//   - PanicRecovery: 패닉 복구 및 스택 트레이스 로깅
//   - ServerHeader: 응답의 Server 헤더 제거
//   - HTTPLogger: HTTP 요청/응답 로깅 (민감 정보 마스킹, 헬스체크 제외)
//   - RateLimiting: IP 기반 요청 속도 제한 (헬스체크 제외)
//   - Logger: Echo 로거를 애플리케이션 로거로 연결하는 어댑터
package middleware
