// Package service 애플리케이션을 구성하는 백그라운드 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 독립된 고루틴에서 실행되는 서비스의 생명주기 인터페이스입니다.
//
// Start는 즉시 반환해야 하며, 서비스는 ctx가 취소되면 종료 처리를 마친 뒤
// 반드시 wg.Done()을 한 번 호출해야 합니다. 호출자는 Start 전에 wg.Add(1)을 수행합니다.
type Service interface {
	Start(ctx context.Context, wg *sync.WaitGroup) error
}
