package api

import (
	"github.com/darkkaiser/contenthub-server/internal/service/notification"
	"github.com/stretchr/testify/mock"
)

// mockAlertSender notification.Sender 인터페이스의 Mock 구현체
type mockAlertSender struct {
	mock.Mock
}

func (m *mockAlertSender) NotifyError(message string) {
	m.Called(message)
}

func (m *mockAlertSender) Close() error {
	return m.Called().Error(0)
}

var _ notification.Sender = (*mockAlertSender)(nil)
