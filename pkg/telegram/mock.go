package telegram

import (
	"context"
	"errors"
	"sync"
)

type MockCall struct {
	ChatID int64
	Text   string
}

// MockClient 可配置的投递客户端 mock，实现 Client 接口
type MockClient struct {
	mu    sync.Mutex
	Calls []MockCall

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool

	// FailFor 中列出的 chatID 每次都失败
	FailFor map[int64]bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls:   make([]MockCall, 0),
		FailFor: make(map[int64]bool),
	}
}

func (m *MockClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{ChatID: chatID, Text: text})

	if m.FailNext {
		m.FailNext = false
		return errors.New("mock telegram send failure")
	}

	if m.FailFor[chatID] {
		return errors.New("mock telegram send failure")
	}

	return nil
}

// SentTo 返回是否向指定 chat 发送过消息
func (m *MockClient) SentTo(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, call := range m.Calls {
		if call.ChatID == chatID {
			return true
		}
	}
	return false
}
