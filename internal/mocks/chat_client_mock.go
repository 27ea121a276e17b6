package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jtbrown6/language-storygen/internal/ai"
)

// MockChatClient is a mock type for the ai.ChatClient type
type MockChatClient struct {
	mock.Mock
}

// Complete provides a mock function with given fields: ctx, req
func (_m *MockChatClient) Complete(ctx context.Context, req ai.ChatRequest) (string, ai.Usage, error) {
	ret := _m.Called(ctx, req)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	var r1 ai.Usage
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(ai.Usage)
	}

	return r0, r1, ret.Error(2)
}

// NewMockChatClient creates a new instance of MockChatClient. It also registers
// a testing interface on the mock. The first argument is typically a *testing.T value.
func NewMockChatClient(t interface {
	mock.TestingT
	Helper()
}) *MockChatClient {
	m := &MockChatClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ ai.ChatClient = (*MockChatClient)(nil)
