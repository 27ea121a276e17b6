package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jtbrown6/language-storygen/internal/ai"
)

// MockSpeechClient is a mock type for the ai.SpeechClient type
type MockSpeechClient struct {
	mock.Mock
}

// Synthesize provides a mock function with given fields: ctx, req
func (_m *MockSpeechClient) Synthesize(ctx context.Context, req ai.SpeechRequest) ([]byte, error) {
	ret := _m.Called(ctx, req)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0, ret.Error(1)
}

// NewMockSpeechClient creates a new instance of MockSpeechClient. It also registers
// a testing interface on the mock. The first argument is typically a *testing.T value.
func NewMockSpeechClient(t interface {
	mock.TestingT
	Helper()
}) *MockSpeechClient {
	m := &MockSpeechClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ ai.SpeechClient = (*MockSpeechClient)(nil)
