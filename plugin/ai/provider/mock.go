package provider

import (
	"context"
	"sync"
)

// MockAdapter is a scriptable adapter for tests.
type MockAdapter struct {
	mu sync.Mutex

	Provider ID
	Reply    *Reply
	Err      error
	// SendFunc, when set, overrides Reply/Err.
	SendFunc func(ctx context.Context, request *Request) (*Reply, error)

	Calls    int
	LastSent *Request
}

// NewMockAdapter creates a mock that answers with the given text.
func NewMockAdapter(provider ID, text string) *MockAdapter {
	return &MockAdapter{
		Provider: provider,
		Reply:    &Reply{Text: text, Metadata: map[string]any{}},
	}
}

// NewFailingMockAdapter creates a mock that always fails with a classified error.
func NewFailingMockAdapter(provider ID, kind ErrorKind, err error) *MockAdapter {
	return &MockAdapter{
		Provider: provider,
		Err:      newError(provider, kind, err),
	}
}

func (m *MockAdapter) ID() ID {
	return m.Provider
}

func (m *MockAdapter) Send(ctx context.Context, request *Request) (*Reply, error) {
	m.mu.Lock()
	m.Calls++
	m.LastSent = request
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, request)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Reply, nil
}

var _ Adapter = (*MockAdapter)(nil)
