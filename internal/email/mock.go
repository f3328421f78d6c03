package email

import "sync"

// MockProvider is used for tests and local development. It records sent
// messages instead of delivering them.
type MockProvider struct {
	mu   sync.Mutex
	Sent []Email
}

func (m *MockProvider) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, *email)
	return nil
}

func (m *MockProvider) Close() error { return nil }
