package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockClient is a test double for ClientInterface
type mockClient struct {
	id       string
	mu       sync.Mutex
	messages [][]byte
	closed   bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{id: id}
}

func (m *mockClient) ID() string { return m.id }

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) messageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	client := newMockClient("c1")

	hub.Register(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	c1 := newMockClient("c1")
	c2 := newMockClient("c2")
	hub.Register(c1)
	hub.Register(c2)

	hub.Broadcast(PaymentRecorded(map[string]string{"id": "p-1"}))

	// Sends are asynchronous
	assert.Eventually(t, func() bool {
		return c1.messageCount() == 1 && c2.messageCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastWithNoClients(t *testing.T) {
	hub := NewHub()
	// Must not panic
	hub.Broadcast(RecordUpdated(nil))
	assert.Equal(t, 0, hub.ClientCount())
}
