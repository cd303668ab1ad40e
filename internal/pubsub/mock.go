package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Mock is a mock implementation of the PubSubClient interface for testing.
// It records published payloads instead of talking to GCP.
type Mock struct {
	mu       sync.Mutex
	project  string
	Messages map[string][]any
}

// NewMock creates a new mock instance.
func NewMock(projectID string) *Mock {
	return &Mock{
		project:  projectID,
		Messages: make(map[string][]any),
	}
}

func (m *Mock) SendMessage(topic string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages[topic] = append(m.Messages[topic], data)
	return nil
}

func (m *Mock) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}

// Published returns the payloads sent to a topic.
func (m *Mock) Published(topic string) []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]any(nil), m.Messages[topic]...)
}
