package pubsub

import (
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// noop is used when no GCP project is configured; events are dropped.
type noop struct{}

// NewNoop creates a PubSubClient that discards all messages.
func NewNoop() PubSubClient {
	return noop{}
}

func (noop) SendMessage(topic string, _ any) error {
	log.Debug("Pub/Sub disabled, dropping message", "topic", topic)
	return nil
}

func (noop) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}
