package infrastructure

import (
	"context"
)

// MessagePublisher delivers an encoded pool event to a broker subject.
// NATSClient is the JetStream-backed implementation; tests substitute a mock.
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

var _ MessagePublisher = (*NATSClient)(nil)
