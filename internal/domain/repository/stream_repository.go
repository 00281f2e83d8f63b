package repository

import (
	"context"

	"github.com/carnaval-microservice/internal/domain"
)

// StreamRepository - interface for publishing and consuming domain events
// over Redis Streams. Delivery is best-effort: a failed publish is logged
// and never fails the originating operation.
type StreamRepository interface {
	// PublishToStream publishes an event to a stream
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// CreateConsumerGroup creates a consumer group for a stream
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream reads messages from a stream via a consumer group
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
