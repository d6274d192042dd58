package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// EventPublisher pushes status change notifications to the message broker.
// Handlers publish after the transaction commits; a publish failure must not
// roll the state change back.
type EventPublisher interface {
	// PublishOrderStatusChanged announces that an order moved to a new status.
	PublishOrderStatusChanged(ctx context.Context, event order.StatusChanged) error

	// PublishLineStatusChanged announces that a single line moved to a new status.
	PublishLineStatusChanged(ctx context.Context, event order.LineStatusChanged) error

	// Close releases broker connections.
	Close() error
}
