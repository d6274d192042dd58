// Package ports defines the contracts between the application core and
// infrastructure. These interfaces establish the boundary that enables
// dependency inversion and testability.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and locking order entities with
// their complete state: lines, event ledgers, discounts and notes.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Events,
	// discounts, notes and status changes are append-only; existing child
	// rows are never rewritten except for editable notes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its business order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetByNumberForUpdate retrieves an order by number while holding a row
	// lock until the surrounding transaction ends. Commands that validate
	// ledger quantities before appending events load through this method so
	// concurrent events cannot both pass validation.
	GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error)
}
