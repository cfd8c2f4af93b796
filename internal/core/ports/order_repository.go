// Package ports defines the contracts between the order core and its adapters.
// Implementations live under internal/adapters/out.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderFilter narrows List. A nil field matches every order.
type OrderFilter struct {
	OwnerID *kernel.UUID
	Status  *order.Status
}

// OrderRepository is the durable keyed store for Order aggregates.
//
// Errors:
//   - *errs.ObjectNotFoundError when Get finds no order
//   - *errs.ConcurrencyConflictError when UpdateIfStatus loses a race
//   - *errs.StorageUnavailableError for any failure of the backing store
type OrderRepository interface {
	// Add persists a newly placed order.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus persists the aggregate only if the stored status still equals
	// expected, the status the caller read before applying its transition.
	// This compare-and-set is what serializes concurrent transitions of one order.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get loads an order by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns the orders matching filter in insertion order.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
