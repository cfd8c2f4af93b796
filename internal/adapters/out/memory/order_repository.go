package memory

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over an OrderStore. Bound to a
// UnitOfWork it stages writes until Commit; unbound it writes through immediately.
type OrderRepository struct {
	store *OrderStore
	uow   *UnitOfWork
}

// NewOrderRepository returns a repository that writes straight to store. It also
// serves the query handlers.
func NewOrderRepository(store *OrderStore) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.stage(write{aggregate: aggregate})
}

func (r *OrderRepository) UpdateIfStatus(_ context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	// Fail fast when another writer has already committed; Commit checks again.
	current, ok := r.store.get(aggregate.ID())
	if !ok || current.Status != expected {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String())
	}

	return r.stage(write{aggregate: aggregate, expected: &expected})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	snapshot, ok := r.store.get(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snapshot)
}

func (r *OrderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	orders := make([]*order.Order, 0)
	for _, snapshot := range r.store.snapshots() {
		if filter.OwnerID != nil && !snapshot.OwnerID.IsEqual(*filter.OwnerID) {
			continue
		}
		if filter.Status != nil && snapshot.Status != *filter.Status {
			continue
		}

		o, err := order.RestoreOrder(snapshot)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) stage(w write) error {
	if r.uow == nil {
		return r.store.apply([]write{w})
	}
	return r.uow.stage(w)
}
