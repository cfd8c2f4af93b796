package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// transitionFunc applies one lifecycle operation to a loaded order.
type transitionFunc func(o *order.Order) error

// runTransition is the read-modify-write shared by the mutating handlers. The status
// read here is the precondition of the conditional write, so a concurrent transition
// committed in between makes UpdateIfStatus fail with a concurrency conflict.
func runTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	apply transitionFunc,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	readStatus := o.Status()
	if err = apply(o); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateIfStatus(ctx, o, readStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
