package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order if the actor owns it or is an admin.
//
// Checks run in this order: the order must exist, the actor must be allowed, the
// status must allow cancellation, and the stored status must not have changed since
// it was read.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      services.AuthorizationGuard
	clock      Clock
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	guard services.AuthorizationGuard,
	clock Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		clock:      clockOrDefault(clock),
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if !h.guard.CanCancel(cmd.Actor(), o) {
			return errs.NewAccessDeniedError("cancel order", cmd.Actor().ID().String())
		}
		return o.Cancel(h.clock())
	})
}
