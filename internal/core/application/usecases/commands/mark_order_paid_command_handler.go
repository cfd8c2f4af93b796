package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// MarkOrderPaidCommandHandler records a payment result and moves the order to Paid.
// A repeated confirmation fails with an invalid status transition so that duplicate
// provider notifications are visible to the caller.
type MarkOrderPaidCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewMarkOrderPaidCommandHandler(uowFactory OrderUoWFactory, clock Clock) MarkOrderPaidCommandHandler {
	return MarkOrderPaidCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

func (h MarkOrderPaidCommandHandler) Handle(ctx context.Context, cmd MarkOrderPaidCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.MarkPaid(cmd.PaymentResult(), h.clock())
	})
}
