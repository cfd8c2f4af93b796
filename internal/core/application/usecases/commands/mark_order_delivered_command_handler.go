package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// MarkOrderDeliveredCommandHandler moves a Paid order to Delivered.
type MarkOrderDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewMarkOrderDeliveredCommandHandler(uowFactory OrderUoWFactory, clock Clock) MarkOrderDeliveredCommandHandler {
	return MarkOrderDeliveredCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

func (h MarkOrderDeliveredCommandHandler) Handle(
	ctx context.Context,
	cmd MarkOrderDeliveredCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.MarkDelivered(h.clock())
	})
}
