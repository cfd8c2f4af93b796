package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrMarkOrderPaidCommandIsNotConstructed = errors.New(
	"MarkOrderPaidCommand must be created via NewMarkOrderPaidCommand constructor",
)

// MarkOrderPaidCommand confirms payment of an order with the provider's result.
type MarkOrderPaidCommand struct {
	orderID kernel.UUID
	result  order.PaymentResult

	guard guard.ConstructorGuard
}

func NewMarkOrderPaidCommand(orderID kernel.UUID, result order.PaymentResult) (MarkOrderPaidCommand, error) {
	if err := errors.Join(orderID.Validate(), result.Validate()); err != nil {
		return MarkOrderPaidCommand{}, err
	}

	return MarkOrderPaidCommand{
		orderID: orderID,
		result:  result,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOrderPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderPaidCommandIsNotConstructed)
}

func (c MarkOrderPaidCommand) OrderID() kernel.UUID               { return c.orderID }
func (c MarkOrderPaidCommand) PaymentResult() order.PaymentResult { return c.result }
