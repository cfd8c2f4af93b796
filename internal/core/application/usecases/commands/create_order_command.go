package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderItemsAreRequired = errs.NewValueIsRequiredErrorWithCause("orderItems", errors.New("no order items"))
)

// CreateOrderCommand represents a customer placing an order.
// The order id is generated by the caller so that it can be returned even if the
// response is lost.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), ownerID, items, address, "PayPal", totals)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	ownerID         kernel.UUID
	items           []order.Item
	shippingAddress order.ShippingAddress
	paymentMethod   string
	totals          order.Totals

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks that every required part is present. Amounts and the
// total are checked by the aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	ownerID kernel.UUID,
	items []order.Item,
	shippingAddress order.ShippingAddress,
	paymentMethod string,
	totals order.Totals,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		paymentMethod: paymentMethod,
		totals:        totals,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOwnerID(ownerID),
		cmd.setItems(items),
		cmd.setShippingAddress(shippingAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID                   { return c.orderID }
func (c CreateOrderCommand) OwnerID() kernel.UUID                   { return c.ownerID }
func (c CreateOrderCommand) ShippingAddress() order.ShippingAddress { return c.shippingAddress }
func (c CreateOrderCommand) PaymentMethod() string                  { return c.paymentMethod }
func (c CreateOrderCommand) Totals() order.Totals                   { return c.totals }

func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	c.ownerID = ownerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}
	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address order.ShippingAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.shippingAddress = address
	return nil
}
