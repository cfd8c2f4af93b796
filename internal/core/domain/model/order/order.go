package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a customer purchase and the aggregate root of this package. It owns the
// order lifecycle from placement through payment, delivery or cancellation.
//
// Order follows these invariants:
//   - id, owner, items, shipping address, payment method and totals never change after creation
//   - items is never empty
//   - paidAt is set when status is Paid or Delivered, absent when Created, and kept on
//     cancellation after payment; paymentResult is set iff paidAt is
//   - deliveredAt is set iff status is Delivered
//   - Delivered and Cancelled are terminal
//
// Order is not safe for concurrent use. Concurrent writers of the same order are
// serialized by the repository's conditional update, not by the aggregate.
type Order struct {
	id              kernel.UUID
	ownerID         kernel.UUID
	items           []Item
	shippingAddress ShippingAddress
	paymentMethod   string
	totals          Totals

	status        Status
	paymentResult *PaymentResult
	paidAt        *time.Time
	deliveredAt   *time.Time

	createdAt time.Time
	updatedAt time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder places a new order in the Created status and records an OrderCreated event.
//
// All inputs are validated together; the returned error joins every violation.
// totalPrice must equal itemsPrice + taxPrice + shippingPrice within TotalTolerance.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("5.00")
//	item, _ := order.NewItem("p1", "", 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), ownerID, []order.Item{item}, address, "PayPal", totals, time.Now())
func NewOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	items []Item,
	shippingAddress ShippingAddress,
	paymentMethod string,
	totals Totals,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Created,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwnerID(ownerID),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
		o.setPaymentMethod(paymentMethod),
		o.setTotals(totals, true),
	); err != nil {
		return nil, err
	}

	o.record(OrderCreated{
		EventHeader: o.eventHeader(o.createdAt),
		ItemCount:   len(o.items),
		TotalPrice:  o.totals.TotalPrice.String(),
	})
	return o, nil
}

// Snapshot is the persisted state of an order, used to rebuild the aggregate.
type Snapshot struct {
	ID              kernel.UUID
	OwnerID         kernel.UUID
	Items           []Item
	ShippingAddress ShippingAddress
	PaymentMethod   string
	Totals          Totals
	Status          Status
	PaymentResult   *PaymentResult
	PaidAt          *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreOrder rebuilds an Order from storage. It validates the lifecycle invariants
// but does not re-derive the totals, which were checked when the order was placed.
// No events are recorded.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setOwnerID(s.OwnerID),
		o.setItems(s.Items),
		o.setShippingAddress(s.ShippingAddress),
		o.setPaymentMethod(s.PaymentMethod),
		o.setTotals(s.Totals, false),
		o.setLifecycle(s.Status, s.PaymentResult, s.PaidAt, s.DeliveredAt),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// Snapshot captures the persisted state of the order. RestoreOrder(o.Snapshot())
// yields an equal order without its pending events.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		OwnerID:         o.ownerID,
		Items:           o.Items(),
		ShippingAddress: o.shippingAddress,
		PaymentMethod:   o.paymentMethod,
		Totals:          o.totals,
		Status:          o.status,
		PaymentResult:   o.PaymentResult(),
		PaidAt:          o.PaidAt(),
		DeliveredAt:     o.DeliveredAt(),
		CreatedAt:       o.createdAt,
		UpdatedAt:       o.updatedAt,
	}
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                  { return o.id }
func (o *Order) OwnerID() kernel.UUID             { return o.ownerID }
func (o *Order) ShippingAddress() ShippingAddress { return o.shippingAddress }
func (o *Order) PaymentMethod() string            { return o.paymentMethod }
func (o *Order) Totals() Totals                   { return o.totals }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// PaymentResult returns the recorded payment outcome, or nil before payment.
func (o *Order) PaymentResult() *PaymentResult {
	if o.paymentResult == nil {
		return nil
	}
	r := *o.paymentResult
	return &r
}

func (o *Order) PaidAt() *time.Time      { return copyTime(o.paidAt) }
func (o *Order) DeliveredAt() *time.Time { return copyTime(o.deliveredAt) }

// IsPaid reports whether a payment has been recorded. Delivered orders are paid.
func (o *Order) IsPaid() bool { return o.paidAt != nil }

func (o *Order) IsDelivered() bool { return o.status == Delivered }

// IsOwnedBy reports whether ownerID placed this order.
func (o *Order) IsOwnedBy(ownerID kernel.UUID) bool {
	return o.ownerID.IsEqual(ownerID)
}

// MarkPaid records the payment outcome and moves the order from Created to Paid.
//
// Any other starting status fails with *errs.StatusTransitionError and leaves the
// order, including a previously stored payment result, unchanged.
func (o *Order) MarkPaid(result PaymentResult, now time.Time) error {
	if err := result.Validate(); err != nil {
		return err
	}

	next, err := o.status.Pay()
	if err != nil {
		return err
	}

	at := now.UTC()
	o.status = next
	o.paymentResult = &result
	o.paidAt = &at
	o.updatedAt = at

	o.record(OrderPaid{EventHeader: o.eventHeader(at), PaidAt: at})
	return nil
}

// MarkDelivered moves a Paid order to Delivered.
func (o *Order) MarkDelivered(now time.Time) error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}

	at := now.UTC()
	o.status = next
	o.deliveredAt = &at
	o.updatedAt = at

	o.record(OrderDelivered{EventHeader: o.eventHeader(at), DeliveredAt: at})
	return nil
}

// Cancel moves a Created or Paid order to Cancelled. Whether the caller may cancel
// is decided by the authorization guard before this is called.
func (o *Order) Cancel(now time.Time) error {
	previous := o.status
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	at := now.UTC()
	o.status = next
	o.updatedAt = at

	o.record(OrderCancelled{EventHeader: o.eventHeader(at), PreviousStatus: previous.String()})
	return nil
}

// DomainEvents returns the events recorded since the aggregate was loaded or last cleared.
func (o *Order) DomainEvents() []Event {
	events := make([]Event, len(o.events))
	copy(events, o.events)
	return events
}

// ClearDomainEvents drops recorded events once they have been handed to the outbox.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) record(e Event) {
	o.events = append(o.events, e)
}

func (o *Order) eventHeader(at time.Time) EventHeader {
	return EventHeader{
		OrderID:  o.id,
		OwnerID:  o.ownerID,
		Status:   o.status.String(),
		Occurred: at,
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("orderItems", errors.New("no order items"))
	}

	var itemErrs []error
	for i, item := range items {
		if err := item.Validate(); err != nil {
			itemErrs = append(itemErrs, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("orderItems[%d]", i), err))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setShippingAddress(address ShippingAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod string) error {
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setTotals(totals Totals, checkSum bool) error {
	validate := totals.validateAmounts
	if checkSum {
		validate = totals.Validate
	}
	if err := validate(); err != nil {
		return err
	}
	o.totals = totals
	return nil
}

func (o *Order) setLifecycle(status Status, result *PaymentResult, paidAt, deliveredAt *time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	// A Cancelled order keeps paidAt when it was cancelled after payment.
	mustBePaid := status == Paid || status == Delivered
	if (mustBePaid && paidAt == nil) || (status == Created && paidAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause("paidAt", fmt.Errorf("paidAt presence does not match status %s", status))
	}
	if (result != nil) != (paidAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause("paymentResult", fmt.Errorf("paymentResult presence does not match status %s", status))
	}
	if result != nil {
		if err := result.Validate(); err != nil {
			return err
		}
	}
	if (status == Delivered) != (deliveredAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause("deliveredAt", fmt.Errorf("deliveredAt presence does not match status %s", status))
	}

	o.status = status
	o.paymentResult = result
	o.paidAt = copyTime(paidAt)
	o.deliveredAt = copyTime(deliveredAt)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
