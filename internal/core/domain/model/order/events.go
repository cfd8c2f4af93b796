package order

import (
	"time"

	"orders/internal/core/domain/model/kernel"
)

// Event type names, used as the outbox event_type and the Kafka event-type header.
const (
	EventTypeOrderCreated   = "order.created"
	EventTypeOrderPaid      = "order.paid"
	EventTypeOrderDelivered = "order.delivered"
	EventTypeOrderCancelled = "order.cancelled"
)

// Event is a fact recorded by an Order transition. Events are collected on the
// aggregate and drained by the persistence layer when the unit of work commits.
//
// Payloads carry identifiers, status and totals only. Addresses and payment
// identifiers never leave the aggregate through events.
type Event interface {
	EventType() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

// EventHeader holds the fields every order event shares.
type EventHeader struct {
	OrderID  kernel.UUID `json:"orderId"`
	OwnerID  kernel.UUID `json:"ownerId"`
	Status   string      `json:"status"`
	Occurred time.Time   `json:"occurredAt"`
}

func (h EventHeader) AggregateID() kernel.UUID { return h.OrderID }
func (h EventHeader) OccurredAt() time.Time    { return h.Occurred }

type OrderCreated struct {
	EventHeader
	ItemCount  int    `json:"itemCount"`
	TotalPrice string `json:"totalPrice"`
}

func (OrderCreated) EventType() string { return EventTypeOrderCreated }

type OrderPaid struct {
	EventHeader
	PaidAt time.Time `json:"paidAt"`
}

func (OrderPaid) EventType() string { return EventTypeOrderPaid }

type OrderDelivered struct {
	EventHeader
	DeliveredAt time.Time `json:"deliveredAt"`
}

func (OrderDelivered) EventType() string { return EventTypeOrderDelivered }

type OrderCancelled struct {
	EventHeader
	PreviousStatus string `json:"previousStatus"`
}

func (OrderCancelled) EventType() string { return EventTypeOrderCancelled }
