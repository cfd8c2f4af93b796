// Package outbox stores committed order events in the outbox_messages table and
// relays them to the broker. Rows are written in the same transaction as the order
// change, so an event is published if and only if its transition committed.
package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;index"`
	EventType   string     `gorm:"size:64"`
	Payload     []byte     `gorm:"type:jsonb"`
	OccurredAt  time.Time  `gorm:"index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// NewMessage serializes a domain event into an unpublished outbox row.
func NewMessage(event order.Event) (MessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return MessageDTO{}, fmt.Errorf("marshal %s event: %w", event.EventType(), err)
	}

	return MessageDTO{
		ID:          uuid.New(),
		AggregateID: event.AggregateID().Bytes(),
		EventType:   event.EventType(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt().UTC(),
	}, nil
}

// Outbound converts the row into the broker-facing message, keyed by order id.
func (m MessageDTO) Outbound() ports.OutboundMessage {
	return ports.OutboundMessage{
		ID:         m.ID.String(),
		Key:        m.AggregateID.String(),
		EventType:  m.EventType,
		Payload:    m.Payload,
		OccurredAt: m.OccurredAt,
	}
}
