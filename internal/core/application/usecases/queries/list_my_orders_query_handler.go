package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// ListMyOrdersQueryHandler returns the actor's own orders in insertion order.
// Admins get their own orders here too; the full list is ListAllOrdersQuery.
type ListMyOrdersQueryHandler struct {
	reader OrderReader
}

func NewListMyOrdersQueryHandler(reader OrderReader) ListMyOrdersQueryHandler {
	return ListMyOrdersQueryHandler{reader: reader}
}

func (h ListMyOrdersQueryHandler) Handle(ctx context.Context, query ListMyOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ownerID := query.Actor().ID()
	return h.reader.List(ctx, ports.OrderFilter{OwnerID: &ownerID})
}
