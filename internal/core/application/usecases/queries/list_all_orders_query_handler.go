package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// ListAllOrdersQueryHandler returns every order to admins and denies everyone else.
type ListAllOrdersQueryHandler struct {
	reader OrderReader
	guard  services.AuthorizationGuard
}

func NewListAllOrdersQueryHandler(reader OrderReader, guard services.AuthorizationGuard) ListAllOrdersQueryHandler {
	return ListAllOrdersQueryHandler{reader: reader, guard: guard}
}

func (h ListAllOrdersQueryHandler) Handle(ctx context.Context, query ListAllOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !h.guard.CanViewAll(query.Actor()) {
		return nil, errs.NewAccessDeniedError("list all orders", query.Actor().ID().String())
	}

	return h.reader.List(ctx, ports.OrderFilter{Status: query.Status()})
}
