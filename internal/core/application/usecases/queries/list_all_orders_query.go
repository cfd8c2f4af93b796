package queries

import (
	"errors"

	"orders/internal/core/domain/model/actor"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrListAllOrdersQueryIsNotConstructed = errors.New(
	"ListAllOrdersQuery must be created via NewListAllOrdersQuery constructor",
)

// ListAllOrdersQuery lists every order, optionally only those in one status.
type ListAllOrdersQuery struct {
	actor  actor.Actor
	status *order.Status
	guard  guard.ConstructorGuard
}

// NewListAllOrdersQuery builds the query. A nil status lists orders in every status.
func NewListAllOrdersQuery(by actor.Actor, status *order.Status) (ListAllOrdersQuery, error) {
	if err := by.Validate(); err != nil {
		return ListAllOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListAllOrdersQuery{}, err
		}
		s := *status
		status = &s
	}
	return ListAllOrdersQuery{actor: by, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAllOrdersQueryIsNotConstructed)
}

func (q ListAllOrdersQuery) Actor() actor.Actor    { return q.actor }
func (q ListAllOrdersQuery) Status() *order.Status { return q.status }
