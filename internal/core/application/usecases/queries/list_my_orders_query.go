package queries

import (
	"errors"

	"orders/internal/core/domain/model/actor"
	"orders/internal/pkg/guard"
)

var ErrListMyOrdersQueryIsNotConstructed = errors.New(
	"ListMyOrdersQuery must be created via NewListMyOrdersQuery constructor",
)

// ListMyOrdersQuery lists the orders placed by the actor.
type ListMyOrdersQuery struct {
	actor actor.Actor
	guard guard.ConstructorGuard
}

func NewListMyOrdersQuery(by actor.Actor) (ListMyOrdersQuery, error) {
	if err := by.Validate(); err != nil {
		return ListMyOrdersQuery{}, err
	}
	return ListMyOrdersQuery{actor: by, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListMyOrdersQueryIsNotConstructed)
}

func (q ListMyOrdersQuery) Actor() actor.Actor { return q.actor }
