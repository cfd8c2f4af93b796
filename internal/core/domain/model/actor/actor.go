// Package actor describes the authenticated principal issuing a request.
package actor

import (
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor")

// Actor is the caller of an operation: an identity and an admin flag.
// It is supplied by the transport boundary after authentication.
type Actor struct {
	id      kernel.UUID
	isAdmin bool
	guard   guard.ConstructorGuard
}

func NewActor(id kernel.UUID, isAdmin bool) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, isAdmin: isAdmin, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID { return a.id }
func (a Actor) IsAdmin() bool   { return a.isAdmin }
