package services

import (
	"orders/internal/core/domain/model/actor"
	"orders/internal/core/domain/model/order"
)

// AuthorizationGuard decides which actor may do what with an order.
//
// Rules:
//   - an order can be cancelled and viewed by its owner or by an admin
//   - listing every order and marking an order delivered are admin-only
//
// The zero value is ready to use.
type AuthorizationGuard struct{}

func NewAuthorizationGuard() AuthorizationGuard {
	return AuthorizationGuard{}
}

// CanCancel reports whether a may cancel o.
func (AuthorizationGuard) CanCancel(a actor.Actor, o *order.Order) bool {
	return ownerOrAdmin(a, o)
}

// CanView reports whether a may read o by id.
func (AuthorizationGuard) CanView(a actor.Actor, o *order.Order) bool {
	return ownerOrAdmin(a, o)
}

// CanViewAll reports whether a may list every order in the store.
func (AuthorizationGuard) CanViewAll(a actor.Actor) bool {
	return isAdmin(a)
}

// CanMarkDelivered reports whether a may confirm delivery.
func (AuthorizationGuard) CanMarkDelivered(a actor.Actor) bool {
	return isAdmin(a)
}

func ownerOrAdmin(a actor.Actor, o *order.Order) bool {
	if a.Validate() != nil || o.Validate() != nil {
		return false
	}
	return a.IsAdmin() || o.IsOwnedBy(a.ID())
}

func isAdmin(a actor.Actor) bool {
	return a.Validate() == nil && a.IsAdmin()
}
