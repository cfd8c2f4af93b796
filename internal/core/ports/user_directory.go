package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// UserProfile is the display information of an order owner.
type UserProfile struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// UserDirectory resolves owner profiles for presentation. It is consulted by the
// transport boundary only; the order core never needs it.
type UserDirectory interface {
	// Lookup returns profiles for the given ids, keyed by id. Unknown ids are absent
	// from the result rather than reported as errors.
	Lookup(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]UserProfile, error)
}
