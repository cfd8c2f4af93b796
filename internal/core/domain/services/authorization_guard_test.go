package services_test

import (
	"testing"

	"orders/internal/core/domain/model/actor"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/order/ordertest"
	"orders/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, id kernel.UUID, isAdmin bool) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, isAdmin)
	require.NoError(t, err)
	return a
}

func TestAuthorizationGuard_OrderScoped(t *testing.T) {
	ownerID := kernel.NewUUID()
	o := ordertest.NewOrder(t, ownerID)
	g := services.NewAuthorizationGuard()

	testCases := []struct {
		name     string
		actor    actor.Actor
		expected bool
	}{
		{"owner", newActor(t, ownerID, false), true},
		{"admin", newActor(t, kernel.NewUUID(), true), true},
		{"owner who is admin", newActor(t, ownerID, true), true},
		{"stranger", newActor(t, kernel.NewUUID(), false), false},
		{"unauthenticated", actor.Actor{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, g.CanCancel(tc.actor, o))
			assert.Equal(t, tc.expected, g.CanView(tc.actor, o))
		})
	}
}

func TestAuthorizationGuard_AdminOnly(t *testing.T) {
	g := services.AuthorizationGuard{}
	admin := newActor(t, kernel.NewUUID(), true)
	user := newActor(t, kernel.NewUUID(), false)

	assert.True(t, g.CanViewAll(admin))
	assert.True(t, g.CanMarkDelivered(admin))
	assert.False(t, g.CanViewAll(user))
	assert.False(t, g.CanMarkDelivered(user))
	assert.False(t, g.CanViewAll(actor.Actor{}))
}

func TestAuthorizationGuard_DoesNotMutate(t *testing.T) {
	o := ordertest.InStatus(t, kernel.NewUUID(), order.Paid)
	stranger := newActor(t, kernel.NewUUID(), false)

	services.NewAuthorizationGuard().CanCancel(stranger, o)

	assert.Equal(t, order.Paid, o.Status())
	assert.Empty(t, o.DomainEvents())
}

func TestAuthorizationGuard_RejectsNilOrder(t *testing.T) {
	admin := newActor(t, kernel.NewUUID(), true)

	assert.False(t, services.NewAuthorizationGuard().CanCancel(admin, nil))
}
