package guard_test

import (
	"errors"
	"testing"

	"orders/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type paymentMethod struct {
		name  string
		guard guard.ConstructorGuard
	}
	errPaymentMethodNotConstructed := errors.New("payment method must be created via newPaymentMethod")

	newPaymentMethod := func(name string) (paymentMethod, error) {
		if name == "" {
			return paymentMethod{}, errors.New("payment method is required")
		}
		return paymentMethod{name: name, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		pm, err := newPaymentMethod("PayPal")

		require.NoError(t, err)
		require.NoError(t, pm.guard.Validate(errPaymentMethodNotConstructed))
	})

	t.Run("zero_value_fails", func(t *testing.T) {
		var pm paymentMethod

		assert.Equal(t, errPaymentMethodNotConstructed, pm.guard.Validate(errPaymentMethodNotConstructed))
	})

	t.Run("copy_keeps_guard_state", func(t *testing.T) {
		pm, _ := newPaymentMethod("PayPal")
		cp := pm

		require.NoError(t, cp.guard.Validate(errPaymentMethodNotConstructed))
	})
}
