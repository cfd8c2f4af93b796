package order_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/order/ordertest"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	price := ordertest.Money(t, "5.00")

	t.Run("should create an item", func(t *testing.T) {
		item, err := order.NewItem(" p1 ", "", 2, price)

		require.NoError(t, err)
		assert.Equal(t, "p1", item.ProductRef())
		assert.Empty(t, item.Name())
		assert.Equal(t, 2, item.Quantity())
		assert.True(t, item.UnitPrice().IsEqual(price))
	})

	t.Run("should reject a non-positive quantity", func(t *testing.T) {
		for _, q := range []int{0, -1} {
			_, err := order.NewItem("p1", "", q, price)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should reject a blank product reference", func(t *testing.T) {
		_, err := order.NewItem("  ", "", 1, price)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject an unconstructed price", func(t *testing.T) {
		_, err := order.NewItem("p1", "", 1, kernel.Money{})
		assert.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var zero order.Item
		assert.Equal(t, order.ErrItemIsNotConstructed, zero.Validate())
	})
}

func TestNewShippingAddress(t *testing.T) {
	a, err := order.NewShippingAddress("1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	assert.Equal(t, "Springfield", a.City())

	_, err = order.NewShippingAddress("1 Main St", "", "12345", " ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "shippingAddress.city")
	assert.Contains(t, err.Error(), "shippingAddress.country")
}

func TestNewPaymentResult(t *testing.T) {
	t.Run("should keep fields verbatim", func(t *testing.T) {
		r, err := order.NewPaymentResult("pp-1", "COMPLETED", "", "")

		require.NoError(t, err)
		assert.Equal(t, "pp-1", r.ExternalID())
		assert.Empty(t, r.PayerEmail())
	})

	t.Run("should require id and status", func(t *testing.T) {
		_, err := order.NewPaymentResult("", "", "t", "a@b.com")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "paymentResult.id")
		assert.Contains(t, err.Error(), "paymentResult.status")
	})
}
