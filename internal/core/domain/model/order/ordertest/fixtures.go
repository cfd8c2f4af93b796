// Package ordertest builds valid orders for tests in other packages.
package ordertest

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// Now is the fixed clock used by fixtures.
var Now = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func Money(t testing.TB, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount)
	require.NoError(t, err)
	return m
}

// Items returns a single line: 2 x p1 at 5.00.
func Items(t testing.TB) []order.Item {
	t.Helper()
	item, err := order.NewItem("p1", "Airpods", 2, Money(t, "5.00"))
	require.NoError(t, err)
	return []order.Item{item}
}

func Address(t testing.TB) order.ShippingAddress {
	t.Helper()
	a, err := order.NewShippingAddress("1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	return a
}

// Totals returns 10.00 + 1.00 + 2.00 = 13.00.
func Totals(t testing.TB) order.Totals {
	t.Helper()
	return order.Totals{
		ItemsPrice:    Money(t, "10.00"),
		TaxPrice:      Money(t, "1.00"),
		ShippingPrice: Money(t, "2.00"),
		TotalPrice:    Money(t, "13.00"),
	}
}

func PaymentResult(t testing.TB) order.PaymentResult {
	t.Helper()
	r, err := order.NewPaymentResult("pp-1", "COMPLETED", "t", "a@b.com")
	require.NoError(t, err)
	return r
}

// NewOrder places a Created order owned by ownerID and clears its creation event.
func NewOrder(t testing.TB, ownerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), ownerID, Items(t), Address(t), "PayPal", Totals(t), Now)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

// InStatus returns an order owned by ownerID advanced to status through the legal transitions.
func InStatus(t testing.TB, ownerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o := NewOrder(t, ownerID)
	switch status {
	case order.Created:
	case order.Paid:
		require.NoError(t, o.MarkPaid(PaymentResult(t), Now))
	case order.Delivered:
		require.NoError(t, o.MarkPaid(PaymentResult(t), Now))
		require.NoError(t, o.MarkDelivered(Now))
	case order.Cancelled:
		require.NoError(t, o.Cancel(Now))
	default:
		t.Fatalf("cannot build an order in status %s", status)
	}
	o.ClearDomainEvents()
	return o
}
