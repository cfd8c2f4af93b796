package order

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TotalTolerance is the largest accepted difference between TotalPrice and the
// sum of the other three amounts, absorbing client-side rounding.
var TotalTolerance = decimal.New(1, -kernel.MoneyScale)

// Totals are the monetary amounts fixed when an order is placed.
type Totals struct {
	ItemsPrice    kernel.Money
	TaxPrice      kernel.Money
	ShippingPrice kernel.Money
	TotalPrice    kernel.Money
}

// Validate checks that every amount was constructed and that TotalPrice equals
// ItemsPrice + TaxPrice + ShippingPrice within TotalTolerance.
func (t Totals) Validate() error {
	if err := t.validateAmounts(); err != nil {
		return err
	}

	sum := t.ItemsPrice.Add(t.TaxPrice).Add(t.ShippingPrice)
	if !t.TotalPrice.IsWithin(sum, TotalTolerance) {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalPrice",
			fmt.Errorf("%s does not equal items + tax + shipping = %s", t.TotalPrice, sum),
		)
	}
	return nil
}

func (t Totals) validateAmounts() error {
	return errors.Join(
		wrapParam("itemsPrice", t.ItemsPrice.Validate()),
		wrapParam("taxPrice", t.TaxPrice.Validate()),
		wrapParam("shippingPrice", t.ShippingPrice.Validate()),
		wrapParam("totalPrice", t.TotalPrice.Validate()),
	)
}

func wrapParam(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
