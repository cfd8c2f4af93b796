package order

import (
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one immutable line of an order: a product reference, how many units
// were bought and the unit price at the moment of purchase.
type Item struct {
	productRef string
	name       string
	quantity   int
	unitPrice  kernel.Money
	guard      guard.ConstructorGuard
}

// NewItem validates and builds an order line. name is an optional display label.
func NewItem(productRef, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		productRef: strings.TrimSpace(productRef),
		name:       strings.TrimSpace(name),
		quantity:   quantity,
		unitPrice:  unitPrice,
		guard:      guard.NewConstructorGuard(),
	}

	var productErr, quantityErr error
	if item.productRef == "" {
		productErr = errs.NewValueIsRequiredError("productRef")
	}
	if quantity <= 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	if err := errors.Join(productErr, quantityErr, unitPrice.Validate()); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductRef() string      { return i.productRef }
func (i Item) Name() string            { return i.name }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }
