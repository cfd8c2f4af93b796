package order

import (
	"errors"
	"strings"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrShippingAddressIsNotConstructed = errs.NewValueIsRequiredError("shippingAddress")

// ShippingAddress is where the order is shipped. All four parts are required.
type ShippingAddress struct {
	address    string
	city       string
	postalCode string
	country    string
	guard      guard.ConstructorGuard
}

func NewShippingAddress(address, city, postalCode, country string) (ShippingAddress, error) {
	a := ShippingAddress{
		address:    strings.TrimSpace(address),
		city:       strings.TrimSpace(city),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("shippingAddress.address", a.address),
		required("shippingAddress.city", a.city),
		required("shippingAddress.postalCode", a.postalCode),
		required("shippingAddress.country", a.country),
	); err != nil {
		return ShippingAddress{}, err
	}
	return a, nil
}

// Validate rejects the zero value, which is how an absent address reaches the domain.
func (a ShippingAddress) Validate() error {
	return a.guard.Validate(ErrShippingAddressIsNotConstructed)
}

func (a ShippingAddress) Address() string    { return a.address }
func (a ShippingAddress) City() string       { return a.city }
func (a ShippingAddress) PostalCode() string { return a.postalCode }
func (a ShippingAddress) Country() string    { return a.country }

func required(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
