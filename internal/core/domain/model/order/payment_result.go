package order

import (
	"errors"
	"strings"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrPaymentResultIsNotConstructed = errs.NewValueIsRequiredError("paymentResult")

// PaymentResult is the outcome reported by the upstream payment provider.
// Fields are stored verbatim; the provider's id and status are required,
// update time and payer email are kept as sent, even when empty.
type PaymentResult struct {
	externalID string
	status     string
	updateTime string
	payerEmail string
	guard      guard.ConstructorGuard
}

func NewPaymentResult(externalID, status, updateTime, payerEmail string) (PaymentResult, error) {
	if err := errors.Join(
		required("paymentResult.id", strings.TrimSpace(externalID)),
		required("paymentResult.status", strings.TrimSpace(status)),
	); err != nil {
		return PaymentResult{}, err
	}

	return PaymentResult{
		externalID: externalID,
		status:     status,
		updateTime: updateTime,
		payerEmail: payerEmail,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (r PaymentResult) Validate() error {
	return r.guard.Validate(ErrPaymentResultIsNotConstructed)
}

func (r PaymentResult) ExternalID() string { return r.externalID }
func (r PaymentResult) Status() string     { return r.status }
func (r PaymentResult) UpdateTime() string { return r.updateTime }
func (r PaymentResult) PayerEmail() string { return r.payerEmail }
