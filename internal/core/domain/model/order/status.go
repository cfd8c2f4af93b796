package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Created ──pay──> Paid ──deliver──> Delivered
//	   │               │
//	   └───cancel──────┴──cancel──> Cancelled
//
// Delivered and Cancelled are terminal. Each transition method returns the target
// status or an *errs.StatusTransitionError naming why the move is illegal.
type Status int

const (
	// Unknown is the zero value and is never a valid persisted status.
	Unknown Status = iota

	// Created is the initial status of every new order.
	Created

	// Paid indicates that a payment result has been recorded.
	Paid

	// Delivered indicates fulfillment is complete. Terminal.
	Delivered

	// Cancelled indicates the order was withdrawn before delivery. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Paid:      "Paid",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// ParseStatus converts a status name, case-insensitively, into a Status.
// It is used for filters supplied by clients.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate checks that s is one of Created, Paid, Delivered or Cancelled.
func (s Status) Validate() error {
	if s < Created || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for any invalid value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Pay transitions Created to Paid.
//
// A second confirmation for an already paid order is rejected rather than ignored,
// so duplicate payment notifications surface to the caller.
func (s Status) Pay() (Status, error) {
	switch s {
	case Created:
		return Paid, nil
	case Paid:
		return Unknown, s.transitionError("pay", "order is already paid")
	case Delivered:
		return Unknown, s.transitionError("pay", "order is already delivered")
	case Cancelled:
		return Unknown, s.transitionError("pay", "cannot pay a cancelled order")
	default:
		return Unknown, s.transitionError("pay", "order status is unknown")
	}
}

// Deliver transitions Paid to Delivered.
func (s Status) Deliver() (Status, error) {
	switch s {
	case Paid:
		return Delivered, nil
	case Created:
		return Unknown, s.transitionError("deliver", "order is not paid")
	case Delivered:
		return Unknown, s.transitionError("deliver", "order is already delivered")
	case Cancelled:
		return Unknown, s.transitionError("deliver", "cannot deliver a cancelled order")
	default:
		return Unknown, s.transitionError("deliver", "order status is unknown")
	}
}

// Cancel transitions Created or Paid to Cancelled.
//
// Cancelling a delivered order and cancelling twice fail with distinct reasons.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Created, Paid:
		return Cancelled, nil
	case Delivered:
		return Unknown, s.transitionError("cancel", "cannot cancel a delivered order")
	case Cancelled:
		return Unknown, s.transitionError("cancel", "order is already cancelled")
	default:
		return Unknown, s.transitionError("cancel", "order status is unknown")
	}
}

func (s Status) transitionError(action, reason string) error {
	return errs.NewStatusTransitionError(s.String(), action, reason)
}
