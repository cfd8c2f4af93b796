// Package order provides the Order aggregate root and its lifecycle.
//
// The package includes:
//   - Order: a customer purchase with immutable lines, address and totals
//   - Status: the state machine Created -> Paid -> Delivered, with cancellation from Created or Paid
//   - Item, ShippingAddress, PaymentResult, Totals: value objects validated on construction
//   - Event: facts recorded by each transition for the transactional outbox
//
// Key business rules:
//   - Orders are placed with at least one item and a total equal to items + tax + shipping
//   - A second payment confirmation is rejected, never silently accepted
//   - Only a Paid order can be delivered
//   - Delivered and Cancelled orders accept no further transitions
//
// Who may perform a transition is decided outside the aggregate, by
// services.AuthorizationGuard.
package order
