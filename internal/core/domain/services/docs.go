// Package services provides domain services that decide across the order aggregate
// and the acting principal.
//
// The package includes:
//   - AuthorizationGuard: pure predicates deciding whether an actor may perform
//     a lifecycle operation or read
//
// The guard never touches storage and never mutates its arguments. It is consulted
// by the command and query handlers and by the HTTP boundary.
package services
