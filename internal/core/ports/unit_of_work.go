package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary.
// Client code calls Begin, works through OrderRepository, then Commit; Rollback is
// deferred, and its error after a successful Commit is ignored.
//
// Domain events recorded by aggregates touched through the repository are written
// to the outbox as part of Commit, where the adapter supports it.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the transaction started by Begin.
	OrderRepository() OrderRepository
}
