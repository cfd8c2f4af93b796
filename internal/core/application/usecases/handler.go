// Package usecases holds the application layer of the order service: command handlers
// that drive the order lifecycle and query handlers that read it.
package usecases

import "context"

// Handler is the shape shared by every command and query handler. It lets transport
// adapters and decorators treat handlers uniformly.
type Handler[C any, R any] interface {
	Handle(ctx context.Context, in C) (R, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[C any, R any] func(ctx context.Context, in C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, in C) (R, error) {
	return f(ctx, in)
}
