// Package memory provides in-process implementations of the order ports. The service
// runs on them when no database is configured, and tests use them as a real store.
package memory

import (
	"sync"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// OrderStore keeps order snapshots in insertion order. Aggregates are never shared:
// every read rebuilds a fresh *order.Order from its snapshot.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]order.Snapshot
	seq    []kernel.UUID
	events []order.Event
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[kernel.UUID]order.Snapshot)}
}

// Events returns the domain events of every committed unit of work, oldest first.
func (s *OrderStore) Events() []order.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]order.Event, len(s.events))
	copy(events, s.events)
	return events
}

func (s *OrderStore) get(id kernel.UUID) (order.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.orders[id]
	return snapshot, ok
}

func (s *OrderStore) snapshots() []order.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]order.Snapshot, 0, len(s.seq))
	for _, id := range s.seq {
		all = append(all, s.orders[id])
	}
	return all
}

// write is one staged change. expected is nil for inserts.
type write struct {
	aggregate *order.Order
	expected  *order.Status
}

// apply checks every precondition and then applies all writes, or none.
func (s *OrderStore) apply(writes []write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		if err := s.check(w); err != nil {
			return err
		}
	}

	for _, w := range writes {
		id := w.aggregate.ID()
		if w.expected == nil {
			s.seq = append(s.seq, id)
		}
		s.orders[id] = w.aggregate.Snapshot()
		s.events = append(s.events, w.aggregate.DomainEvents()...)
		w.aggregate.ClearDomainEvents()
	}
	return nil
}

// check must be called with s.mu held.
func (s *OrderStore) check(w write) error {
	id := w.aggregate.ID()
	current, exists := s.orders[id]

	if w.expected == nil {
		if exists {
			return errs.NewConcurrencyConflictError("order", id.String())
		}
		return nil
	}

	if !exists || current.Status != *w.expected {
		return errs.NewConcurrencyConflictError("order", id.String())
	}
	return nil
}
