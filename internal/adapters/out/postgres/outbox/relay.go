package outbox

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultBatchSize = 100

// Relay publishes pending outbox rows in occurrence order and marks them published.
// Rows are locked with SKIP LOCKED, so several relays may run against one database
// without publishing a row twice. A failed publish leaves the batch pending.
type Relay struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	batchSize int
	logger    *slog.Logger
	now       func() time.Time
}

type RelayOption func(*Relay)

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(now func() time.Time) RelayOption {
	return func(r *Relay) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRelay(db *gorm.DB, publisher ports.EventPublisher, opts ...RelayOption) *Relay {
	r := &Relay{
		db:        db,
		publisher: publisher,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "outbox_relay")
	return r
}

// RelayPending publishes one batch and returns how many messages were sent.
func (r *Relay) RelayPending(ctx context.Context) (int, error) {
	var sent int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch []MessageDTO
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("published_at IS NULL").
			Order("occurred_at, id").
			Limit(r.batchSize).
			Find(&batch).Error; err != nil {
			return errs.NewStorageUnavailableErrorWithCause("read outbox", err)
		}

		if len(batch) == 0 {
			return nil
		}

		messages := make([]ports.OutboundMessage, 0, len(batch))
		ids := make([]uuid.UUID, 0, len(batch))
		for _, m := range batch {
			messages = append(messages, m.Outbound())
			ids = append(ids, m.ID)
		}

		if err := r.publisher.Publish(ctx, messages...); err != nil {
			return err
		}

		if err := tx.Model(&MessageDTO{}).
			Where("id IN ?", ids).
			Update("published_at", r.now().UTC()).Error; err != nil {
			return errs.NewStorageUnavailableErrorWithCause("mark outbox published", err)
		}

		sent = len(batch)
		return nil
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
		return 0, err
	}

	if sent > 0 {
		r.logger.InfoContext(ctx, "outbox messages published", "count", sent)
	}
	return sent, nil
}

// Pending counts rows not yet published.
func (r *Relay) Pending(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&MessageDTO{}).Where("published_at IS NULL").Count(&n).Error; err != nil {
		return 0, errs.NewStorageUnavailableErrorWithCause("count outbox", err)
	}
	return n, nil
}
