package usecase

import (
	"context"

	"github.com/iho/ledgerreplay/internal/domain"
)

// EntrySource yields ledger entries in stream order.
// Next returns io.EOF once the stream is exhausted.
type EntrySource interface {
	Next(ctx context.Context) (domain.Entry, error)
}

// SnapshotSink receives the final account states.
type SnapshotSink interface {
	Write(ctx context.Context, account *domain.ClientAccount) error
	Flush() error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
