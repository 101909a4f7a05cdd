package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerreplay/internal/domain"
	"github.com/iho/ledgerreplay/internal/infrastructure/metrics"
)

// LockedPolicy decides what happens to entries that target a locked account.
type LockedPolicy string

const (
	// LockedPolicyAbort stops the run at the first rejected entry.
	LockedPolicyAbort LockedPolicy = "abort"
	// LockedPolicySkip logs the rejected entry and keeps going.
	LockedPolicySkip LockedPolicy = "skip"
)

// ReplaySummary describes a completed run.
type ReplaySummary struct {
	RunID    string
	Entries  int
	Applied  int
	Ignored  int
	Rejected int
	Accounts int
	Duration time.Duration
}

// ReplayUseCase replays an entry stream into a fresh account store and emits
// the resulting snapshot.
type ReplayUseCase struct {
	idGen        IDGenerator
	log          zerolog.Logger
	metrics      *metrics.Metrics
	lockedPolicy LockedPolicy
}

// NewReplayUseCase creates a new ReplayUseCase. metrics may be nil.
func NewReplayUseCase(
	idGen IDGenerator,
	log zerolog.Logger,
	metrics *metrics.Metrics,
	lockedPolicy LockedPolicy,
) *ReplayUseCase {
	if lockedPolicy == "" {
		lockedPolicy = LockedPolicyAbort
	}
	return &ReplayUseCase{
		idGen:        idGen,
		log:          log,
		metrics:      metrics,
		lockedPolicy: lockedPolicy,
	}
}

// Run applies every entry from source in order and, once source is exhausted,
// writes every account to sink. A decode error, a cancelled context or (under
// LockedPolicyAbort) an entry for a locked account ends the run without
// writing anything to sink.
func (uc *ReplayUseCase) Run(ctx context.Context, source EntrySource, sink SnapshotSink) (*ReplaySummary, error) {
	start := time.Now()
	runID := uc.idGen.Generate()
	log := uc.log.With().Str("run_id", runID).Logger()

	engine := NewLedgerEngine(NewAccountStore(), log, uc.metrics)
	log.Info().Str("locked_policy", string(uc.lockedPolicy)).Msg("replay started")

	entries := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("replay interrupted after %d entries: %w", entries, err)
		}

		entry, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if uc.metrics != nil {
				uc.metrics.DecodeErrors.Inc()
			}
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries++

		if err := engine.Apply(entry); err != nil {
			if uc.lockedPolicy == LockedPolicySkip && domain.IsAccountLocked(err) {
				log.Warn().
					Err(err).
					Str("type", string(entry.Type())).
					Uint32("tx", uint32(entry.Tx())).
					Msg("entry rejected")
				continue
			}
			return nil, fmt.Errorf("apply entry %d: %w", entries, err)
		}
	}

	accounts := 0
	for acc := range engine.Store().Snapshot() {
		if err := sink.Write(ctx, acc); err != nil {
			return nil, fmt.Errorf("write account %d: %w", acc.ID, err)
		}
		accounts++
	}
	if err := sink.Flush(); err != nil {
		return nil, fmt.Errorf("flush snapshot: %w", err)
	}

	stats := engine.Stats()
	summary := &ReplaySummary{
		RunID:    runID,
		Entries:  entries,
		Applied:  stats.Applied,
		Ignored:  stats.Ignored,
		Rejected: stats.Rejected,
		Accounts: accounts,
		Duration: time.Since(start),
	}

	if uc.metrics != nil {
		uc.metrics.ReplayDuration.Observe(summary.Duration.Seconds())
		uc.metrics.SnapshotAccounts.Set(float64(accounts))
		uc.metrics.LastSuccessfulRun.SetToCurrentTime()
	}

	log.Info().
		Int("entries", summary.Entries).
		Int("applied", summary.Applied).
		Int("ignored", summary.Ignored).
		Int("rejected", summary.Rejected).
		Int("accounts", summary.Accounts).
		Dur("duration", summary.Duration).
		Msg("replay finished")

	return summary, nil
}
