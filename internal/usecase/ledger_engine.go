package usecase

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerreplay/internal/domain"
	"github.com/iho/ledgerreplay/internal/infrastructure/metrics"
)

// EngineStats counts entries by outcome.
type EngineStats struct {
	Applied  int
	Ignored  int
	Rejected int
}

// LedgerEngine applies ledger entries, one at a time, to the accounts of its store.
type LedgerEngine struct {
	store   *AccountStore
	log     zerolog.Logger
	metrics *metrics.Metrics
	stats   EngineStats
}

// NewLedgerEngine creates an engine that takes exclusive ownership of store.
// metrics may be nil.
func NewLedgerEngine(store *AccountStore, log zerolog.Logger, metrics *metrics.Metrics) *LedgerEngine {
	return &LedgerEngine{
		store:   store,
		log:     log,
		metrics: metrics,
	}
}

// Store returns the engine's account store.
func (e *LedgerEngine) Store() *AccountStore {
	return e.store
}

// Stats returns the outcome counts so far.
func (e *LedgerEngine) Stats() EngineStats {
	return e.stats
}

// Apply applies entry to its client's account. Entries that do not apply
// (unknown tx, wrong dispute state, disputed withdrawal, insufficient funds)
// leave the account unchanged and return nil. The only error is
// *domain.AccountLockedError, for any entry that targets a locked account.
func (e *LedgerEngine) Apply(entry domain.Entry) error {
	acc, created := e.store.GetOrCreate(entry.Client())
	if created && e.metrics != nil {
		e.metrics.AccountsCreated.Inc()
	}

	if acc.Locked {
		e.observe(entry, metrics.OutcomeRejected, domain.Applied)
		return &domain.AccountLockedError{Client: acc.ID}
	}

	var reason domain.IgnoreReason
	switch en := entry.(type) {
	case domain.Deposit:
		reason = acc.ApplyDeposit(en)
	case domain.Withdrawal:
		reason = acc.ApplyWithdrawal(en)
	case domain.Dispute:
		reason = acc.ApplyDispute(en)
	case domain.Resolve:
		reason = acc.ApplyResolve(en)
	case domain.Chargeback:
		reason = acc.ApplyChargeback(en)
		if reason == domain.Applied && e.metrics != nil {
			e.metrics.AccountsLocked.Inc()
		}
	default:
		panic(fmt.Sprintf("usecase: unhandled ledger entry %T", entry))
	}

	if reason != domain.Applied {
		e.log.Debug().
			Str("type", string(entry.Type())).
			Uint16("client", uint16(entry.Client())).
			Uint32("tx", uint32(entry.Tx())).
			Str("reason", string(reason)).
			Msg("entry ignored")
		e.observe(entry, metrics.OutcomeIgnored, reason)
		return nil
	}

	e.observe(entry, metrics.OutcomeApplied, reason)
	return nil
}

func (e *LedgerEngine) observe(entry domain.Entry, outcome string, reason domain.IgnoreReason) {
	switch outcome {
	case metrics.OutcomeApplied:
		e.stats.Applied++
	case metrics.OutcomeIgnored:
		e.stats.Ignored++
	case metrics.OutcomeRejected:
		e.stats.Rejected++
	}

	if e.metrics == nil {
		return
	}
	e.metrics.EntriesProcessed.WithLabelValues(string(entry.Type()), outcome).Inc()
	if outcome == metrics.OutcomeIgnored {
		e.metrics.EntriesIgnored.WithLabelValues(string(reason)).Inc()
	}
}
