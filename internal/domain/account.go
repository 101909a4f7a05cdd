package domain

import (
	"github.com/shopspring/decimal"
)

// IgnoreReason explains why an entry had no effect. The empty reason means the entry applied.
type IgnoreReason string

const (
	Applied                 IgnoreReason = ""
	IgnoreInsufficientFunds IgnoreReason = "insufficient_funds"
	IgnoreUnknownTx         IgnoreReason = "unknown_tx"
	IgnoreNotDeposit        IgnoreReason = "not_deposit"
	IgnoreInvalidState      IgnoreReason = "invalid_state"
)

// ClientAccount holds a client's balances and the deposits and withdrawals
// recorded against it.
type ClientAccount struct {
	ID        ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool

	records map[TxID]*Record
}

// NewClientAccount creates an unlocked account with zero balances.
func NewClientAccount(id ClientID) *ClientAccount {
	return &ClientAccount{
		ID:        id,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		records:   make(map[TxID]*Record),
	}
}

// Total is available plus held funds.
func (a *ClientAccount) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Record returns the record stored under tx.
func (a *ClientAccount) Record(tx TxID) (*Record, bool) {
	r, ok := a.records[tx]
	return r, ok
}

// RecordCount returns the number of stored deposits and withdrawals.
func (a *ClientAccount) RecordCount() int {
	return len(a.records)
}

// ApplyDeposit credits available funds and records the deposit.
// A repeated tx id replaces the earlier record.
func (a *ClientAccount) ApplyDeposit(d Deposit) IgnoreReason {
	a.Available = a.Available.Add(d.Amount)
	a.records[d.TxID] = &Record{Entry: d, State: StateExecuted}
	return Applied
}

// ApplyWithdrawal debits available funds and records the withdrawal when funds suffice.
func (a *ClientAccount) ApplyWithdrawal(w Withdrawal) IgnoreReason {
	if a.Available.LessThan(w.Amount) {
		return IgnoreInsufficientFunds
	}
	a.Available = a.Available.Sub(w.Amount)
	a.records[w.TxID] = &Record{Entry: w, State: StateExecuted}
	return Applied
}

// ApplyDispute moves an executed deposit's amount from available to held.
func (a *ClientAccount) ApplyDispute(d Dispute) IgnoreReason {
	rec, dep, reason := a.disputable(d.TxID, StateExecuted)
	if reason != Applied {
		return reason
	}
	a.Held = a.Held.Add(dep.Amount)
	a.Available = a.Available.Sub(dep.Amount)
	rec.State = StateDisputed
	return Applied
}

// ApplyResolve releases a disputed deposit's amount back to available.
func (a *ClientAccount) ApplyResolve(r Resolve) IgnoreReason {
	rec, dep, reason := a.disputable(r.TxID, StateDisputed)
	if reason != Applied {
		return reason
	}
	a.Held = a.Held.Sub(dep.Amount)
	a.Available = a.Available.Add(dep.Amount)
	rec.State = StateResolved
	return Applied
}

// ApplyChargeback removes a disputed deposit's held amount and locks the account.
func (a *ClientAccount) ApplyChargeback(c Chargeback) IgnoreReason {
	rec, dep, reason := a.disputable(c.TxID, StateDisputed)
	if reason != Applied {
		return reason
	}
	a.Held = a.Held.Sub(dep.Amount)
	rec.State = StateChargedBack
	a.Locked = true
	return Applied
}

// disputable looks up a deposit record in the expected dispute state.
func (a *ClientAccount) disputable(tx TxID, want DisputeState) (*Record, Deposit, IgnoreReason) {
	rec, ok := a.records[tx]
	if !ok {
		return nil, Deposit{}, IgnoreUnknownTx
	}
	dep, ok := rec.Deposit()
	if !ok {
		return nil, Deposit{}, IgnoreNotDeposit
	}
	if rec.State != want {
		return nil, Deposit{}, IgnoreInvalidState
	}
	return rec, dep, Applied
}
