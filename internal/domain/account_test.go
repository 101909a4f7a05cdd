package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClientAccount_New(t *testing.T) {
	acc := NewClientAccount(7)

	if acc.ID != 7 {
		t.Errorf("expected id 7, got %d", acc.ID)
	}
	if !acc.Available.IsZero() || !acc.Held.IsZero() || !acc.Total().IsZero() {
		t.Errorf("expected zero balances, got available=%s held=%s", acc.Available, acc.Held)
	}
	if acc.Locked {
		t.Error("expected new account to be unlocked")
	}
	if acc.RecordCount() != 0 {
		t.Errorf("expected empty record index, got %d", acc.RecordCount())
	}
}

func TestClientAccount_ApplyWithdrawal(t *testing.T) {
	tests := []struct {
		name          string
		available     decimal.Decimal
		amount        decimal.Decimal
		wantReason    IgnoreReason
		wantAvailable decimal.Decimal
		wantRecords   int
	}{
		{
			name:          "withdraw less than available",
			available:     dec("10"),
			amount:        dec("2.5"),
			wantReason:    Applied,
			wantAvailable: dec("7.5"),
			wantRecords:   1,
		},
		{
			name:          "withdraw exact available",
			available:     dec("10"),
			amount:        dec("10"),
			wantReason:    Applied,
			wantAvailable: dec("0"),
			wantRecords:   1,
		},
		{
			name:          "withdraw more than available",
			available:     dec("10"),
			amount:        dec("10.0001"),
			wantReason:    IgnoreInsufficientFunds,
			wantAvailable: dec("10"),
			wantRecords:   0,
		},
		{
			name:          "withdraw from negative balance",
			available:     dec("-1"),
			amount:        dec("0"),
			wantReason:    IgnoreInsufficientFunds,
			wantAvailable: dec("-1"),
			wantRecords:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewClientAccount(1)
			acc.Available = tt.available

			reason := acc.ApplyWithdrawal(Withdrawal{ClientID: 1, TxID: 9, Amount: tt.amount})

			if reason != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, reason)
			}
			if !acc.Available.Equal(tt.wantAvailable) {
				t.Errorf("expected available %s, got %s", tt.wantAvailable, acc.Available)
			}
			if acc.RecordCount() != tt.wantRecords {
				t.Errorf("expected %d records, got %d", tt.wantRecords, acc.RecordCount())
			}
		})
	}
}

func TestClientAccount_DisputeCycle(t *testing.T) {
	tests := []struct {
		name          string
		steps         []func(a *ClientAccount) IgnoreReason
		wantReasons   []IgnoreReason
		wantAvailable decimal.Decimal
		wantHeld      decimal.Decimal
		wantLocked    bool
		wantState     DisputeState
	}{
		{
			name: "dispute executed deposit",
			steps: []func(a *ClientAccount) IgnoreReason{
				func(a *ClientAccount) IgnoreReason { return a.ApplyDispute(Dispute{ClientID: 1, TxID: 1}) },
			},
			wantReasons:   []IgnoreReason{Applied},
			wantAvailable: dec("0"),
			wantHeld:      dec("5"),
			wantState:     StateDisputed,
		},
		{
			name: "dispute twice is idempotent",
			steps: []func(a *ClientAccount) IgnoreReason{
				func(a *ClientAccount) IgnoreReason { return a.ApplyDispute(Dispute{ClientID: 1, TxID: 1}) },
				func(a *ClientAccount) IgnoreReason { return a.ApplyDispute(Dispute{ClientID: 1, TxID: 1}) },
			},
			wantReasons:   []IgnoreReason{Applied, IgnoreInvalidState},
			wantAvailable: dec("0"),
			wantHeld:      dec("5"),
			wantState:     StateDisputed,
		},
		{
			name: "resolve without dispute",
			steps: []func(a *ClientAccount) IgnoreReason{
				func(a *ClientAccount) IgnoreReason { return a.ApplyResolve(Resolve{ClientID: 1, TxID: 1}) },
			},
			wantReasons:   []IgnoreReason{IgnoreInvalidState},
			wantAvailable: dec("5"),
			wantHeld:      dec("0"),
			wantState:     StateExecuted,
		},
		{
			name: "chargeback without dispute",
			steps: []func(a *ClientAccount) IgnoreReason{
				func(a *ClientAccount) IgnoreReason { return a.ApplyChargeback(Chargeback{ClientID: 1, TxID: 1}) },
			},
			wantReasons:   []IgnoreReason{IgnoreInvalidState},
			wantAvailable: dec("5"),
			wantHeld:      dec("0"),
			wantState:     StateExecuted,
		},
		{
			name: "dispute then resolve",
			steps: []func(a *ClientAccount) IgnoreReason{
				func(a *ClientAccount) IgnoreReason { return a.ApplyDispute(Dispute{ClientID: 1, TxID: 1}) },
				func(a *ClientAccount) IgnoreReason { return a.ApplyResolve(Resolve{ClientID: 1, TxID: 1}) },
			},
			wantReasons:   []IgnoreReason{Applied, Applied},
			wantAvailable: dec("5"),
			wantHeld:      dec("0"),
			wantState:     StateResolved,
		},
		{
			name: "resolved is terminal",
			steps: []func(a *ClientAccount) IgnoreReason{
				func(a *ClientAccount) IgnoreReason { return a.ApplyDispute(Dispute{ClientID: 1, TxID: 1}) },
				func(a *ClientAccount) IgnoreReason { return a.ApplyResolve(Resolve{ClientID: 1, TxID: 1}) },
				func(a *ClientAccount) IgnoreReason { return a.ApplyDispute(Dispute{ClientID: 1, TxID: 1}) },
				func(a *ClientAccount) IgnoreReason { return a.ApplyChargeback(Chargeback{ClientID: 1, TxID: 1}) },
			},
			wantReasons:   []IgnoreReason{Applied, Applied, IgnoreInvalidState, IgnoreInvalidState},
			wantAvailable: dec("5"),
			wantHeld:      dec("0"),
			wantState:     StateResolved,
		},
		{
			name: "dispute then chargeback locks",
			steps: []func(a *ClientAccount) IgnoreReason{
				func(a *ClientAccount) IgnoreReason { return a.ApplyDispute(Dispute{ClientID: 1, TxID: 1}) },
				func(a *ClientAccount) IgnoreReason { return a.ApplyChargeback(Chargeback{ClientID: 1, TxID: 1}) },
			},
			wantReasons:   []IgnoreReason{Applied, Applied},
			wantAvailable: dec("0"),
			wantHeld:      dec("0"),
			wantLocked:    true,
			wantState:     StateChargedBack,
		},
		{
			name: "unknown tx",
			steps: []func(a *ClientAccount) IgnoreReason{
				func(a *ClientAccount) IgnoreReason { return a.ApplyDispute(Dispute{ClientID: 1, TxID: 42}) },
				func(a *ClientAccount) IgnoreReason { return a.ApplyResolve(Resolve{ClientID: 1, TxID: 42}) },
				func(a *ClientAccount) IgnoreReason { return a.ApplyChargeback(Chargeback{ClientID: 1, TxID: 42}) },
			},
			wantReasons:   []IgnoreReason{IgnoreUnknownTx, IgnoreUnknownTx, IgnoreUnknownTx},
			wantAvailable: dec("5"),
			wantHeld:      dec("0"),
			wantState:     StateExecuted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewClientAccount(1)
			acc.ApplyDeposit(Deposit{ClientID: 1, TxID: 1, Amount: dec("5")})

			for i, step := range tt.steps {
				if got := step(acc); got != tt.wantReasons[i] {
					t.Errorf("step %d: expected reason %q, got %q", i, tt.wantReasons[i], got)
				}
			}

			if !acc.Available.Equal(tt.wantAvailable) {
				t.Errorf("expected available %s, got %s", tt.wantAvailable, acc.Available)
			}
			if !acc.Held.Equal(tt.wantHeld) {
				t.Errorf("expected held %s, got %s", tt.wantHeld, acc.Held)
			}
			if acc.Locked != tt.wantLocked {
				t.Errorf("expected locked=%v, got %v", tt.wantLocked, acc.Locked)
			}
			rec, ok := acc.Record(1)
			if !ok {
				t.Fatal("expected record for tx 1")
			}
			if rec.State != tt.wantState {
				t.Errorf("expected state %s, got %s", tt.wantState, rec.State)
			}
			if !acc.Total().Equal(acc.Available.Add(acc.Held)) {
				t.Errorf("total %s does not equal available+held", acc.Total())
			}
		})
	}
}

func TestClientAccount_DisputeWithdrawalIgnored(t *testing.T) {
	acc := NewClientAccount(1)
	acc.ApplyDeposit(Deposit{ClientID: 1, TxID: 1, Amount: dec("5")})
	acc.ApplyWithdrawal(Withdrawal{ClientID: 1, TxID: 2, Amount: dec("3")})

	if reason := acc.ApplyDispute(Dispute{ClientID: 1, TxID: 2}); reason != IgnoreNotDeposit {
		t.Errorf("expected %q, got %q", IgnoreNotDeposit, reason)
	}
	if !acc.Available.Equal(dec("2")) || !acc.Held.IsZero() {
		t.Errorf("expected balances unchanged, got available=%s held=%s", acc.Available, acc.Held)
	}
}

func TestClientAccount_DuplicateDepositOverwrites(t *testing.T) {
	acc := NewClientAccount(1)
	acc.ApplyDeposit(Deposit{ClientID: 1, TxID: 1, Amount: dec("5")})
	acc.ApplyDispute(Dispute{ClientID: 1, TxID: 1})
	acc.ApplyDeposit(Deposit{ClientID: 1, TxID: 1, Amount: dec("2")})

	rec, _ := acc.Record(1)
	if rec.State != StateExecuted {
		t.Errorf("expected replaced record to be executed, got %s", rec.State)
	}
	dep, _ := rec.Deposit()
	if !dep.Amount.Equal(dec("2")) {
		t.Errorf("expected replaced amount 2, got %s", dep.Amount)
	}
	if acc.RecordCount() != 1 {
		t.Errorf("expected one record, got %d", acc.RecordCount())
	}
}

func TestClientAccount_ChargebackAfterWithdrawalGoesNegative(t *testing.T) {
	acc := NewClientAccount(1)
	acc.ApplyDeposit(Deposit{ClientID: 1, TxID: 1, Amount: dec("1.0")})
	acc.ApplyWithdrawal(Withdrawal{ClientID: 1, TxID: 2, Amount: dec("1.0")})
	acc.ApplyDispute(Dispute{ClientID: 1, TxID: 1})
	acc.ApplyChargeback(Chargeback{ClientID: 1, TxID: 1})

	if !acc.Available.Equal(dec("-1")) {
		t.Errorf("expected available -1, got %s", acc.Available)
	}
	if !acc.Held.IsZero() {
		t.Errorf("expected held 0, got %s", acc.Held)
	}
	if !acc.Locked {
		t.Error("expected account to be locked")
	}
}
