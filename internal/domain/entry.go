package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal within a client's record index.
type TxID uint32

// EntryType is the wire name of a ledger entry variant.
type EntryType string

const (
	EntryTypeDeposit    EntryType = "deposit"
	EntryTypeWithdrawal EntryType = "withdrawal"
	EntryTypeDispute    EntryType = "dispute"
	EntryTypeResolve    EntryType = "resolve"
	EntryTypeChargeback EntryType = "chargeback"
)

// ParseEntryType maps a wire name to its EntryType.
func ParseEntryType(s string) (EntryType, bool) {
	switch t := EntryType(s); t {
	case EntryTypeDeposit, EntryTypeWithdrawal, EntryTypeDispute, EntryTypeResolve, EntryTypeChargeback:
		return t, true
	default:
		return "", false
	}
}

// Entry is one unit of the ledger stream. The set of implementations is closed:
// Deposit, Withdrawal, Dispute, Resolve and Chargeback.
type Entry interface {
	Client() ClientID
	Tx() TxID
	Type() EntryType
	isEntry()
}

// Deposit credits Amount to the client's available funds.
type Deposit struct {
	ClientID ClientID
	TxID     TxID
	Amount   decimal.Decimal
}

// Withdrawal debits Amount from the client's available funds when they suffice.
type Withdrawal struct {
	ClientID ClientID
	TxID     TxID
	Amount   decimal.Decimal
}

// Dispute holds the funds of a previously executed deposit.
type Dispute struct {
	ClientID ClientID
	TxID     TxID
}

// Resolve releases the funds held by a dispute.
type Resolve struct {
	ClientID ClientID
	TxID     TxID
}

// Chargeback removes disputed funds and locks the account.
type Chargeback struct {
	ClientID ClientID
	TxID     TxID
}

func (e Deposit) Client() ClientID    { return e.ClientID }
func (e Withdrawal) Client() ClientID { return e.ClientID }
func (e Dispute) Client() ClientID    { return e.ClientID }
func (e Resolve) Client() ClientID    { return e.ClientID }
func (e Chargeback) Client() ClientID { return e.ClientID }

func (e Deposit) Tx() TxID    { return e.TxID }
func (e Withdrawal) Tx() TxID { return e.TxID }
func (e Dispute) Tx() TxID    { return e.TxID }
func (e Resolve) Tx() TxID    { return e.TxID }
func (e Chargeback) Tx() TxID { return e.TxID }

func (Deposit) Type() EntryType    { return EntryTypeDeposit }
func (Withdrawal) Type() EntryType { return EntryTypeWithdrawal }
func (Dispute) Type() EntryType    { return EntryTypeDispute }
func (Resolve) Type() EntryType    { return EntryTypeResolve }
func (Chargeback) Type() EntryType { return EntryTypeChargeback }

func (Deposit) isEntry()    {}
func (Withdrawal) isEntry() {}
func (Dispute) isEntry()    {}
func (Resolve) isEntry()    {}
func (Chargeback) isEntry() {}

// NewEntry builds the variant named by typ. Amount is required for deposits and
// withdrawals and discarded for the dispute cycle variants.
func NewEntry(typ EntryType, client ClientID, tx TxID, amount *decimal.Decimal) (Entry, error) {
	switch typ {
	case EntryTypeDeposit, EntryTypeWithdrawal:
		if amount == nil {
			return nil, fmt.Errorf("%w for %s", ErrMissingAmount, typ)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
		}
		if typ == EntryTypeDeposit {
			return Deposit{ClientID: client, TxID: tx, Amount: *amount}, nil
		}
		return Withdrawal{ClientID: client, TxID: tx, Amount: *amount}, nil
	case EntryTypeDispute:
		return Dispute{ClientID: client, TxID: tx}, nil
	case EntryTypeResolve:
		return Resolve{ClientID: client, TxID: tx}, nil
	case EntryTypeChargeback:
		return Chargeback{ClientID: client, TxID: tx}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, typ)
	}
}
