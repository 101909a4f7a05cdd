package testutil

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerreplay/internal/domain"
)

// CSVHeader is the input header used by the fixtures.
const CSVHeader = "type,client,tx,amount"

// Amount parses s or fails the test.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", s, err)
	}
	return d
}

// Deposit builds a deposit entry.
func Deposit(t *testing.T, client domain.ClientID, tx domain.TxID, amount string) domain.Deposit {
	t.Helper()
	return domain.Deposit{ClientID: client, TxID: tx, Amount: Amount(t, amount)}
}

// Withdrawal builds a withdrawal entry.
func Withdrawal(t *testing.T, client domain.ClientID, tx domain.TxID, amount string) domain.Withdrawal {
	t.Helper()
	return domain.Withdrawal{ClientID: client, TxID: tx, Amount: Amount(t, amount)}
}

// CSV joins a header and rows into an input document.
func CSV(rows ...string) *strings.Reader {
	return strings.NewReader(CSVHeader + "\n" + strings.Join(rows, "\n") + "\n")
}

// DisputeCycleEntries is the deposit, withdrawal, dispute, resolve, chargeback
// scenario that leaves client 1 at available=-1, held=0, locked.
func DisputeCycleEntries(t *testing.T) []domain.Entry {
	t.Helper()

	return []domain.Entry{
		Deposit(t, 1, 1, "1.0"),
		Withdrawal(t, 1, 2, "1.0"),
		domain.Dispute{ClientID: 1, TxID: 1},
		domain.Resolve{ClientID: 1, TxID: 1},
		Deposit(t, 1, 3, "1.0"),
		Withdrawal(t, 1, 4, "1.0"),
		domain.Dispute{ClientID: 1, TxID: 3},
		domain.Chargeback{ClientID: 1, TxID: 3},
	}
}

// DisputeCycleCSV is DisputeCycleEntries as input rows.
var DisputeCycleCSV = []string{
	"deposit,1,1,1.0",
	"withdrawal,1,2,1.0",
	"dispute,1,1,",
	"resolve,1,1,",
	"deposit,1,3,1.0",
	"withdrawal,1,4,1.0",
	"dispute,1,3,",
	"chargeback,1,3,",
}
