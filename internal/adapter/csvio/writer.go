package csvio

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerreplay/internal/domain"
)

// OutputPrecision is the number of fractional digits kept in the snapshot.
const OutputPrecision = 4

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// AccountWriter encodes account snapshots as comma separated rows.
// The header is written before the first account, so an empty snapshot
// produces no output at all.
type AccountWriter struct {
	csv           *csv.Writer
	headerWritten bool
	row           []string
}

// NewAccountWriter creates a writer over w.
func NewAccountWriter(w io.Writer) *AccountWriter {
	return &AccountWriter{
		csv: csv.NewWriter(w),
		row: make([]string, len(outputHeader)),
	}
}

// Write encodes one account.
func (w *AccountWriter) Write(ctx context.Context, account *domain.ClientAccount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !w.headerWritten {
		if err := w.csv.Write(outputHeader); err != nil {
			return err
		}
		w.headerWritten = true
	}

	w.row[0] = strconv.FormatUint(uint64(account.ID), 10)
	w.row[1] = FormatAmount(account.Available)
	w.row[2] = FormatAmount(account.Held)
	w.row[3] = FormatAmount(account.Total())
	w.row[4] = strconv.FormatBool(account.Locked)

	return w.csv.Write(w.row)
}

// Flush writes buffered rows to the underlying writer.
func (w *AccountWriter) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// FormatAmount truncates d toward zero to OutputPrecision fractional digits
// and renders it with at least one fractional digit: 1 -> "1.0", -0.12345 -> "-0.1234".
func FormatAmount(d decimal.Decimal) string {
	s := d.Truncate(OutputPrecision).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
