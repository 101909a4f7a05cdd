package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerreplay/internal/domain"
)

// Input column names.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

var ErrMissingColumn = errors.New("missing column")

// RowError locates a decode failure in the input.
type RowError struct {
	Line  int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %q: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// EntryReader decodes ledger entries from comma separated rows, one per Next call.
// The first row is a header naming the columns; fields are trimmed and rows may
// have fewer or more fields than the header.
type EntryReader struct {
	csv     *csv.Reader
	columns map[string]int
}

// NewEntryReader creates a reader over r. The header is read lazily.
func NewEntryReader(r io.Reader) *EntryReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &EntryReader{csv: cr}
}

// Next returns the next entry, or io.EOF when the input is exhausted.
func (r *EntryReader) Next(ctx context.Context) (domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	line, _ := r.csv.FieldPos(0)
	return r.decode(line, record)
}

func (r *EntryReader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ColumnType, ColumnClient, ColumnTx} {
		if _, ok := columns[required]; !ok {
			return &RowError{Line: 1, Field: required, Err: ErrMissingColumn}
		}
	}

	r.columns = columns
	return nil
}

func (r *EntryReader) field(record []string, name string) (string, bool) {
	i, ok := r.columns[name]
	if !ok || i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}

func (r *EntryReader) decode(line int, record []string) (domain.Entry, error) {
	rawType, ok := r.field(record, ColumnType)
	if !ok {
		return nil, &RowError{Line: line, Field: ColumnType, Err: ErrMissingColumn}
	}
	typ, ok := domain.ParseEntryType(rawType)
	if !ok {
		return nil, &RowError{Line: line, Field: ColumnType, Err: fmt.Errorf("%w: %q", domain.ErrUnknownEntryType, rawType)}
	}

	rawClient, ok := r.field(record, ColumnClient)
	if !ok {
		return nil, &RowError{Line: line, Field: ColumnClient, Err: ErrMissingColumn}
	}
	client, err := strconv.ParseUint(rawClient, 10, 16)
	if err != nil {
		return nil, &RowError{Line: line, Field: ColumnClient, Err: err}
	}

	rawTx, ok := r.field(record, ColumnTx)
	if !ok {
		return nil, &RowError{Line: line, Field: ColumnTx, Err: ErrMissingColumn}
	}
	tx, err := strconv.ParseUint(rawTx, 10, 32)
	if err != nil {
		return nil, &RowError{Line: line, Field: ColumnTx, Err: err}
	}

	var amount *decimal.Decimal
	if typ == domain.EntryTypeDeposit || typ == domain.EntryTypeWithdrawal {
		if raw, ok := r.field(record, ColumnAmount); ok && raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, &RowError{Line: line, Field: ColumnAmount, Err: err}
			}
			amount = &d
		}
	}

	entry, err := domain.NewEntry(typ, domain.ClientID(client), domain.TxID(tx), amount)
	if err != nil {
		return nil, &RowError{Line: line, Field: ColumnAmount, Err: err}
	}
	return entry, nil
}
