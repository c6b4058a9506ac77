package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
)

// CSVLedger stores rows as headerless date,amountA,amountB triples in a
// local file. Writes rewrite the whole file, which keeps storage order and
// positions stable; the file is one row per day, so this stays cheap.
type CSVLedger struct {
	path string
}

// NewCSVFile returns a ledger backed by the CSV file at path. A missing
// file reads as an empty ledger and is created on first write.
func NewCSVFile(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

// csvRecord is the on-disk shape of one row. Cells stay strings so rows the
// reconciler never touches survive a read-modify-write cycle verbatim.
type csvRecord struct {
	Date    string
	AmountA string
	AmountB string
}

func toCSVRecord(row Row) csvRecord {
	return csvRecord{
		Date:    row.Date,
		AmountA: strconv.FormatFloat(row.AmountA, 'f', -1, 64),
		AmountB: strconv.FormatFloat(row.AmountB, 'f', -1, 64),
	}
}

func (l *CSVLedger) read() ([]csvRecord, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}

	var records []csvRecord
	if err := gocsv.UnmarshalWithoutHeaders(f, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.path, err)
	}
	return records, nil
}

func (l *CSVLedger) write(records []csvRecord) error {
	buf := &bytes.Buffer{}
	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(buf))
	if err := gocsv.MarshalCSVWithoutHeaders(records, writer); err != nil {
		return err
	}
	return os.WriteFile(l.path, buf.Bytes(), 0o644)
}

// Rows returns every stored triple in file order.
func (l *CSVLedger) Rows(ctx context.Context) ([][]string, error) {
	records, err := l.read()
	if err != nil {
		return nil, &ReadError{Err: err}
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{rec.Date, rec.AmountA, rec.AmountB}
	}
	return rows, nil
}

// Append adds the row at the end of the file.
func (l *CSVLedger) Append(ctx context.Context, row Row) error {
	records, err := l.read()
	if err != nil {
		return &WriteError{Op: "append", Err: err}
	}

	records = append(records, toCSVRecord(row))
	if err := l.write(records); err != nil {
		return &WriteError{Op: "append", Err: err}
	}
	return nil
}

// OverwriteAt replaces the triple at the given 1-based position.
func (l *CSVLedger) OverwriteAt(ctx context.Context, position int, row Row) error {
	records, err := l.read()
	if err != nil {
		return &WriteError{Op: "overwrite", Position: position, Err: err}
	}
	if position < 1 || position > len(records) {
		return &WriteError{
			Op:       "overwrite",
			Position: position,
			Err:      fmt.Errorf("position out of range, file has %d rows", len(records)),
		}
	}

	records[position-1] = toCSVRecord(row)
	if err := l.write(records); err != nil {
		return &WriteError{Op: "overwrite", Position: position, Err: err}
	}
	return nil
}
