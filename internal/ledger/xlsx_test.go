package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dvloznov/ledger-sync/internal/config"
)

func tempXLSXLedger(t *testing.T) *XLSXLedger {
	t.Helper()
	return NewXLSX(filepath.Join(t.TempDir(), "ledger.xlsx"))
}

func TestXLSXLedger_MissingFileReadsEmpty(t *testing.T) {
	led := tempXLSXLedger(t)

	rows, err := led.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Rows() = %v, want empty", rows)
	}
}

func TestXLSXLedger_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	led := tempXLSXLedger(t)

	if err := led.Append(ctx, Row{Date: "2024-01-01", AmountA: 100, AmountB: 50}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := led.Append(ctx, Row{Date: "2024-01-02", AmountA: 30.5, AmountB: 70}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	rows, err := led.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}

	want := [][]string{
		{"2024-01-01", "100", "50"},
		{"2024-01-02", "30.5", "70"},
	}
	assertRowsEqual(t, rows, want)
}

func TestXLSXLedger_OverwriteAtReplacesOneRow(t *testing.T) {
	ctx := context.Background()
	led := tempXLSXLedger(t)

	if err := led.Append(ctx, Row{Date: "2024-01-01", AmountA: 100, AmountB: 50}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := led.Append(ctx, Row{Date: "2024-01-02", AmountA: 30, AmountB: 70}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := led.OverwriteAt(ctx, 1, Row{Date: "2024-01-01", AmountA: 120, AmountB: 55}); err != nil {
		t.Fatalf("OverwriteAt() error = %v", err)
	}

	rows, err := led.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}

	want := [][]string{
		{"2024-01-01", "120", "55"},
		{"2024-01-02", "30", "70"},
	}
	assertRowsEqual(t, rows, want)
}

func TestXLSXLedger_OverwriteAtOutOfRange(t *testing.T) {
	ctx := context.Background()
	led := tempXLSXLedger(t)

	if err := led.Append(ctx, Row{Date: "2024-01-01", AmountA: 1, AmountB: 1}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	err := led.OverwriteAt(ctx, 5, Row{Date: "2024-01-05", AmountA: 9, AmountB: 9})
	if err == nil {
		t.Fatal("OverwriteAt() error = nil, want out of range error")
	}
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Errorf("OverwriteAt() error = %v, want *WriteError", err)
	}
}

func TestNew_UnsupportedLedgerKind(t *testing.T) {
	_, err := New(context.Background(), config.LedgerConfig{Kind: "parchment"})
	if err == nil {
		t.Error("New() error = nil, want unsupported kind error")
	}
}
