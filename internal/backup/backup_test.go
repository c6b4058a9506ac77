package backup

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dvloznov/ledger-sync/internal/ledger"
)

type stubLedger struct {
	rows [][]string
	err  error
}

func (s *stubLedger) Rows(ctx context.Context) ([][]string, error) { return s.rows, s.err }

func (s *stubLedger) Append(ctx context.Context, row ledger.Row) error { return nil }

func (s *stubLedger) OverwriteAt(ctx context.Context, position int, row ledger.Row) error {
	return nil
}

func TestExport(t *testing.T) {
	led := &stubLedger{rows: [][]string{
		{"2024-01-01", "100", "50"},
		{"2024-01-02", "30.5", "70"},
	}}
	dir := t.TempDir()

	path, err := Export(context.Background(), led, dir)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "ledger-backup-") || !strings.HasSuffix(base, ".csv") {
		t.Errorf("Export() file name = %q, want ledger-backup-*.csv", base)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening backup: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}

	if len(got) != len(led.rows) {
		t.Fatalf("backup has %d rows, want %d", len(got), len(led.rows))
	}
	for i := range led.rows {
		for j := range led.rows[i] {
			if got[i][j] != led.rows[i][j] {
				t.Errorf("row %d cell %d = %q, want %q", i+1, j+1, got[i][j], led.rows[i][j])
			}
		}
	}
}

func TestExport_KeepsMalformedRows(t *testing.T) {
	led := &stubLedger{rows: [][]string{
		{"2024-01-01", "100", "50"},
		{"stray note"},
		{"2024-01-03", "not-a-number", "70", "extra"},
	}}

	path, err := Export(context.Background(), led, t.TempDir())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening backup: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("backup has %d rows, want 3", len(got))
	}
	if len(got[1]) != 1 || got[1][0] != "stray note" {
		t.Errorf("short row not preserved: %v", got[1])
	}
	if len(got[2]) != 4 {
		t.Errorf("long row not preserved: %v", got[2])
	}
}

func TestExport_EmptyLedger(t *testing.T) {
	path, err := Export(context.Background(), &stubLedger{}, t.TempDir())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat backup: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("empty ledger backup has %d bytes, want 0", info.Size())
	}
}

func TestExport_ReadFailure(t *testing.T) {
	readErr := &ledger.ReadError{Err: errors.New("offline")}

	_, err := Export(context.Background(), &stubLedger{err: readErr}, t.TempDir())
	if !errors.Is(err, readErr) {
		t.Fatalf("Export() error = %v, want wrapped read error", err)
	}
}
