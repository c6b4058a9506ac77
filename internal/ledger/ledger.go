// Package ledger defines the tabular row store the reconciler writes to: one
// row per reconciled date, addressed only by 1-based storage position. The
// store has no primary key and no transactions; the snapshot in this package
// is the run's only view of which dates already exist.
package ledger

import (
	"context"
	"fmt"

	"github.com/dvloznov/ledger-sync/internal/config"
)

// Row is one reconciled ledger line: a calendar date and the two source
// totals for that date, stored as three positional cells.
type Row struct {
	Date    string
	AmountA float64
	AmountB float64
}

// Ledger is the row store contract.
type Ledger interface {
	// Rows returns every row currently in the store, in storage order, as
	// raw cell strings.
	Rows(ctx context.Context) ([][]string, error)
	// Append adds a row at the logical end of the store without disturbing
	// existing positions.
	Append(ctx context.Context, row Row) error
	// OverwriteAt replaces exactly the row at the given 1-based position,
	// leaving all other rows untouched.
	OverwriteAt(ctx context.Context, position int, row Row) error
}

// New connects the ledger adapter selected by cfg.Kind.
func New(ctx context.Context, cfg config.LedgerConfig) (Ledger, error) {
	switch cfg.Kind {
	case config.LedgerSheets:
		return NewSheets(ctx, cfg)
	case config.LedgerCSV:
		return NewCSVFile(cfg.File), nil
	case config.LedgerXLSX:
		return NewXLSX(cfg.File), nil
	default:
		return nil, fmt.Errorf("New: unsupported ledger kind %q", cfg.Kind)
	}
}
