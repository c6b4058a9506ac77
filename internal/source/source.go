// Package source provides the per-date aggregate lookups the reconciler
// consumes. A source answers one question: what is the total for this
// calendar day.
package source

import (
	"context"
	"fmt"

	"github.com/dvloznov/ledger-sync/internal/config"
)

// Source yields one aggregate amount per calendar date.
//
// A date with no matching records yields exactly 0.0; absence of data is a
// defined business outcome, never an error and never a missing value. Any
// transport or query failure is fatal to the run, because a failed lookup
// must not be mistaken for a zero total.
type Source interface {
	// Name identifies the source in logs and error messages.
	Name() string
	// Total returns the aggregate amount for one YYYY-MM-DD date.
	Total(ctx context.Context, date string) (float64, error)
	// Close releases the underlying connection.
	Close() error
}

// New connects the source adapter selected by cfg.Kind.
func New(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case config.SourcePostgres:
		return NewPostgres(ctx, cfg)
	case config.SourceBigQuery:
		return NewBigQuery(ctx, cfg)
	default:
		return nil, fmt.Errorf("New: unsupported source kind %q for %s", cfg.Kind, cfg.Name)
	}
}
