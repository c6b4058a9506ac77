// Package reconcile implements the reconciliation run: one ledger snapshot
// up front, then one insert/overwrite/skip decision per date, applied in
// date order.
package reconcile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dvloznov/ledger-sync/internal/ledger"
	"github.com/dvloznov/ledger-sync/internal/logger"
	"github.com/dvloznov/ledger-sync/internal/source"
)

// Action is the write decision taken for one date.
type Action string

const (
	ActionInsert    Action = "insert"
	ActionOverwrite Action = "overwrite"
	ActionSkip      Action = "skip"
)

// Decision records what the run did for one date. Position is the ledger
// row written or left alone; for inserts it is the snapshot's provisional
// position, not a store-confirmed one.
type Decision struct {
	Date     string
	Action   Action
	AmountA  float64
	AmountB  float64
	Position int
}

// Report is the executed plan of one run.
type Report struct {
	RunID       string
	From        string
	To          string
	Decisions   []Decision
	Inserted    int
	Overwritten int
	Skipped     int
}

// Reconciler drives one run against a ledger using two total sources. The
// snapshot it plans against lives only inside Run; nothing else mutates it.
type Reconciler struct {
	sourceA   source.Source
	sourceB   source.Source
	ledger    ledger.Ledger
	overwrite bool
}

// New returns a Reconciler writing rows of (date, sourceA total, sourceB
// total). With overwrite set, dates already in the ledger are rewritten in
// place; otherwise they are skipped.
func New(sourceA, sourceB source.Source, led ledger.Ledger, overwrite bool) *Reconciler {
	return &Reconciler{
		sourceA:   sourceA,
		sourceB:   sourceB,
		ledger:    led,
		overwrite: overwrite,
	}
}

// Run reconciles every date in order. The ledger is read once to build the
// snapshot; writes made during the run update only the in-memory snapshot,
// so later dates see earlier inserts. Both totals for a date are fetched
// before any write for it. The first failed fetch or write aborts the whole
// run; writes already issued stay committed.
func (r *Reconciler) Run(ctx context.Context, dates []string) (*Report, error) {
	log := logger.FromContext(ctx)

	report := &Report{RunID: uuid.NewString()}
	if len(dates) > 0 {
		report.From = dates[0]
		report.To = dates[len(dates)-1]
	}

	log.Info().
		Str("run_id", report.RunID).
		Str("from", report.From).
		Str("to", report.To).
		Int("dates", len(dates)).
		Bool("overwrite", r.overwrite).
		Msg("Starting reconciliation run")

	raw, err := r.ledger.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("Run: reading ledger: %w", err)
	}
	snapshot := ledger.BuildSnapshot(raw)

	log.Info().
		Int("rows", len(raw)).
		Int("dates_present", snapshot.Size()).
		Msg("Built ledger snapshot")

	for _, date := range dates {
		totalA, err := r.sourceA.Total(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		totalB, err := r.sourceB.Total(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}

		row := ledger.Row{Date: date, AmountA: totalA, AmountB: totalB}

		position, exists := snapshot.Position(date)
		switch {
		case !exists:
			if err := r.ledger.Append(ctx, row); err != nil {
				return nil, fmt.Errorf("Run: date %s: %w", date, err)
			}
			position = snapshot.Insert(date)
			report.Inserted++
			report.Decisions = append(report.Decisions, Decision{
				Date: date, Action: ActionInsert,
				AmountA: totalA, AmountB: totalB, Position: position,
			})
			log.Info().
				Str("date", date).
				Float64("amount_a", totalA).
				Float64("amount_b", totalB).
				Int("position", position).
				Msg("Inserted ledger row")

		case r.overwrite:
			if err := r.ledger.OverwriteAt(ctx, position, row); err != nil {
				return nil, fmt.Errorf("Run: date %s: %w", date, err)
			}
			report.Overwritten++
			report.Decisions = append(report.Decisions, Decision{
				Date: date, Action: ActionOverwrite,
				AmountA: totalA, AmountB: totalB, Position: position,
			})
			log.Info().
				Str("date", date).
				Float64("amount_a", totalA).
				Float64("amount_b", totalB).
				Int("position", position).
				Msg("Overwrote ledger row")

		default:
			report.Skipped++
			report.Decisions = append(report.Decisions, Decision{
				Date: date, Action: ActionSkip,
				AmountA: totalA, AmountB: totalB, Position: position,
			})
			log.Info().
				Str("date", date).
				Float64("amount_a", totalA).
				Float64("amount_b", totalB).
				Int("position", position).
				Msg("Skipped existing ledger row")
		}
	}

	log.Info().
		Str("run_id", report.RunID).
		Int("inserted", report.Inserted).
		Int("overwritten", report.Overwritten).
		Int("skipped", report.Skipped).
		Int("total", len(dates)).
		Msg("Reconciliation run completed")

	return report, nil
}
