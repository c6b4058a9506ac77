// Package report turns a reconciliation run into human-readable text
// and, optionally, a model-written prose summary.
package report

import (
	"fmt"
	"strings"

	"github.com/dvloznov/ledger-sync/internal/reconcile"
)

// Render formats a run report as plain text, one line per date decision.
func Render(rep *reconcile.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Reconciliation Run %s ===\n", rep.RunID)
	fmt.Fprintf(&b, "Range: %s to %s\n\n", rep.From, rep.To)

	for _, d := range rep.Decisions {
		fmt.Fprintf(&b, "%s  %-9s  row %-4d  source_a=%.2f  source_b=%.2f\n",
			d.Date, d.Action, d.Position, d.AmountA, d.AmountB)
	}

	fmt.Fprintf(&b, "\n%d dates processed: %d inserted, %d overwritten, %d skipped\n",
		len(rep.Decisions), rep.Inserted, rep.Overwritten, rep.Skipped)

	return b.String()
}
