package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dvloznov/ledger-sync/internal/config"
	"github.com/dvloznov/ledger-sync/internal/dates"
	"github.com/dvloznov/ledger-sync/internal/ledger"
)

// Finding describes one problem detected in the ledger
type Finding struct {
	Position int
	Tag      string
	Detail   string
}

// Finding tags
const (
	tagBad = "BAD"
	tagDup = "DUP"
	tagOrd = "ORD"
)

var (
	quiet = flag.Bool("quiet", false, "Print findings only, not per-row status")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadLedger()
	if err != nil {
		log.Fatalf("Failed to load ledger configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	led, err := ledger.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}

	rows, err := led.Rows(ctx)
	if err != nil {
		log.Fatalf("Failed to read ledger rows: %v", err)
	}

	log.Printf("Checking %d ledger rows", len(rows))

	findings := auditRows(rows)

	byPos := make(map[int][]Finding)
	for _, f := range findings {
		byPos[f.Position] = append(byPos[f.Position], f)
	}

	for i := range rows {
		position := i + 1
		fs := byPos[position]
		if len(fs) == 0 {
			if !*quiet {
				log.Printf("  %-6s row %-4d %s", "[OK]", position, firstCell(rows[i]))
			}
			continue
		}
		for _, f := range fs {
			log.Printf("  %-6s row %-4d %s", "["+f.Tag+"]", position, f.Detail)
		}
	}

	if len(findings) == 0 {
		log.Println("Ledger is clean. No findings.")
		return
	}

	log.Printf("Found %d problem(s) in %d rows", len(findings), len(rows))
	os.Exit(1)
}

// auditRows checks every ledger row and returns the problems found.
// Duplicate detection keys rows the same way reconciliation does: any
// non-empty first cell counts, valid date or not.
func auditRows(rows [][]string) []Finding {
	var findings []Finding

	add := func(position int, tag, format string, args ...interface{}) {
		findings = append(findings, Finding{
			Position: position,
			Tag:      tag,
			Detail:   fmt.Sprintf(format, args...),
		})
	}

	seen := make(map[string][]int)
	var keys []string

	for i, row := range rows {
		position := i + 1

		if len(row) == 0 || row[0] == "" {
			add(position, tagBad, "empty date cell")
			continue
		}

		key := row[0]
		if _, ok := seen[key]; !ok {
			keys = append(keys, key)
		}
		seen[key] = append(seen[key], position)

		if !dates.Valid(key) {
			add(position, tagBad, "unparseable date %q", key)
		}

		if len(row) != 3 {
			add(position, tagBad, "has %d cells, want 3", len(row))
		}

		for j, name := range []string{"amount_a", "amount_b"} {
			cell := j + 1
			if cell >= len(row) {
				break
			}
			if _, err := strconv.ParseFloat(row[cell], 64); err != nil {
				add(position, tagBad, "%s %q is not numeric", name, row[cell])
			}
		}
	}

	for _, key := range keys {
		positions := seen[key]
		if len(positions) > 1 {
			add(positions[len(positions)-1], tagDup, "date %s appears at rows %v", key, positions)
		}
	}

	prevDate := ""
	prevPos := 0
	for i, row := range rows {
		if len(row) == 0 || !dates.Valid(row[0]) {
			continue
		}
		date := row[0]
		if prevDate != "" && date < prevDate {
			add(i+1, tagOrd, "date %s is earlier than %s at row %d", date, prevDate, prevPos)
		}
		prevDate = date
		prevPos = i + 1
	}

	return findings
}

func firstCell(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}
