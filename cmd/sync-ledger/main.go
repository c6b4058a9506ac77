package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/ledger-sync/internal/config"
	"github.com/dvloznov/ledger-sync/internal/dates"
	"github.com/dvloznov/ledger-sync/internal/ledger"
	"github.com/dvloznov/ledger-sync/internal/logger"
	"github.com/dvloznov/ledger-sync/internal/reconcile"
	"github.com/dvloznov/ledger-sync/internal/report"
	"github.com/dvloznov/ledger-sync/internal/source"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	fromStr := flag.String("from", "", "First date to reconcile, YYYY-MM-DD (default today)")
	toStr := flag.String("to", "", "Last date to reconcile, YYYY-MM-DD (default today)")
	overwrite := flag.Bool("overwrite", false, "Overwrite ledger rows for dates that already exist")
	summarize := flag.Bool("summarize", false, "Print the run report and a Gemini-written summary")
	flag.Parse()

	from := *fromStr
	if from == "" {
		from = dates.Today()
	}
	to := *toStr
	if to == "" {
		to = dates.Today()
	}

	// Resolve the date sequence before touching any external system.
	days, err := dates.Range(from, to)
	if err != nil {
		log.Fatal().Err(err).Str("from", from).Str("to", to).Msg("Error: invalid date range")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error: incomplete configuration")
	}
	if *summarize && cfg.GeminiAPIKey == "" {
		log.Fatal().Msg("Error: GEMINI_API_KEY is required with -summarize")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("from", from).
		Str("to", to).
		Bool("overwrite", *overwrite).
		Int("dates", len(days)).
		Msg("Starting ledger sync")

	sourceA, err := source.New(ctx, cfg.SourceA)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect source A")
	}
	defer sourceA.Close()

	sourceB, err := source.New(ctx, cfg.SourceB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect source B")
	}
	defer sourceB.Close()

	led, err := ledger.New(ctx, cfg.Ledger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open ledger")
	}

	rep, err := reconcile.New(sourceA, sourceB, led, *overwrite).Run(ctx, days)
	if err != nil {
		log.Fatal().Err(err).Msg("Reconciliation failed")
	}

	if *summarize {
		fmt.Print(report.Render(rep))

		summary, err := report.Summarize(ctx, cfg.GeminiAPIKey, rep)
		if err != nil {
			// The ledger is already written; a missing summary is not fatal.
			log.Warn().Err(err).Msg("Summary generation failed")
		} else {
			fmt.Println()
			fmt.Println(summary)
		}
	}

	fmt.Println("Reconciliation completed successfully.")
}
