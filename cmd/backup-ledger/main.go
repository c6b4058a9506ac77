package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dvloznov/ledger-sync/internal/backup"
	"github.com/dvloznov/ledger-sync/internal/config"
	"github.com/dvloznov/ledger-sync/internal/ledger"
	"github.com/dvloznov/ledger-sync/internal/logger"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	var (
		dir    string
		upload bool
		bucket string
	)

	flag.StringVar(&dir, "dir", ".", "Directory for the backup file")
	flag.BoolVar(&upload, "upload", false, "Also upload the backup to Cloud Storage")
	flag.StringVar(&bucket, "bucket", "", "GCS bucket for the upload (defaults to BACKUP_BUCKET)")
	flag.Parse()

	cfg, err := config.LoadLedger()
	if err != nil {
		log.Fatal().Err(err).Msg("Error: incomplete configuration")
	}

	if upload && bucket == "" {
		bucket = strings.TrimSpace(os.Getenv("BACKUP_BUCKET"))
		if bucket == "" {
			log.Fatal().Msg("Error: -bucket or BACKUP_BUCKET is required with -upload")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	led, err := ledger.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open ledger")
	}

	log.Info().Str("dir", dir).Msg("Exporting ledger backup")

	path, err := backup.Export(ctx, led, dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Backup failed")
	}

	fmt.Printf("Backup written to %s\n", path)

	if upload {
		uri, err := backup.Upload(ctx, bucket, path)
		if err != nil {
			log.Fatal().Err(err).Msg("Upload failed")
		}
		fmt.Printf("Uploaded %s to %s\n", path, uri)
	}
}
