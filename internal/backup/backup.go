// Package backup exports the ledger to timestamped CSV files and ships
// them to Cloud Storage.
package backup

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/ledger-sync/internal/ledger"
)

// Export writes every ledger row, cells verbatim, to a timestamped CSV
// file under dir and returns the file path. Rows are not validated, so
// a backup captures the ledger as-is, malformed rows included.
func Export(ctx context.Context, led ledger.Ledger, dir string) (string, error) {
	rows, err := led.Rows(ctx)
	if err != nil {
		return "", fmt.Errorf("Export: reading ledger: %w", err)
	}

	name := fmt.Sprintf("ledger-backup-%s.csv", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("Export: create %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("Export: write rows: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("Export: close %q: %w", path, err)
	}

	return path, nil
}

// Upload copies a backup file to the bucket and returns its gs:// URI.
// It assumes Application Default Credentials are configured.
func Upload(ctx context.Context, bucketName, filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("Upload: open %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("Upload: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	objectName := filepath.Base(filePath)
	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	defer func() {
		// Ensure the writer is closed even on early returns
		_ = w.Close()
	}()

	if _, err := io.Copy(w, f); err != nil {
		return "", fmt.Errorf("Upload: copy to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("Upload: finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", bucketName, objectName), nil
}
