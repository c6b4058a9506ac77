// Package config loads the connection settings for the two total sources and
// the ledger from the environment, optionally seeded from a .env file. Every
// required variable is checked before any connection is attempted, and all
// missing names are reported together.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Source backend kinds.
const (
	SourcePostgres = "postgres"
	SourceBigQuery = "bigquery"
)

// Ledger backend kinds.
const (
	LedgerSheets = "sheets"
	LedgerCSV    = "csv"
	LedgerXLSX   = "xlsx"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPostgresPort    = "5432"
	DefaultPostgresSSLMode = "disable"
	DefaultSourceTable     = "daily_totals"
	DefaultCredentialsFile = "credentials.json"
)

// SourceConfig holds the connection settings for one total source.
type SourceConfig struct {
	// Name labels the source in logs and error messages (source_a, source_b).
	Name string
	Kind string

	// postgres
	Host     string
	Port     string
	Database string
	User     string
	Password string
	SSLMode  string
	Table    string

	// bigquery
	Project string
	Dataset string
	BQTable string
}

// LedgerConfig holds the connection settings for the ledger store.
type LedgerConfig struct {
	Kind string

	// sheets
	SheetID         string
	SheetName       string
	CredentialsFile string

	// csv and xlsx
	File string
}

// Config is the full environment-derived configuration for one run.
type Config struct {
	SourceA SourceConfig
	SourceB SourceConfig
	Ledger  LedgerConfig

	// GeminiAPIKey is only required when a run summary is requested.
	GeminiAPIKey string
}

// MissingError reports required configuration variables that are absent. All
// missing names are collected so the operator can fix them in one pass.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return "missing required configuration: " + strings.Join(e.Names, ", ")
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; a missing file is not an
// error since the environment may be set directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var missing []string

	cfg := &Config{
		GeminiAPIKey: get("GEMINI_API_KEY"),
	}

	var err error
	if cfg.SourceA, err = loadSource("SOURCE_A", &missing); err != nil {
		return nil, err
	}
	if cfg.SourceB, err = loadSource("SOURCE_B", &missing); err != nil {
		return nil, err
	}
	if cfg.Ledger, err = loadLedger(&missing); err != nil {
		return nil, err
	}

	if len(missing) > 0 {
		return nil, &MissingError{Names: missing}
	}
	return cfg, nil
}

// LoadLedger reads only the ledger section of the configuration, for
// maintenance commands that never touch the sources.
func LoadLedger() (LedgerConfig, error) {
	_ = godotenv.Load()

	var missing []string
	cfg, err := loadLedger(&missing)
	if err != nil {
		return cfg, err
	}
	if len(missing) > 0 {
		return cfg, &MissingError{Names: missing}
	}
	return cfg, nil
}

func loadSource(prefix string, missing *[]string) (SourceConfig, error) {
	cfg := SourceConfig{
		Name: strings.ToLower(prefix),
		Kind: getDefault(prefix+"_KIND", SourcePostgres),
	}

	switch cfg.Kind {
	case SourcePostgres:
		cfg.Host = require(prefix+"_DB_HOST", missing)
		cfg.Database = require(prefix+"_DB_NAME", missing)
		cfg.User = require(prefix+"_DB_USER", missing)
		cfg.Password = require(prefix+"_DB_PASSWORD", missing)
		cfg.Port = getDefault(prefix+"_DB_PORT", DefaultPostgresPort)
		cfg.SSLMode = getDefault(prefix+"_DB_SSLMODE", DefaultPostgresSSLMode)
		cfg.Table = getDefault(prefix+"_TABLE", DefaultSourceTable)
	case SourceBigQuery:
		cfg.Project = require(prefix+"_BQ_PROJECT", missing)
		cfg.Dataset = require(prefix+"_BQ_DATASET", missing)
		cfg.BQTable = require(prefix+"_BQ_TABLE", missing)
	default:
		return cfg, fmt.Errorf("loadSource: unsupported %s_KIND %q", prefix, cfg.Kind)
	}

	return cfg, nil
}

func loadLedger(missing *[]string) (LedgerConfig, error) {
	cfg := LedgerConfig{
		Kind: getDefault("LEDGER_KIND", LedgerSheets),
	}

	switch cfg.Kind {
	case LedgerSheets:
		cfg.SheetID = require("GOOGLE_SHEET_ID", missing)
		cfg.SheetName = get("GOOGLE_SHEET_NAME")
		cfg.CredentialsFile = getDefault("GOOGLE_CREDENTIALS_FILE", DefaultCredentialsFile)
	case LedgerCSV, LedgerXLSX:
		cfg.File = require("LEDGER_FILE", missing)
	default:
		return cfg, fmt.Errorf("loadLedger: unsupported LEDGER_KIND %q", cfg.Kind)
	}

	return cfg, nil
}

func get(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getDefault(key, fallback string) string {
	if v := get(key); v != "" {
		return v
	}
	return fallback
}

func require(key string, missing *[]string) string {
	v := get(key)
	if v == "" {
		*missing = append(*missing, key)
	}
	return v
}
