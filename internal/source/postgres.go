package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/lib/pq" // postgres driver

	"github.com/dvloznov/ledger-sync/internal/config"
)

// identPattern restricts table names to bare SQL identifiers, since the
// table name is the one configured value spliced into the query text.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresSource sums one numeric column per day from a Postgres table. The
// table is expected to expose a `day` date column and a `total` numeric
// column; the per-day aggregation runs server-side.
type PostgresSource struct {
	name  string
	db    *sql.DB
	query string
}

// NewPostgres opens and pings a connection for the given source settings.
func NewPostgres(ctx context.Context, cfg config.SourceConfig) (*PostgresSource, error) {
	if !identPattern.MatchString(cfg.Table) {
		return nil, fmt.Errorf("NewPostgres: invalid table name %q for %s", cfg.Table, cfg.Name)
	}

	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &ConnectError{Source: cfg.Name, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectError{Source: cfg.Name, Err: err}
	}

	return &PostgresSource{
		name:  cfg.Name,
		db:    db,
		query: fmt.Sprintf("SELECT SUM(total) FROM %s WHERE day = $1", cfg.Table),
	}, nil
}

func (s *PostgresSource) Name() string { return s.name }

// Total returns the summed amount for one day. SUM over zero rows is NULL,
// which maps to 0.0 here.
func (s *PostgresSource) Total(ctx context.Context, date string) (float64, error) {
	var total sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, s.query, date).Scan(&total); err != nil {
		return 0, &QueryError{Source: s.name, Date: date, Err: err}
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}

func (s *PostgresSource) Close() error { return s.db.Close() }
