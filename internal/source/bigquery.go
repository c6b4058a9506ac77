package source

import (
	"context"
	"fmt"
	"regexp"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/ledger-sync/internal/config"
)

// projectPattern matches GCP project IDs (lowercase letters, digits, hyphens).
var projectPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// BigQuerySource sums one numeric column per day from a BigQuery table with
// the same `day`/`total` shape as the Postgres adapter.
type BigQuerySource struct {
	name   string
	client *bigquery.Client
	query  string
}

// NewBigQuery creates a BigQuery-backed source. Credentials come from
// Application Default Credentials, matching the other GCP clients.
func NewBigQuery(ctx context.Context, cfg config.SourceConfig) (*BigQuerySource, error) {
	if !projectPattern.MatchString(cfg.Project) {
		return nil, fmt.Errorf("NewBigQuery: invalid project %q for %s", cfg.Project, cfg.Name)
	}
	for _, ident := range []string{cfg.Dataset, cfg.BQTable} {
		if !identPattern.MatchString(ident) {
			return nil, fmt.Errorf("NewBigQuery: invalid dataset or table %q for %s", ident, cfg.Name)
		}
	}

	client, err := bigquery.NewClient(ctx, cfg.Project)
	if err != nil {
		return nil, &ConnectError{Source: cfg.Name, Err: err}
	}

	return &BigQuerySource{
		name:   cfg.Name,
		client: client,
		query: fmt.Sprintf("SELECT SUM(total) AS total FROM `%s.%s.%s` WHERE day = @day",
			cfg.Project, cfg.Dataset, cfg.BQTable),
	}, nil
}

func (s *BigQuerySource) Name() string { return s.name }

// Total returns the summed amount for one day. A day with no rows yields a
// NULL aggregate, which maps to 0.0.
func (s *BigQuerySource) Total(ctx context.Context, date string) (float64, error) {
	day, err := civil.ParseDate(date)
	if err != nil {
		return 0, &QueryError{Source: s.name, Date: date, Err: err}
	}

	query := s.client.Query(s.query)
	query.Parameters = []bigquery.QueryParameter{
		{Name: "day", Value: day},
	}

	it, err := query.Read(ctx)
	if err != nil {
		return 0, &QueryError{Source: s.name, Date: date, Err: err}
	}

	var row struct {
		Total bigquery.NullFloat64 `bigquery:"total"`
	}
	switch err := it.Next(&row); {
	case err == iterator.Done:
		return 0, nil
	case err != nil:
		return 0, &QueryError{Source: s.name, Date: date, Err: err}
	}

	if !row.Total.Valid {
		return 0, nil
	}
	return row.Total.Float64, nil
}

func (s *BigQuerySource) Close() error { return s.client.Close() }
