package services

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresChecker checks PostgreSQL over a dedicated database/sql handle,
// independent of the repository pool
type PostgresChecker struct {
	BaseChecker
	db *sql.DB
}

// NewPostgresChecker opens a lib/pq handle for dsn
func NewPostgresChecker(dsn string) (*PostgresChecker, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &PostgresChecker{
		BaseChecker: BaseChecker{serviceType: "postgres"},
		db:          db,
	}, nil
}

// HealthCheck runs a trivial query against PostgreSQL
func (p *PostgresChecker) HealthCheck(ctx context.Context) error {
	var one int
	if err := p.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("postgres health query failed: %w", err)
	}
	return nil
}

// Close closes the database handle
func (p *PostgresChecker) Close() error {
	return p.db.Close()
}
