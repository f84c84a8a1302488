package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realworldcase/challenge-engine/internal/models"
)

// dbPool is the subset of *pgxpool.Pool the repository and migrations use
type dbPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool dbPool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository connects to PostgreSQL and applies pending migrations
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	}
	poolConfig.MaxConnLifetime = 30 * time.Minute
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateChallenge inserts a challenge and reads back its generated id and timestamp
func (r *PostgresRepository) CreateChallenge(ctx context.Context, c *models.Challenge) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO challenges (text, industry, role, difficulty, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, c.Text, c.Industry, c.Role, c.Difficulty, createdAt).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}

	return nil
}

// GetChallenge retrieves a challenge by ID
func (r *PostgresRepository) GetChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	query := `
		SELECT id, text, industry, role, difficulty, created_at
		FROM challenges
		WHERE id = $1
	`

	c, err := scanChallenge(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return c, nil
}

// ListChallenges retrieves challenges matching filters, newest first
func (r *PostgresRepository) ListChallenges(ctx context.Context, filters models.ListFilters) ([]*models.Challenge, error) {
	filters = normalizeFilters(filters)

	where, args := filterClause(filters)
	args = append(args, filters.Limit, filters.Offset)
	query := `SELECT id, text, industry, role, difficulty, created_at FROM challenges` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	challenges := []*models.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, c)
	}

	return challenges, rows.Err()
}

// CountChallenges counts challenges matching the field filters
func (r *PostgresRepository) CountChallenges(ctx context.Context, filters models.ListFilters) (int64, error) {
	where, args := filterClause(filters)

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM challenges`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count challenges: %w", err)
	}
	return count, nil
}

// filterClause builds the WHERE clause for the field filters with numbered placeholders
func filterClause(filters models.ListFilters) (string, []any) {
	var conditions []string
	var args []any

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addCondition("industry", filters.Industry)
	addCondition("role", filters.Role)
	addCondition("difficulty", filters.Difficulty)

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// DeleteChallengesBefore removes challenges created before t
func (r *PostgresRepository) DeleteChallengesBefore(ctx context.Context, t time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM challenges WHERE created_at < $1`, t)
	if err != nil {
		return 0, fmt.Errorf("failed to delete challenges: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanChallenge(row pgx.Row) (*models.Challenge, error) {
	var c models.Challenge
	if err := row.Scan(&c.ID, &c.Text, &c.Industry, &c.Role, &c.Difficulty, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}
