package storage

import (
	"context"
	"time"

	"github.com/realworldcase/challenge-engine/internal/models"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Repository defines the interface for challenge persistence
type Repository interface {
	// CreateChallenge stores c and fills in its ID and CreatedAt
	CreateChallenge(ctx context.Context, c *models.Challenge) error
	// GetChallenge returns nil, nil when no challenge has the id
	GetChallenge(ctx context.Context, id int64) (*models.Challenge, error)
	// ListChallenges returns matching challenges, newest first
	ListChallenges(ctx context.Context, filters models.ListFilters) ([]*models.Challenge, error)
	// CountChallenges counts challenges matching the field filters, ignoring paging
	CountChallenges(ctx context.Context, filters models.ListFilters) (int64, error)
	// DeleteChallengesBefore removes challenges created before t
	DeleteChallengesBefore(ctx context.Context, t time.Time) (int64, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}

// normalizeFilters applies the default and maximum page size
func normalizeFilters(f models.ListFilters) models.ListFilters {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)
