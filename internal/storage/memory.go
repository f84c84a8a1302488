package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/realworldcase/challenge-engine/internal/models"
)

// MemoryRepository keeps challenges in process memory.
// Used when no database is configured.
type MemoryRepository struct {
	mu         sync.RWMutex
	nextID     int64
	challenges map[int64]*models.Challenge
	now        func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:     1,
		challenges: make(map[int64]*models.Challenge),
		now:        time.Now,
	}
}

func (r *MemoryRepository) CreateChallenge(ctx context.Context, c *models.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextID
	r.nextID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now().UTC()
	}

	stored := *c
	r.challenges[c.ID] = &stored
	return nil
}

func (r *MemoryRepository) GetChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.challenges[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *MemoryRepository) ListChallenges(ctx context.Context, filters models.ListFilters) ([]*models.Challenge, error) {
	filters = normalizeFilters(filters)

	r.mu.RLock()
	matched := r.matching(filters)
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filters.Offset >= len(matched) {
		return []*models.Challenge{}, nil
	}
	matched = matched[filters.Offset:]
	if len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, nil
}

func (r *MemoryRepository) CountChallenges(ctx context.Context, filters models.ListFilters) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(filters))), nil
}

// matching copies the challenges passing the field filters; r.mu must be held
func (r *MemoryRepository) matching(filters models.ListFilters) []*models.Challenge {
	var matched []*models.Challenge
	for _, c := range r.challenges {
		if filters.Industry != "" && c.Industry != filters.Industry {
			continue
		}
		if filters.Role != "" && c.Role != filters.Role {
			continue
		}
		if filters.Difficulty != "" && c.Difficulty != filters.Difficulty {
			continue
		}
		out := *c
		matched = append(matched, &out)
	}
	return matched
}

func (r *MemoryRepository) DeleteChallengesBefore(ctx context.Context, t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, c := range r.challenges {
		if c.CreatedAt.Before(t) {
			delete(r.challenges, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
