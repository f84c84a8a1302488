package challenge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/realworldcase/challenge-engine/internal/catalog"
	"github.com/realworldcase/challenge-engine/internal/generator"
	"github.com/realworldcase/challenge-engine/internal/models"
	"github.com/realworldcase/challenge-engine/internal/storage"
)

// Common errors
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrGenerationFailed  = errors.New("failed to generate challenge")
)

// Publisher receives every newly generated challenge
type Publisher interface {
	Publish(c *models.Challenge)
}

// Service validates, generates and records challenges
type Service struct {
	catalog   *catalog.Catalog
	generator generator.Generator
	repo      storage.Repository
	publisher Publisher
	now       func() time.Time
}

// NewService creates a challenge service. publisher may be nil.
func NewService(
	cat *catalog.Catalog,
	gen generator.Generator,
	repo storage.Repository,
	publisher Publisher,
) *Service {
	return &Service{
		catalog:   cat,
		generator: gen,
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Categories returns the selectable option lists
func (s *Service) Categories() models.Categories {
	return s.catalog.Categories()
}

// Generate produces a new challenge for req. Catalog violations return the
// catalog's validation errors; generator failures wrap ErrGenerationFailed.
// A challenge that was generated but could not be stored is still returned.
func (s *Service) Generate(ctx context.Context, req models.ChallengeRequest) (*models.Challenge, error) {
	if err := s.catalog.Validate(req); err != nil {
		return nil, err
	}

	genID := uuid.NewString()
	start := s.now()
	slog.Info("generating challenge",
		"generation_id", genID,
		"industry", req.Industry,
		"role", req.Role,
		"difficulty", req.Difficulty,
	)

	text, err := s.generator.Generate(ctx, req.Industry, req.Role, req.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	c := &models.Challenge{
		Text:       text,
		Industry:   req.Industry,
		Role:       req.Role,
		Difficulty: req.Difficulty,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.CreateChallenge(ctx, c); err != nil {
		slog.Error("failed to store challenge", "error", err, "generation_id", genID)
	} else if s.publisher != nil {
		s.publisher.Publish(c)
	}

	slog.Info("challenge generated",
		"generation_id", genID,
		"id", c.ID,
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)

	return c, nil
}

// Get retrieves a stored challenge
func (s *Service) Get(ctx context.Context, id int64) (*models.Challenge, error) {
	c, err := s.repo.GetChallenge(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if c == nil {
		return nil, ErrChallengeNotFound
	}
	return c, nil
}

// List returns one page of stored challenges, newest first, and the number
// of challenges matching filters across all pages
func (s *Service) List(ctx context.Context, filters models.ListFilters) ([]*models.Challenge, int64, error) {
	challenges, err := s.repo.ListChallenges(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list challenges: %w", err)
	}
	total, err := s.repo.CountChallenges(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count challenges: %w", err)
	}
	return challenges, total, nil
}

// DeleteOlderThan removes challenges created more than age ago
func (s *Service) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	return s.repo.DeleteChallengesBefore(ctx, s.now().Add(-age))
}

// Ping checks the repository. Registered as the "storage" readiness check.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
