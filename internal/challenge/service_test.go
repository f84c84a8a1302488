package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realworldcase/challenge-engine/internal/catalog"
	"github.com/realworldcase/challenge-engine/internal/models"
	"github.com/realworldcase/challenge-engine/internal/storage"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, industry, role, difficulty string) (string, error) {
	g.calls++
	return g.text, g.err
}

type recordingPublisher struct {
	published []*models.Challenge
}

func (p *recordingPublisher) Publish(c *models.Challenge) {
	p.published = append(p.published, c)
}

type failingRepo struct {
	*storage.MemoryRepository
}

func (failingRepo) CreateChallenge(ctx context.Context, c *models.Challenge) error {
	return errors.New("disk full")
}

var validRequest = models.ChallengeRequest{Industry: "healthcare", Role: "mobile_engineer", Difficulty: "medium"}

func TestService_Generate(t *testing.T) {
	gen := &stubGenerator{text: "A clinic wants appointment reminders."}
	pub := &recordingPublisher{}
	svc := NewService(catalog.New(), gen, storage.NewMemoryRepository(), pub)

	c, err := svc.Generate(context.Background(), validRequest)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "A clinic wants appointment reminders.", c.Text)
	assert.Equal(t, "healthcare", c.Industry)
	assert.False(t, c.CreatedAt.IsZero())
	require.Len(t, pub.published, 1)
	assert.Equal(t, c.ID, pub.published[0].ID)

	stored, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Text, stored.Text)
}

func TestService_Generate_NotCached(t *testing.T) {
	gen := &stubGenerator{text: "x"}
	svc := NewService(catalog.New(), gen, storage.NewMemoryRepository(), nil)

	first, err := svc.Generate(context.Background(), validRequest)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), validRequest)
	require.NoError(t, err)

	assert.Equal(t, 2, gen.calls)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestService_Generate_InvalidCategory(t *testing.T) {
	gen := &stubGenerator{text: "x"}
	svc := NewService(catalog.New(), gen, storage.NewMemoryRepository(), nil)

	_, err := svc.Generate(context.Background(), models.ChallengeRequest{Industry: "fintech", Role: "wizard", Difficulty: "easy"})
	assert.ErrorIs(t, err, catalog.ErrInvalidRole)
	assert.Zero(t, gen.calls)
}

func TestService_Generate_GeneratorError(t *testing.T) {
	cause := errors.New("model not loaded")
	svc := NewService(catalog.New(), &stubGenerator{err: cause}, storage.NewMemoryRepository(), nil)

	_, err := svc.Generate(context.Background(), validRequest)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)
}

func TestService_Generate_StorageFailureStillReturnsText(t *testing.T) {
	pub := &recordingPublisher{}
	repo := failingRepo{storage.NewMemoryRepository()}
	svc := NewService(catalog.New(), &stubGenerator{text: "kept"}, repo, pub)

	c, err := svc.Generate(context.Background(), validRequest)
	require.NoError(t, err)
	assert.Equal(t, "kept", c.Text)
	assert.Empty(t, pub.published)
}

func TestService_GetNotFound(t *testing.T) {
	svc := NewService(catalog.New(), &stubGenerator{}, storage.NewMemoryRepository(), nil)
	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestService_DeleteOlderThan(t *testing.T) {
	repo := storage.NewMemoryRepository()
	svc := NewService(catalog.New(), &stubGenerator{text: "x"}, repo, nil)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return now.Add(-48 * time.Hour) }
	_, err := svc.Generate(context.Background(), validRequest)
	require.NoError(t, err)

	svc.now = func() time.Time { return now }
	_, err = svc.Generate(context.Background(), validRequest)
	require.NoError(t, err)

	deleted, err := svc.DeleteOlderThan(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	left, total, err := svc.List(context.Background(), models.ListFilters{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(2), left[0].ID)
}

func TestService_ListTotalSpansPages(t *testing.T) {
	svc := NewService(catalog.New(), &stubGenerator{text: "x"}, storage.NewMemoryRepository(), nil)
	for i := 0; i < 3; i++ {
		_, err := svc.Generate(context.Background(), validRequest)
		require.NoError(t, err)
	}

	page, total, err := svc.List(context.Background(), models.ListFilters{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].ID)
	assert.Equal(t, int64(3), total)
}

func TestService_Ping(t *testing.T) {
	svc := NewService(catalog.New(), &stubGenerator{}, storage.NewMemoryRepository(), nil)
	assert.NoError(t, svc.Ping(context.Background()))
}
