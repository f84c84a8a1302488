package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realworldcase/challenge-engine/internal/models"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	cats := c.Categories()

	assert.Len(t, cats.Industries, 13)
	assert.Len(t, cats.Roles, 6)
	assert.Len(t, cats.Difficulties, 4)
	assert.Equal(t, models.CategoryOption{Value: "any_industries", Label: "Any Industries"}, cats.Industries[0])
	assert.Equal(t, models.CategoryOption{Value: "medium", Label: "medium"}, cats.Difficulties[2])

	assert.True(t, c.ValidIndustry("real_estate"))
	assert.True(t, c.ValidRole("ai_engineer"))
	assert.True(t, c.ValidDifficulty("hard"))
	assert.False(t, c.ValidIndustry("Fintech"))
	assert.False(t, c.ValidRole(""))
}

func TestCategories_ReturnsCopy(t *testing.T) {
	c := New()
	cats := c.Categories()
	cats.Industries[0].Value = "mutated"

	assert.Equal(t, "any_industries", c.Categories().Industries[0].Value)
}

func TestValidate_Order(t *testing.T) {
	c := New()

	assert.NoError(t, c.Validate(models.ChallengeRequest{Industry: "fintech", Role: "backend_engineer", Difficulty: "easy"}))
	assert.ErrorIs(t, c.Validate(models.ChallengeRequest{Industry: "x", Role: "y", Difficulty: "z"}), ErrInvalidIndustry)
	assert.ErrorIs(t, c.Validate(models.ChallengeRequest{Industry: "fintech", Role: "y", Difficulty: "z"}), ErrInvalidRole)
	assert.ErrorIs(t, c.Validate(models.ChallengeRequest{Industry: "fintech", Role: "any_role", Difficulty: "z"}), ErrInvalidDifficulty)
	assert.Equal(t, "Invalid difficulty", ErrInvalidDifficulty.Error())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
roles:
  - value: sre
    label: Site Reliability Engineer
  - value: data_engineer
    label: Data Engineer
`), 0o644))

	c := New()
	require.NoError(t, c.LoadFromFile(path))

	cats := c.Categories()
	assert.Len(t, cats.Roles, 2)
	assert.Len(t, cats.Industries, 13, "industries keep the defaults")
	assert.True(t, c.ValidRole("sre"))
	assert.False(t, c.ValidRole("backend_engineer"))
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()
	c := New()

	err := c.LoadFromFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("industries: [unterminated"), 0o644))
	err = c.LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	noValue := filepath.Join(dir, "novalue.yaml")
	require.NoError(t, os.WriteFile(noValue, []byte("industries:\n  - label: Nameless\n"), 0o644))
	err = c.LoadFromFile(noValue)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value is required")
	assert.True(t, c.ValidIndustry("fintech"), "failed load leaves catalog unchanged")
}
