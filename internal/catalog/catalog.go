package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/realworldcase/challenge-engine/internal/models"
)

// Validation errors, in the order Validate checks them
var (
	ErrInvalidIndustry   = errors.New("Invalid industry")
	ErrInvalidRole       = errors.New("Invalid role")
	ErrInvalidDifficulty = errors.New("Invalid difficulty")
)

// Catalog holds the selectable industries, roles and difficulties
type Catalog struct {
	mu           sync.RWMutex
	categories   models.Categories
	industries   map[string]bool
	roles        map[string]bool
	difficulties map[string]bool
}

// New creates a catalog with the built-in categories
func New() *Catalog {
	c := &Catalog{}
	c.set(models.Categories{
		Industries:   defaultIndustries,
		Roles:        defaultRoles,
		Difficulties: defaultDifficulties,
	})
	return c
}

// LoadFromFile replaces categories with those from a YAML file.
// A list that is missing or empty in the file keeps its current value.
func (c *Catalog) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	for _, list := range [][]models.CategoryOption{cf.Industries, cf.Roles, cf.Difficulties} {
		for i, opt := range list {
			if opt.Value == "" {
				return fmt.Errorf("option %d: value is required", i)
			}
		}
	}

	next := c.Categories()
	if len(cf.Industries) > 0 {
		next.Industries = cf.Industries
	}
	if len(cf.Roles) > 0 {
		next.Roles = cf.Roles
	}
	if len(cf.Difficulties) > 0 {
		next.Difficulties = cf.Difficulties
	}
	c.set(next)

	slog.Info("catalog loaded",
		"file", path,
		"industries", len(next.Industries),
		"roles", len(next.Roles),
		"difficulties", len(next.Difficulties),
	)
	return nil
}

// Categories returns a copy of the current option lists
func (c *Catalog) Categories() models.Categories {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return models.Categories{
		Industries:   append([]models.CategoryOption(nil), c.categories.Industries...),
		Roles:        append([]models.CategoryOption(nil), c.categories.Roles...),
		Difficulties: append([]models.CategoryOption(nil), c.categories.Difficulties...),
	}
}

// ValidIndustry reports whether value is a known industry
func (c *Catalog) ValidIndustry(value string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.industries[value]
}

// ValidRole reports whether value is a known role
func (c *Catalog) ValidRole(value string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roles[value]
}

// ValidDifficulty reports whether value is a known difficulty
func (c *Catalog) ValidDifficulty(value string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.difficulties[value]
}

// Validate returns the first invalid field of req, checking industry, role, then difficulty
func (c *Catalog) Validate(req models.ChallengeRequest) error {
	if !c.ValidIndustry(req.Industry) {
		return ErrInvalidIndustry
	}
	if !c.ValidRole(req.Role) {
		return ErrInvalidRole
	}
	if !c.ValidDifficulty(req.Difficulty) {
		return ErrInvalidDifficulty
	}
	return nil
}

func (c *Catalog) set(categories models.Categories) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.categories = categories
	c.industries = valueSet(categories.Industries)
	c.roles = valueSet(categories.Roles)
	c.difficulties = valueSet(categories.Difficulties)
}

func valueSet(options []models.CategoryOption) map[string]bool {
	set := make(map[string]bool, len(options))
	for _, opt := range options {
		set[opt.Value] = true
	}
	return set
}

// catalogFile represents the YAML structure of a catalog override file
type catalogFile struct {
	Industries   []models.CategoryOption `yaml:"industries"`
	Roles        []models.CategoryOption `yaml:"roles"`
	Difficulties []models.CategoryOption `yaml:"difficulties"`
}
