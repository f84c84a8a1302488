package models

import (
	"encoding/json"
	"time"
)

// Challenge is a generated prompt associated with an industry, role and difficulty
type Challenge struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	Industry   string    `json:"industry"`
	Role       string    `json:"role"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"-"`
}

// challengeJSON carries the wire shape, where the creation time is a date string
type challengeJSON struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Industry   string `json:"industry"`
	Role       string `json:"role"`
	Difficulty string `json:"difficulty"`
	Date       string `json:"date"`
}

// Date returns the creation time in RFC3339 UTC
func (c *Challenge) Date() string {
	return c.CreatedAt.UTC().Format(time.RFC3339)
}

// MarshalJSON renders the challenge with its date field
func (c Challenge) MarshalJSON() ([]byte, error) {
	return json.Marshal(challengeJSON{
		ID:         c.ID,
		Text:       c.Text,
		Industry:   c.Industry,
		Role:       c.Role,
		Difficulty: c.Difficulty,
		Date:       c.Date(),
	})
}

// ChallengeRequest is the body of POST /challenge
type ChallengeRequest struct {
	Industry   string `json:"industry"`
	Role       string `json:"role"`
	Difficulty string `json:"difficulty"`
}

// ChallengeResponse is returned after a successful generation
type ChallengeResponse struct {
	Result string `json:"result"`
}

// ListFilters defines filters for listing challenges
type ListFilters struct {
	Industry   string
	Role       string
	Difficulty string
	Limit      int
	Offset     int
}

// HealthResponse identifies the running service
type HealthResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
