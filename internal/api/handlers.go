package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/realworldcase/challenge-engine/internal/catalog"
	"github.com/realworldcase/challenge-engine/internal/challenge"
	"github.com/realworldcase/challenge-engine/internal/models"
)

// Response helpers

// errorResponse uses the detail field, which clients display verbatim
type errorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}

// Health handlers

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{
		Name:    s.app.Name,
		Version: s.app.Version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	results := s.registry.HealthCheckAll(r.Context())

	status := http.StatusOK
	checks := make(map[string]string, len(results))
	for name, err := range results {
		if err != nil {
			slog.Warn("dependency not ready", "service", name, "error", err)
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}

	respondJSON(w, status, map[string]interface{}{
		"status":   state,
		"services": checks,
	})
}

// Category handlers

func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.challenges.Categories())
}

// Challenge handlers

func (s *Server) handleGenerateChallenge(w http.ResponseWriter, r *http.Request) {
	var req models.ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := s.challenges.Generate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidIndustry),
			errors.Is(err, catalog.ErrInvalidRole),
			errors.Is(err, catalog.ErrInvalidDifficulty):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, challenge.ErrGenerationFailed):
			slog.Error("challenge generation failed", "error", err)
			respondError(w, http.StatusBadGateway, challenge.ErrGenerationFailed.Error())
		default:
			slog.Error("failed to generate challenge", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	respondJSON(w, http.StatusOK, models.ChallengeResponse{Result: c.Text})
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := models.ListFilters{
		Industry:   query.Get("industry"),
		Role:       query.Get("role"),
		Difficulty: query.Get("difficulty"),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	challenges, total, err := s.challenges.List(r.Context(), filters)
	if err != nil {
		slog.Error("failed to list challenges", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list challenges")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"challenges": challenges,
		"total":      total,
	})
}

func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "challenge id must be a positive integer")
		return
	}

	c, err := s.challenges.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, challenge.ErrChallengeNotFound) {
			respondError(w, http.StatusNotFound, "challenge not found")
			return
		}
		slog.Error("failed to get challenge", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to get challenge")
		return
	}

	respondJSON(w, http.StatusOK, c)
}
