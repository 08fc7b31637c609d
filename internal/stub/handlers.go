package stub

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nudj-platform/challenge-console/internal/models"
)

// errorResponse matches the error body shape the console's client
// expects from the production API
type errorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(errorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func queryInt(r *http.Request, key, fallback string) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		value = fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Health handler

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Challenge handlers

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	opts := models.ChallengeListOptions{
		Limit:       queryInt(r, "limit", "100"),
		Skip:        queryInt(r, "skip", "0"),
		CommunityID: r.URL.Query().Get("communityId"),
		Search:      r.URL.Query().Get("search"),
	}

	respondJSON(w, http.StatusOK, s.store.ListChallenges(opts))
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	var input models.ChallengeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if input.CommunityID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "communityId is required")
		return
	}

	if input.Details.Title == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "details.title is required")
		return
	}

	respondJSON(w, http.StatusCreated, s.store.CreateChallenge(input))
}

func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	challenge, err := s.store.GetChallenge(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "challenge not found")
		return
	}

	respondJSON(w, http.StatusOK, challenge)
}

func (s *Server) handleUpdateChallenge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input models.ChallengeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	challenge, err := s.store.UpdateChallenge(id, input)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "challenge not found")
		return
	}

	respondJSON(w, http.StatusOK, challenge)
}

func (s *Server) handleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteChallenge(id); err != nil {
		respondError(w, http.StatusNotFound, "not_found", "challenge not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "challenge deleted",
	})
}

// Community handlers

func (s *Server) handleListCommunities(w http.ResponseWriter, r *http.Request) {
	opts := models.CommunityListOptions{
		Limit: queryInt(r, "limit", "100"),
		Skip:  queryInt(r, "skip", "0"),
	}

	respondJSON(w, http.StatusOK, s.store.ListCommunities(opts))
}

// Action handlers

func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	opts := models.ActionListOptions{
		ChallengeID: r.URL.Query().Get("challengeId"),
		CommunityID: r.URL.Query().Get("communityId"),
		Limit:       queryInt(r, "limit", "100"),
		Skip:        queryInt(r, "skip", "0"),
	}

	respondJSON(w, http.StatusOK, s.store.ListActions(opts))
}

func (s *Server) handleCreateAction(w http.ResponseWriter, r *http.Request) {
	var req models.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.AllocationID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "allocationId is required")
		return
	}

	if req.Key == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "key is required")
		return
	}

	respondJSON(w, http.StatusCreated, s.store.CreateAction(req))
}

func (s *Server) handleUpdateAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	action, err := s.store.UpdateAction(id, req)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "action not found")
		return
	}

	respondJSON(w, http.StatusOK, action)
}

// Reward handlers

func (s *Server) handleListRewards(w http.ResponseWriter, r *http.Request) {
	opts := models.RewardListOptions{
		CommunityID: r.URL.Query().Get("communityId"),
		Limit:       queryInt(r, "limit", "100"),
		Skip:        queryInt(r, "skip", "0"),
		Search:      r.URL.Query().Get("search"),
	}

	respondJSON(w, http.StatusOK, s.store.ListRewards(opts))
}

// Distribution handlers

func (s *Server) handleGetDistribution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	dist, err := s.store.GetDistribution(id)
	if err != nil {
		if errors.Is(err, ErrDistributionNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "distribution not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get distribution")
		return
	}

	respondJSON(w, http.StatusOK, dist)
}

func (s *Server) handleAssignDistribution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.DistributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	dist, err := s.store.AssignDistribution(id, req)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "challenge not found")
			return
		}
		slog.Error("failed to assign distribution", "error", err, "challenge_id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to assign distribution")
		return
	}

	respondJSON(w, http.StatusOK, dist)
}
