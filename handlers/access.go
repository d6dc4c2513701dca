// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/cover-rounds/auth"
	"github.com/danielhkuo/cover-rounds/db"
	"github.com/danielhkuo/cover-rounds/middleware"
	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/round"
)

// loadRound reads a round and its facts, writing the error response itself
// when it fails. Votes with out-of-range scores are logged and dropped so a
// single bad row cannot take the round page down.
func loadRound(w http.ResponseWriter, r *http.Request, q db.Querier, roundID string) (db.RoundData, bool) {
	if roundID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "round_id is required")
		return db.RoundData{}, false
	}

	data, err := db.LoadRoundData(r.Context(), q, roundID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return db.RoundData{}, false
	}
	if err != nil {
		slog.Error("failed to load round", "round_id", roundID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return db.RoundData{}, false
	}

	valid, invalid := round.SplitValid(data.Facts.Votes)
	if len(invalid) > 0 {
		slog.Warn("skipping out-of-range votes", "round_id", roundID, "count", len(invalid))
	}
	data.Facts.Votes = valid

	return data, true
}

// requireParticipant resolves X-User-Token to a participant of the project
func requireParticipant(w http.ResponseWriter, r *http.Request, q db.Querier, projectID string) (models.Participant, bool) {
	token := r.Header.Get(middleware.HeaderUserToken)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-Token header is required")
		return models.Participant{}, false
	}
	if err := auth.CheckUserToken(token); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid user token")
		return models.Participant{}, false
	}

	p, err := db.LookupParticipant(r.Context(), q, token)
	if errors.Is(err, db.ErrNotFound) || (err == nil && p.ProjectID != projectID) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid user token for this project")
		return models.Participant{}, false
	}
	if err != nil {
		slog.Error("failed to look up participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Participant{}, false
	}

	return p, true
}

// optionalParticipant is requireParticipant for read endpoints: no header
// means an anonymous viewer, a bad header is still rejected.
func optionalParticipant(w http.ResponseWriter, r *http.Request, q db.Querier, projectID string) (*models.Participant, bool) {
	if r.Header.Get(middleware.HeaderUserToken) == "" {
		return nil, true
	}
	p, ok := requireParticipant(w, r, q, projectID)
	if !ok {
		return nil, false
	}
	return &p, true
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}

// requireAdmin checks X-Admin-Key against the project
func requireAdmin(w http.ResponseWriter, r *http.Request, projectID, salt string) bool {
	adminKey := r.Header.Get(middleware.HeaderAdminKey)
	if err := auth.ValidateAdminKey(projectID, adminKey, salt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}
