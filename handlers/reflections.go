// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/cover-rounds/auth"
	"github.com/danielhkuo/cover-rounds/cliparse"
	"github.com/danielhkuo/cover-rounds/db"
	"github.com/danielhkuo/cover-rounds/middleware"
	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/round"
)

type ReflectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewReflectionHandler(db *sql.DB, cfg cliparse.Config) *ReflectionHandler {
	return &ReflectionHandler{db: db, cfg: cfg, now: time.Now}
}

// CreateReflection handles POST /rounds/{id}/reflections
func (h *ReflectionHandler) CreateReflection(w http.ResponseWriter, r *http.Request) {
	data, ok := loadRound(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	participant, ok := requireParticipant(w, r, h.db, data.Round.ProjectID)
	if !ok {
		return
	}

	var req models.CreateReflectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !req.Kind.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "kind must be initial or checkin")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "markdown is required")
		return
	}

	hasInitial, err := db.HasReflection(r.Context(), h.db, data.Round.ID, participant.ID, round.ReflectionInitial)
	if err != nil {
		slog.Error("failed to check reflections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := h.now()
	window := round.ScheduleReflection(data.Facts.Dates, hasInitial, now)
	if !window.Allows(req.Kind) {
		middleware.ErrorResponse(w, http.StatusConflict, window.AvailabilityMessage)
		return
	}

	reflectionID := auth.NewID()
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO reflection (id, round_id, user_id, kind, title, markdown, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, reflectionID, data.Round.ID, participant.ID, string(req.Kind), req.Title, req.Markdown, req.IsPublic, now.UTC())

	if err != nil {
		slog.Error("failed to insert reflection", "round_id", data.Round.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save reflection")
		return
	}

	slog.Info("reflection created", "round_id", data.Round.ID, "reflection_id", reflectionID,
		"kind", req.Kind, "phase", window.CurrentPhase)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateReflectionResponse{
		ReflectionID: reflectionID,
	})
}

// ListReflections handles GET /rounds/{id}/reflections
// Anonymous callers see public reflections; a participant also sees their own.
func (h *ReflectionHandler) ListReflections(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("id")
	if roundID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "round_id is required")
		return
	}

	rd, err := db.GetRound(r.Context(), h.db, roundID)
	if err != nil {
		if isNotFound(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
			return
		}
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	participant, ok := optionalParticipant(w, r, h.db, rd.ProjectID)
	if !ok {
		return
	}

	var viewerID string
	if participant != nil {
		viewerID = participant.ID
	}

	reflections, err := db.ListReflections(r.Context(), h.db, roundID, viewerID)
	if err != nil {
		slog.Error("failed to list reflections", "round_id", roundID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reflections)
}
