// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
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

type RoundHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewRoundHandler(db *sql.DB, cfg cliparse.Config) *RoundHandler {
	return &RoundHandler{db: db, cfg: cfg, now: time.Now}
}

// CreateRound handles POST /projects/{id}/rounds
func (h *RoundHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	if !requireAdmin(w, r, projectID, h.cfg.AdminKeySalt) {
		return
	}

	var req models.CreateRoundRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	dates := req.Dates()
	if dates.SignupOpens.IsZero() || dates.VotingOpens.IsZero() || dates.CoveringBegins.IsZero() ||
		dates.CoversDue.IsZero() || dates.ListeningParty.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "all five round dates are required")
		return
	}
	if err := dates.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := db.GetProject(r.Context(), h.db, projectID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	roundID := auth.NewID()
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO round (id, project_id, title, signup_opens, voting_opens,
		                   covering_begins, covers_due, listening_party, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, roundID, projectID, title, dates.SignupOpens.UTC(), dates.VotingOpens.UTC(),
		dates.CoveringBegins.UTC(), dates.CoversDue.UTC(), dates.ListeningParty.UTC(), h.now().UTC())

	if err != nil {
		slog.Error("failed to insert round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create round")
		return
	}

	phase := round.CurrentPhase(dates, project.VotingEnabled, h.now())
	slog.Info("round created", "project_id", projectID, "round_id", roundID, "phase", phase)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateRoundResponse{
		RoundID: roundID,
		Phase:   phase,
	})
}

// GetRound handles GET /rounds/{id}
// With X-User-Token the snapshot also carries the caller's participation
// and reflection window.
func (h *RoundHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	data, ok := loadRound(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	participant, ok := optionalParticipant(w, r, h.db, data.Round.ProjectID)
	if !ok {
		return
	}

	var viewer *round.Viewer
	if participant != nil {
		hasInitial, err := db.HasReflection(r.Context(), h.db, data.Round.ID, participant.ID, round.ReflectionInitial)
		if err != nil {
			slog.Error("failed to check reflections", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		viewer = &round.Viewer{UserID: participant.ID, HasInitialReflection: hasInitial}
	}

	snap, err := round.Assemble(data.Facts, h.now(), viewer)
	if err != nil {
		slog.Error("failed to assemble round snapshot", "round_id", data.Round.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build round")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RoundView{
		Round:    data.Round,
		Project:  data.Project,
		Signups:  data.Signups,
		Snapshot: snap,
	})
}
