// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/cover-rounds/auth"
	"github.com/danielhkuo/cover-rounds/cliparse"
	"github.com/danielhkuo/cover-rounds/middleware"
	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/round"
)

type SubmissionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewSubmissionHandler(db *sql.DB, cfg cliparse.Config) *SubmissionHandler {
	return &SubmissionHandler{db: db, cfg: cfg, now: time.Now}
}

// SubmitCover handles POST /rounds/{id}/submissions
func (h *SubmissionHandler) SubmitCover(w http.ResponseWriter, r *http.Request) {
	data, ok := loadRound(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	participant, ok := requireParticipant(w, r, h.db, data.Round.ProjectID)
	if !ok {
		return
	}

	var req models.SubmitCoverRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.AudioURL = strings.TrimSpace(req.AudioURL)
	if req.AudioURL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "audio_url is required")
		return
	}
	if u, err := url.Parse(req.AudioURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "audio_url must be an http(s) URL")
		return
	}

	now := h.now()
	if phase := round.CurrentPhase(data.Facts.Dates, data.Facts.VotingEnabled, now); phase != round.PhaseCovering {
		middleware.ErrorResponse(w, http.StatusConflict, "Covers can only be submitted during the covering phase")
		return
	}

	submissionID := auth.NewID()
	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO submission (id, round_id, user_id, audio_url, lyrics, additional_comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, submissionID, data.Round.ID, participant.ID, req.AudioURL, req.Lyrics, req.AdditionalComments, now.UTC())

	if err != nil {
		slog.Error("failed to insert submission", "round_id", data.Round.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit cover")
		return
	}

	slog.Info("cover submitted", "round_id", data.Round.ID, "submission_id", submissionID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitCoverResponse{
		SubmissionID: submissionID,
	})
}
