// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/cover-rounds/auth"
	"github.com/danielhkuo/cover-rounds/cliparse"
	"github.com/danielhkuo/cover-rounds/middleware"
	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/round"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, now: time.Now}
}

// SubmitVotes handles POST /rounds/{id}/votes
// The submitted scores replace every vote the participant cast before in
// this round.
func (h *VotingHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	data, ok := loadRound(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	participant, ok := requireParticipant(w, r, h.db, data.Round.ProjectID)
	if !ok {
		return
	}

	var req models.SubmitVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !data.Facts.VotingEnabled {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is disabled for this project")
		return
	}

	now := h.now()
	if phase := round.CurrentPhase(data.Facts.Dates, true, now); phase != round.PhaseVoting {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is not open for this round")
		return
	}

	if len(req.Scores) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "scores are required")
		return
	}

	songs := make(map[string]bool, len(data.Signups))
	for _, s := range data.Signups {
		songs[s.ID] = true
	}

	// Verify all submitted scores are for songs in this round
	for songID, score := range req.Scores {
		if !songs[songID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid song_id: "+songID)
			return
		}
		if score < round.MinScore || score > round.MaxScore {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("score for %s must be between %d and %d", songID, round.MinScore, round.MaxScore))
			return
		}
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(r.Context(), `
		DELETE FROM vote WHERE round_id = $1 AND user_id = $2
	`, data.Round.ID, participant.ID)
	if err != nil {
		slog.Error("failed to delete old votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save votes")
		return
	}
	replaced, _ := res.RowsAffected()

	for songID, score := range req.Scores {
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO vote (round_id, song_id, user_id, score, submitted_at, ip_hash)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, data.Round.ID, songID, participant.ID, score, now.UTC(), ipHash)

		if err != nil {
			slog.Error("failed to insert vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save votes")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save votes")
		return
	}

	isUpdate := replaced > 0
	message := "Votes submitted successfully"
	if isUpdate {
		message = "Votes updated successfully"
	}

	slog.Info("votes submitted", "round_id", data.Round.ID, "user_id", participant.ID,
		"count", len(req.Scores), "is_update", isUpdate)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVotesResponse{
		Count:   len(req.Scores),
		Message: message,
	})
}
