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

type SignupHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewSignupHandler(db *sql.DB, cfg cliparse.Config) *SignupHandler {
	return &SignupHandler{db: db, cfg: cfg, now: time.Now}
}

// SubmitSignup handles POST /rounds/{id}/signups
// A participant has one song per round; signing up again replaces it.
func (h *SignupHandler) SubmitSignup(w http.ResponseWriter, r *http.Request) {
	data, ok := loadRound(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	participant, ok := requireParticipant(w, r, h.db, data.Round.ProjectID)
	if !ok {
		return
	}

	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.SongTitle = strings.TrimSpace(req.SongTitle)
	req.Artist = strings.TrimSpace(req.Artist)
	if req.SongTitle == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "song_title is required")
		return
	}
	if req.Artist == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "artist is required")
		return
	}

	now := h.now()
	phase := round.CurrentPhase(data.Facts.Dates, data.Facts.VotingEnabled, now)
	if phase != round.PhaseSignups {
		middleware.ErrorResponse(w, http.StatusConflict, "Signups are closed for this round")
		return
	}
	if !round.PhaseWindows(data.Facts.Dates, data.Facts.VotingEnabled)[round.PhaseSignups].Contains(now) {
		middleware.ErrorResponse(w, http.StatusConflict, "Signups are not open yet")
		return
	}

	part := round.TrackParticipation(participant.ID, data.Round.ID,
		data.Facts.Signups, data.Facts.Submissions, data.Facts.Votes)
	isUpdate := part.SignupAction() == round.SignupActionUpdate

	var signupID string
	var err error
	if isUpdate {
		err = h.db.QueryRowContext(r.Context(), `
			SELECT id FROM signup WHERE round_id = $1 AND user_id = $2
		`, data.Round.ID, participant.ID).Scan(&signupID)
		if err == nil {
			_, err = h.db.ExecContext(r.Context(), `
				UPDATE signup
				SET song_title = $1, artist = $2, youtube_link = $3,
				    additional_comments = $4, updated_at = $5
				WHERE id = $6
			`, req.SongTitle, req.Artist, req.YoutubeLink, req.AdditionalComments, now.UTC(), signupID)
		}
	} else {
		signupID = auth.NewID()
		_, err = h.db.ExecContext(r.Context(), `
			INSERT INTO signup (id, round_id, user_id, song_title, artist, youtube_link,
			                    additional_comments, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		`, signupID, data.Round.ID, participant.ID, req.SongTitle, req.Artist,
			req.YoutubeLink, req.AdditionalComments, now.UTC())
	}

	if errors.Is(err, sql.ErrNoRows) || db.IsUniqueViolation(err) {
		// Another request created or removed this signup after the load
		middleware.ErrorResponse(w, http.StatusConflict, "Signup changed concurrently, try again")
		return
	}
	if err != nil {
		slog.Error("failed to save signup", "round_id", data.Round.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save signup")
		return
	}

	slog.Info("signup saved", "round_id", data.Round.ID, "signup_id", signupID, "is_update", isUpdate)

	status, message := http.StatusCreated, "Song suggested"
	if isUpdate {
		status, message = http.StatusOK, "Song updated"
	}

	middleware.JSONResponse(w, status, models.SignupResponse{
		SignupID: signupID,
		Message:  message,
	})
}
