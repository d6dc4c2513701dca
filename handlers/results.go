// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/danielhkuo/cover-rounds/cliparse"
	"github.com/danielhkuo/cover-rounds/middleware"
	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/round"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, now: time.Now}
}

// GetResults handles GET /rounds/{id}/results
// Returns 403 while voting is still running (results are sealed)
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	data, ok := loadRound(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	if !data.Facts.VotingEnabled {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is disabled for this project")
		return
	}

	// Results are sealed until voting has closed
	phase := round.CurrentPhase(data.Facts.Dates, true, h.now())
	if !phase.AtOrAfter(round.PhaseCovering) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are hidden until voting closes")
		return
	}

	breakdown, err := round.Breakdown(data.Facts.Votes)
	if err != nil {
		slog.Error("failed to tally votes", "round_id", data.Round.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Results not available")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		RoundID:   data.Round.ID,
		Phase:     phase,
		Songs:     RankSongs(breakdown, data.Signups),
		VoteCount: len(data.Facts.Votes),
	})
}

// GetOutstandingVoters handles GET /rounds/{id}/outstanding-voters
// Lists usernames of participants who proposed a song but have not voted.
func (h *ResultsHandler) GetOutstandingVoters(w http.ResponseWriter, r *http.Request) {
	data, ok := loadRound(w, r, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	if !requireAdmin(w, r, data.Round.ProjectID, h.cfg.AdminKeySalt) {
		return
	}

	if !data.Facts.VotingEnabled {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is disabled for this project")
		return
	}

	outstanding := round.OutstandingVoters(round.SignedUp(data.Facts.Signups), round.Voters(data.Facts.Votes))

	names, err := h.usernames(r, data.Round.ProjectID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	users := make([]string, 0, len(outstanding))
	for _, id := range outstanding.Sorted() {
		if name, ok := names[id]; ok {
			users = append(users, name)
		} else {
			users = append(users, id)
		}
	}
	sort.Strings(users)

	middleware.JSONResponse(w, http.StatusOK, models.OutstandingVotersResponse{
		RoundID: data.Round.ID,
		Users:   users,
	})
}

// usernames maps participant IDs to usernames for a project
func (h *ResultsHandler) usernames(r *http.Request, projectID string) (map[string]string, error) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, username FROM participant WHERE project_id = $1
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
