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
)

// maxUsernameLength bounds claimed usernames
const maxUsernameLength = 40

type ProjectHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewProjectHandler(db *sql.DB, cfg cliparse.Config) *ProjectHandler {
	return &ProjectHandler{db: db, cfg: cfg, now: time.Now}
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	// Voting is on unless the project opts out
	votingEnabled := true
	if req.VotingEnabled != nil {
		votingEnabled = *req.VotingEnabled
	}

	projectID := auth.NewID()
	adminKey := auth.GenerateAdminKey(projectID, h.cfg.AdminKeySalt)

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO project (id, name, voting_enabled, created_at)
		VALUES ($1, $2, $3, $4)
	`, projectID, name, votingEnabled, h.now().UTC())

	if err != nil {
		slog.Error("failed to insert project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	slog.Info("project created", "project_id", projectID, "voting_enabled", votingEnabled)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProjectResponse{
		ProjectID: projectID,
		AdminKey:  adminKey,
	})
}

// ClaimUsername handles POST /projects/{id}/participants
func (h *ProjectHandler) ClaimUsername(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	var req models.ClaimUsernameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(username) > maxUsernameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is too long")
		return
	}

	if _, err := db.GetProject(r.Context(), h.db, projectID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
			return
		}
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var taken bool
	err := h.db.QueryRowContext(r.Context(), `
		SELECT EXISTS(
			SELECT 1 FROM participant
			WHERE project_id = $1 AND username = $2
		)
	`, projectID, username).Scan(&taken)
	if err != nil {
		slog.Error("failed to check username", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	}

	userToken, err := auth.GenerateUserToken()
	if err != nil {
		slog.Error("failed to generate user token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	userID := auth.NewID()
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO participant (id, project_id, username, user_token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, projectID, username, userToken, h.now().UTC())

	if err != nil {
		slog.Error("failed to insert participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	slog.Info("username claimed", "project_id", projectID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimUsernameResponse{
		UserID:    userID,
		UserToken: userToken,
	})
}
