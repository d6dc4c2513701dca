// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/danielhkuo/cover-rounds/models"
)

// ListReflections returns the public reflections of a round plus every
// reflection written by viewerID, oldest first. An empty viewerID yields
// public reflections only.
func ListReflections(ctx context.Context, q Querier, roundID, viewerID string) ([]models.Reflection, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, round_id, user_id, kind, title, markdown, is_public, created_at
		FROM reflection
		WHERE round_id = $1 AND (is_public = TRUE OR user_id = $2)
		ORDER BY created_at, id
	`, roundID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reflections: %w", err)
	}
	defer rows.Close()

	reflections := []models.Reflection{}
	for rows.Next() {
		var rf models.Reflection
		if err := rows.Scan(&rf.ID, &rf.RoundID, &rf.UserID, &rf.Kind, &rf.Title,
			&rf.Markdown, &rf.IsPublic, &rf.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reflection: %w", err)
		}
		reflections = append(reflections, rf)
	}

	return reflections, rows.Err()
}
