// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/round"
)

// ErrNotFound is returned when a looked-up row does not exist
var ErrNotFound = errors.New("not found")

// Querier is satisfied by *sql.DB and *sql.Tx
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RoundData is everything stored about one round, read in one pass
type RoundData struct {
	Round   models.Round
	Project models.Project
	Signups []models.Signup
	Facts   round.Facts
}

// GetProject retrieves a project by ID
func GetProject(ctx context.Context, q Querier, projectID string) (models.Project, error) {
	var p models.Project
	err := q.QueryRowContext(ctx, `
		SELECT id, name, voting_enabled, created_at
		FROM project
		WHERE id = $1
	`, projectID).Scan(&p.ID, &p.Name, &p.VotingEnabled, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to query project: %w", err)
	}
	return p, nil
}

// GetRound retrieves a round and its dates
func GetRound(ctx context.Context, q Querier, roundID string) (models.Round, error) {
	var r models.Round
	err := q.QueryRowContext(ctx, `
		SELECT id, project_id, title, signup_opens, voting_opens,
		       covering_begins, covers_due, listening_party, created_at
		FROM round
		WHERE id = $1
	`, roundID).Scan(
		&r.ID, &r.ProjectID, &r.Title, &r.Dates.SignupOpens, &r.Dates.VotingOpens,
		&r.Dates.CoveringBegins, &r.Dates.CoversDue, &r.Dates.ListeningParty, &r.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Round{}, fmt.Errorf("round %s: %w", roundID, ErrNotFound)
	}
	if err != nil {
		return models.Round{}, fmt.Errorf("failed to query round: %w", err)
	}
	return r, nil
}

// LookupParticipant resolves a user token to its participant
func LookupParticipant(ctx context.Context, q Querier, userToken string) (models.Participant, error) {
	var p models.Participant
	err := q.QueryRowContext(ctx, `
		SELECT id, project_id, username, user_token, created_at
		FROM participant
		WHERE user_token = $1
	`, userToken).Scan(&p.ID, &p.ProjectID, &p.Username, &p.UserToken, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Participant{}, fmt.Errorf("participant: %w", ErrNotFound)
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to query participant: %w", err)
	}
	return p, nil
}

// ListSignups retrieves all song proposals for a round, oldest first
func ListSignups(ctx context.Context, q Querier, roundID string) ([]models.Signup, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, round_id, user_id, song_title, artist, youtube_link,
		       additional_comments, created_at, updated_at
		FROM signup
		WHERE round_id = $1
		ORDER BY created_at, id
	`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups: %w", err)
	}
	defer rows.Close()

	signups := []models.Signup{}
	for rows.Next() {
		var s models.Signup
		if err := rows.Scan(&s.ID, &s.RoundID, &s.UserID, &s.SongTitle, &s.Artist,
			&s.YoutubeLink, &s.AdditionalComments, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		signups = append(signups, s)
	}

	return signups, rows.Err()
}

// ListVotes retrieves every vote row for a round
func ListVotes(ctx context.Context, q Querier, roundID string) ([]round.Vote, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT round_id, song_id, user_id, score, submitted_at
		FROM vote
		WHERE round_id = $1
		ORDER BY song_id, user_id
	`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []round.Vote{}
	for rows.Next() {
		var v round.Vote
		if err := rows.Scan(&v.RoundID, &v.SongID, &v.UserID, &v.Score, &v.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}

// ListSubmissions retrieves who submitted a cover in a round
func ListSubmissions(ctx context.Context, q Querier, roundID string) ([]round.Submission, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT round_id, user_id
		FROM submission
		WHERE round_id = $1
		ORDER BY created_at, id
	`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []round.Submission{}
	for rows.Next() {
		var s round.Submission
		if err := rows.Scan(&s.RoundID, &s.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}

	return submissions, rows.Err()
}

// HasReflection reports whether the user already wrote a reflection of the
// given kind in the round
func HasReflection(ctx context.Context, q Querier, roundID, userID string, kind round.ReflectionKind) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM reflection
			WHERE round_id = $1 AND user_id = $2 AND kind = $3
		)
	`, roundID, userID, string(kind)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reflections: %w", err)
	}
	return exists, nil
}

// LoadRoundData reads a round, its project and every fact the engine needs
func LoadRoundData(ctx context.Context, q Querier, roundID string) (RoundData, error) {
	r, err := GetRound(ctx, q, roundID)
	if err != nil {
		return RoundData{}, err
	}

	project, err := GetProject(ctx, q, r.ProjectID)
	if err != nil {
		return RoundData{}, err
	}

	signups, err := ListSignups(ctx, q, roundID)
	if err != nil {
		return RoundData{}, err
	}

	votes, err := ListVotes(ctx, q, roundID)
	if err != nil {
		return RoundData{}, err
	}

	submissions, err := ListSubmissions(ctx, q, roundID)
	if err != nil {
		return RoundData{}, err
	}

	return RoundData{
		Round:   r,
		Project: project,
		Signups: signups,
		Facts: round.Facts{
			RoundID:       r.ID,
			Dates:         r.Dates,
			VotingEnabled: project.VotingEnabled,
			Votes:         votes,
			Signups:       EngineSignups(signups),
			Submissions:   submissions,
		},
	}, nil
}

// EngineSignups converts stored signups to the engine's view; the signup ID
// is the song ID votes refer to
func EngineSignups(signups []models.Signup) []round.Signup {
	out := make([]round.Signup, len(signups))
	for i, s := range signups {
		out[i] = round.Signup{RoundID: s.RoundID, UserID: s.UserID, SongID: s.ID}
	}
	return out
}
