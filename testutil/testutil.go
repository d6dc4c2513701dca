// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/cover-rounds/auth"
	"github.com/danielhkuo/cover-rounds/cliparse"
	"github.com/danielhkuo/cover-rounds/db"
	"github.com/danielhkuo/cover-rounds/round"
)

// Base is the instant test rounds are laid out from
var Base = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

// Day returns Base shifted by n days
func Day(n float64) time.Time {
	return Base.Add(time.Duration(n * float64(24*time.Hour)))
}

// RoundDates is the standard test round: signups day 0, voting day 7,
// covering day 14, covers due day 24, listening party day 26.
// The check-in midpoint is day 19.
func RoundDates() round.Dates {
	return round.Dates{
		SignupOpens:    Day(0),
		VotingOpens:    Day(7),
		CoveringBegins: Day(14),
		CoversDue:      Day(24),
		ListeningParty: Day(26),
	}
}

// Clock returns a fixed clock for handler tests
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// One connection keeps every query on the same in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		AdminKeySalt: "test-admin-salt",
		IPHashSalt:   "test-ip-salt",
	}
}

// CreateTestProject creates a project and returns its ID and admin key
func CreateTestProject(t *testing.T, conn *sql.DB, cfg cliparse.Config, votingEnabled bool) (projectID, adminKey string) {
	t.Helper()

	projectID = auth.NewID()
	adminKey = auth.GenerateAdminKey(projectID, cfg.AdminKeySalt)

	_, err := conn.Exec(`
		INSERT INTO project (id, name, voting_enabled, created_at)
		VALUES ($1, 'Test Project', $2, $3)
	`, projectID, votingEnabled, Base)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return projectID, adminKey
}

// CreateTestParticipant claims a username and returns the user ID and token
func CreateTestParticipant(t *testing.T, conn *sql.DB, projectID, username string) (userID, userToken string) {
	t.Helper()

	userID = auth.NewID()
	userToken, err := auth.GenerateUserToken()
	if err != nil {
		t.Fatalf("Failed to generate user token: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO participant (id, project_id, username, user_token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, projectID, username, userToken, Base)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return userID, userToken
}

// CreateTestRound creates a round with the given dates and returns its ID
func CreateTestRound(t *testing.T, conn *sql.DB, projectID string, d round.Dates) string {
	t.Helper()

	roundID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO round (id, project_id, title, signup_opens, voting_opens,
		                   covering_begins, covers_due, listening_party, created_at)
		VALUES ($1, $2, 'Test Round', $3, $4, $5, $6, $7, $8)
	`, roundID, projectID, d.SignupOpens, d.VotingOpens, d.CoveringBegins, d.CoversDue, d.ListeningParty, Base)
	if err != nil {
		t.Fatalf("Failed to create test round: %v", err)
	}

	return roundID
}

// CreateTestSignup proposes a song for a user and returns the signup (song) ID.
// Signups are spaced a second apart so listing order is deterministic.
func CreateTestSignup(t *testing.T, conn *sql.DB, roundID, userID, songTitle string) string {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM signup WHERE round_id = $1`, roundID).Scan(&n); err != nil {
		t.Fatalf("Failed to count signups: %v", err)
	}
	at := Base.Add(time.Duration(n) * time.Second)

	signupID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO signup (id, round_id, user_id, song_title, artist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'Test Artist', $5, $5)
	`, signupID, roundID, userID, songTitle, at)
	if err != nil {
		t.Fatalf("Failed to create test signup: %v", err)
	}

	return signupID
}

// CreateTestVote stores one score
func CreateTestVote(t *testing.T, conn *sql.DB, roundID, songID, userID string, score int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (round_id, song_id, user_id, score, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, roundID, songID, userID, score, Base)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// CreateTestReflection stores a reflection and returns its ID
func CreateTestReflection(t *testing.T, conn *sql.DB, roundID, userID string, kind round.ReflectionKind, public bool) string {
	t.Helper()

	reflectionID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO reflection (id, round_id, user_id, kind, title, markdown, is_public, created_at)
		VALUES ($1, $2, $3, $4, 'Notes', '# notes', $5, $6)
	`, reflectionID, roundID, userID, string(kind), public, Base)
	if err != nil {
		t.Fatalf("Failed to create test reflection: %v", err)
	}

	return reflectionID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
