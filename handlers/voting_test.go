// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/testutil"
)

func TestSubmitVotes(t *testing.T) {
	f := newRoundFixture(t, true)
	handler := NewVotingHandler(f.conn, f.cfg)

	alice, aliceToken := f.participant(t, "alice")
	bob, _ := f.participant(t, "bob")
	song1 := testutil.CreateTestSignup(t, f.conn, f.roundID, alice, "Jolene")
	song2 := testutil.CreateTestSignup(t, f.conn, f.roundID, bob, "Hurt")

	tests := []struct {
		name           string
		now            time.Time
		token          string
		scores         map[string]int
		expectedStatus int
	}{
		{"missing token", testutil.Day(8), "", map[string]int{song1: 4}, http.StatusUnauthorized},
		{"before voting opens", testutil.Day(6), aliceToken, map[string]int{song1: 4}, http.StatusConflict},
		{"after voting closes", testutil.Day(14), aliceToken, map[string]int{song1: 4}, http.StatusConflict},
		{"empty scores", testutil.Day(8), aliceToken, map[string]int{}, http.StatusBadRequest},
		{"score too high", testutil.Day(8), aliceToken, map[string]int{song1: 6}, http.StatusBadRequest},
		{"score too low", testutil.Day(8), aliceToken, map[string]int{song1: 0}, http.StatusBadRequest},
		{"unknown song", testutil.Day(8), aliceToken, map[string]int{"nope": 3}, http.StatusBadRequest},
		{"valid ballot", testutil.Day(8), aliceToken, map[string]int{song1: 5, song2: 3}, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler.now = testutil.Clock(tt.now)

			w := httptest.NewRecorder()
			handler.SubmitVotes(w, roundRequest("POST", f.roundID, "/votes",
				models.SubmitVotesRequest{Scores: tt.scores}, tt.token))

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	var count int
	if err := f.conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE round_id = $1`, f.roundID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 stored votes, got %d", count)
	}
}

func TestSubmitVotes_ReplacesPreviousVotes(t *testing.T) {
	f := newRoundFixture(t, true)
	handler := NewVotingHandler(f.conn, f.cfg)
	handler.now = testutil.Clock(testutil.Day(9))

	alice, aliceToken := f.participant(t, "alice")
	bob, _ := f.participant(t, "bob")
	song1 := testutil.CreateTestSignup(t, f.conn, f.roundID, alice, "Jolene")
	song2 := testutil.CreateTestSignup(t, f.conn, f.roundID, bob, "Hurt")

	w := httptest.NewRecorder()
	handler.SubmitVotes(w, roundRequest("POST", f.roundID, "/votes",
		models.SubmitVotesRequest{Scores: map[string]int{song1: 5, song2: 1}}, aliceToken))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	handler.SubmitVotes(w, roundRequest("POST", f.roundID, "/votes",
		models.SubmitVotesRequest{Scores: map[string]int{song2: 4}}, aliceToken))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitVotesResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 1 {
		t.Errorf("Expected count 1, got %d", resp.Count)
	}
	if resp.Message != "Votes updated successfully" {
		t.Errorf("Expected update message, got '%s'", resp.Message)
	}

	rows, err := f.conn.Query(`SELECT song_id, score, ip_hash FROM vote WHERE user_id = $1`, alice)
	if err != nil {
		t.Fatalf("Failed to query votes: %v", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var songID, ipHash string
		var score int
		if err := rows.Scan(&songID, &score, &ipHash); err != nil {
			t.Fatalf("Failed to scan vote: %v", err)
		}
		n++
		if songID != song2 || score != 4 {
			t.Errorf("Unexpected vote %s=%d", songID, score)
		}
		if ipHash == "" {
			t.Error("Expected ip_hash to be recorded")
		}
	}
	if n != 1 {
		t.Errorf("Expected 1 vote after replacement, got %d", n)
	}
}

func TestSubmitVotes_VotingDisabled(t *testing.T) {
	f := newRoundFixture(t, false)
	handler := NewVotingHandler(f.conn, f.cfg)

	alice, token := f.participant(t, "alice")
	song := testutil.CreateTestSignup(t, f.conn, f.roundID, alice, "Jolene")

	// Inside what would have been the voting window
	handler.now = testutil.Clock(testutil.Day(8))

	w := httptest.NewRecorder()
	handler.SubmitVotes(w, roundRequest("POST", f.roundID, "/votes",
		models.SubmitVotesRequest{Scores: map[string]int{song: 5}}, token))

	testutil.AssertStatus(t, w, http.StatusConflict)
}
