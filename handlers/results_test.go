// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/round"
	"github.com/danielhkuo/cover-rounds/testutil"
)

func TestGetResults(t *testing.T) {
	f := newRoundFixture(t, true)
	handler := NewResultsHandler(f.conn, f.cfg)

	alice, _ := f.participant(t, "alice")
	bob, _ := f.participant(t, "bob")
	carol, _ := f.participant(t, "carol")

	jolene := testutil.CreateTestSignup(t, f.conn, f.roundID, alice, "Jolene")
	hurt := testutil.CreateTestSignup(t, f.conn, f.roundID, bob, "Hurt")
	creep := testutil.CreateTestSignup(t, f.conn, f.roundID, carol, "Creep")

	// Jolene 3.0, Hurt 4.5, Creep unscored
	testutil.CreateTestVote(t, f.conn, f.roundID, jolene, alice, 2)
	testutil.CreateTestVote(t, f.conn, f.roundID, jolene, bob, 4)
	testutil.CreateTestVote(t, f.conn, f.roundID, hurt, alice, 5)
	testutil.CreateTestVote(t, f.conn, f.roundID, hurt, bob, 4)

	t.Run("sealed during voting", func(t *testing.T) {
		handler.now = testutil.Clock(testutil.Day(10))

		w := httptest.NewRecorder()
		handler.GetResults(w, roundRequest("GET", f.roundID, "/results", nil, ""))

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("sealed during signups", func(t *testing.T) {
		handler.now = testutil.Clock(testutil.Day(1))

		w := httptest.NewRecorder()
		handler.GetResults(w, roundRequest("GET", f.roundID, "/results", nil, ""))

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("open once covering begins", func(t *testing.T) {
		handler.now = testutil.Clock(testutil.Day(14))

		w := httptest.NewRecorder()
		handler.GetResults(w, roundRequest("GET", f.roundID, "/results", nil, ""))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ResultsResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Phase != round.PhaseCovering {
			t.Errorf("Expected phase covering, got %s", resp.Phase)
		}
		if resp.VoteCount != 4 {
			t.Errorf("Expected 4 votes, got %d", resp.VoteCount)
		}
		if len(resp.Songs) != 3 {
			t.Fatalf("Expected 3 songs, got %d", len(resp.Songs))
		}

		expected := []struct {
			songID  string
			rank    int
			average float64
			total   int
		}{
			{hurt, 1, 4.5, 2},
			{jolene, 2, 3, 2},
			{creep, 3, 0, 0},
		}
		for i, e := range expected {
			got := resp.Songs[i]
			if got.SongID != e.songID || got.Rank != e.rank || got.Average != e.average || got.Total != e.total {
				t.Errorf("Position %d: expected %+v, got %+v", i, e, got)
			}
		}

		if resp.Songs[1].Counts[2] != 1 || resp.Songs[1].Counts[4] != 1 {
			t.Errorf("Unexpected counts for Jolene: %v", resp.Songs[1].Counts)
		}
		if len(resp.Songs[2].Counts) != 5 {
			t.Errorf("Expected all five score keys for an unscored song, got %v", resp.Songs[2].Counts)
		}
	})

	t.Run("unknown round", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetResults(w, roundRequest("GET", "missing", "/results", nil, ""))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetResults_VotingDisabled(t *testing.T) {
	f := newRoundFixture(t, false)
	handler := NewResultsHandler(f.conn, f.cfg)
	handler.now = testutil.Clock(testutil.Day(20))

	w := httptest.NewRecorder()
	handler.GetResults(w, roundRequest("GET", f.roundID, "/results", nil, ""))

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestGetOutstandingVoters(t *testing.T) {
	f := newRoundFixture(t, true)
	handler := NewResultsHandler(f.conn, f.cfg)

	alice, _ := f.participant(t, "alice")
	bob, _ := f.participant(t, "bob")
	carol, _ := f.participant(t, "carol")
	f.participant(t, "dave") // never signed up

	song := testutil.CreateTestSignup(t, f.conn, f.roundID, alice, "Jolene")
	testutil.CreateTestSignup(t, f.conn, f.roundID, bob, "Hurt")
	testutil.CreateTestSignup(t, f.conn, f.roundID, carol, "Creep")
	testutil.CreateTestVote(t, f.conn, f.roundID, song, bob, 4)

	path := "/rounds/" + f.roundID + "/outstanding-voters"

	t.Run("requires admin key", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetOutstandingVoters(w, adminRequest("GET", path, f.roundID, "wrong", nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("lists signed-up non-voters", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetOutstandingVoters(w, adminRequest("GET", path, f.roundID, f.adminKey, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.OutstandingVotersResponse
		testutil.AssertJSON(t, w, &resp)

		if len(resp.Users) != 2 || resp.Users[0] != "alice" || resp.Users[1] != "carol" {
			t.Errorf("Expected [alice carol], got %v", resp.Users)
		}
	})
}

func TestRankSongs(t *testing.T) {
	signups := []models.Signup{
		{ID: "a", SongTitle: "A"},
		{ID: "b", SongTitle: "B"},
		{ID: "c", SongTitle: "C"},
		{ID: "d", SongTitle: "D"},
	}
	breakdown, err := round.Breakdown([]round.Vote{
		{SongID: "a", UserID: "u1", Score: 4},
		{SongID: "b", UserID: "u1", Score: 4},
		{SongID: "c", UserID: "u1", Score: 4},
		{SongID: "c", UserID: "u2", Score: 4},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	results := RankSongs(breakdown, signups)

	// c has the same average as a and b but more votes; a and b tie
	order := []string{"c", "a", "b", "d"}
	ranks := []int{1, 2, 2, 4}
	for i := range order {
		if results[i].SongID != order[i] {
			t.Errorf("Position %d: expected %s, got %s", i, order[i], results[i].SongID)
		}
		if results[i].Rank != ranks[i] {
			t.Errorf("Position %d: expected rank %d, got %d", i, ranks[i], results[i].Rank)
		}
	}
}
