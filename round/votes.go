// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package round

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// Score bounds for a single vote
const (
	MinScore = 1
	MaxScore = 5
)

// ErrScoreOutOfRange is wrapped by every *ScoreError.
var ErrScoreOutOfRange = errors.New("vote score out of range")

// Vote is one user's score for one proposed song in a round.
type Vote struct {
	RoundID     string    `json:"round_id"`
	SongID      string    `json:"song_id"`
	UserID      string    `json:"user_id"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ScoreError identifies the vote row that carried an invalid score.
type ScoreError struct {
	SongID string
	UserID string
	Score  int
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("score %d for song %s by user %s must be between %d and %d",
		e.Score, e.SongID, e.UserID, MinScore, MaxScore)
}

func (e *ScoreError) Unwrap() error { return ErrScoreOutOfRange }

// ScoreCounts buckets votes by score; keys 1 through 5 are always present.
type ScoreCounts map[int]int

// NewScoreCounts returns counts with every score bucket set to zero.
func NewScoreCounts() ScoreCounts {
	c := make(ScoreCounts, MaxScore-MinScore+1)
	for s := MinScore; s <= MaxScore; s++ {
		c[s] = 0
	}
	return c
}

// VoteBreakdown is the tally for one song.
type VoteBreakdown struct {
	SongID  string      `json:"song_id"`
	Average float64     `json:"average"`
	Counts  ScoreCounts `json:"counts"`
	Total   int         `json:"total"`
}

// DisplayAverage rounds the average to two decimal places.
func (b VoteBreakdown) DisplayAverage() float64 {
	return math.Round(b.Average*100) / 100
}

func validScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// Breakdown groups votes by song and computes the mean and distribution of
// each. Songs appear in the order they are first seen in votes. Every row is
// counted, duplicates included. The first out-of-range score aborts with a
// *ScoreError.
func Breakdown(votes []Vote) ([]VoteBreakdown, error) {
	results := []VoteBreakdown{}
	index := make(map[string]int)
	sums := []int{}

	for _, v := range votes {
		if !validScore(v.Score) {
			return nil, &ScoreError{SongID: v.SongID, UserID: v.UserID, Score: v.Score}
		}

		i, ok := index[v.SongID]
		if !ok {
			i = len(results)
			index[v.SongID] = i
			results = append(results, VoteBreakdown{SongID: v.SongID, Counts: NewScoreCounts()})
			sums = append(sums, 0)
		}

		results[i].Counts[v.Score]++
		results[i].Total++
		sums[i] += v.Score
	}

	for i := range results {
		results[i].Average = float64(sums[i]) / float64(results[i].Total)
	}

	return results, nil
}

// SplitValid partitions votes by whether their score is in range, so a
// caller can log and skip bad rows instead of failing.
func SplitValid(votes []Vote) (valid, invalid []Vote) {
	for _, v := range votes {
		if validScore(v.Score) {
			valid = append(valid, v)
		} else {
			invalid = append(invalid, v)
		}
	}
	return valid, invalid
}

// UserSet is a set of user IDs.
type UserSet map[string]struct{}

// NewUserSet builds a set holding ids.
func NewUserSet(ids ...string) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member.
func (s UserSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s UserSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// OutstandingVoters returns the users who signed up but have not voted.
func OutstandingVoters(signedUp, voted UserSet) UserSet {
	out := make(UserSet)
	for id := range signedUp {
		if !voted.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Voters collects the distinct users that cast at least one vote.
func Voters(votes []Vote) UserSet {
	s := make(UserSet)
	for _, v := range votes {
		s[v.UserID] = struct{}{}
	}
	return s
}
