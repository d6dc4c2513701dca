// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package round

import (
	"fmt"
	"time"
)

// Facts is everything storage knows about one round.
type Facts struct {
	RoundID       string
	Dates         Dates
	VotingEnabled bool
	Votes         []Vote
	Signups       []Signup
	Submissions   []Submission
}

// Viewer identifies the user a snapshot is built for.
type Viewer struct {
	UserID               string
	HasInitialReflection bool
}

// Snapshot is the read model of a round at one instant. Participation and
// Reflection are nil when no viewer was given; that is different from a
// viewer who has done nothing. OutstandingVoters is nil only when the round
// has no voting; an empty list means everyone has voted.
type Snapshot struct {
	RoundID           string            `json:"round_id"`
	Phase             Phase             `json:"phase"`
	VotingEnabled     bool              `json:"voting_enabled"`
	Dates             Dates             `json:"dates"`
	Windows           map[Phase]Window  `json:"windows"`
	Breakdown         []VoteBreakdown   `json:"breakdown"`
	OutstandingVoters *[]string         `json:"outstanding_voters,omitempty"`
	SignupCount       int               `json:"signup_count"`
	SubmissionCount   int               `json:"submission_count"`
	Participation     *Participation    `json:"participation,omitempty"`
	Reflection        *ReflectionWindow `json:"reflection,omitempty"`
	ComputedAt        time.Time         `json:"computed_at"`
}

// Assemble composes the phase clock, vote aggregator, reflection scheduler
// and participation tracker into one snapshot.
func Assemble(f Facts, now time.Time, viewer *Viewer) (Snapshot, error) {
	breakdown, err := Breakdown(f.Votes)
	if err != nil {
		return Snapshot{}, fmt.Errorf("round %s: %w", f.RoundID, err)
	}

	snap := Snapshot{
		RoundID:         f.RoundID,
		Phase:           CurrentPhase(f.Dates, f.VotingEnabled, now),
		VotingEnabled:   f.VotingEnabled,
		Dates:           f.Dates,
		Windows:         PhaseWindows(f.Dates, f.VotingEnabled),
		Breakdown:       breakdown,
		SignupCount:     len(f.Signups),
		SubmissionCount: len(f.Submissions),
		ComputedAt:      now,
	}

	if f.VotingEnabled {
		outstanding := OutstandingVoters(SignedUp(f.Signups), Voters(f.Votes)).Sorted()
		snap.OutstandingVoters = &outstanding
	}

	if viewer != nil {
		p := TrackParticipation(viewer.UserID, f.RoundID, f.Signups, f.Submissions, f.Votes)
		r := ScheduleReflection(f.Dates, viewer.HasInitialReflection, now)
		snap.Participation = &p
		snap.Reflection = &r
	}

	return snap, nil
}

// SignedUp collects the distinct users with a signup.
func SignedUp(signups []Signup) UserSet {
	s := make(UserSet)
	for _, su := range signups {
		s[su.UserID] = struct{}{}
	}
	return s
}
