// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package round

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackParticipation(t *testing.T) {
	signups := []Signup{{RoundID: "r1", UserID: "u1", SongID: "s1"}, {RoundID: "r2", UserID: "u2", SongID: "s2"}}
	submissions := []Submission{{RoundID: "r1", UserID: "u2"}}
	votes := []Vote{vote("s1", "u2", 4)}

	p := TrackParticipation("u1", "r1", signups, submissions, votes)
	assert.Equal(t, Participation{HasSignedUp: true}, p)
	assert.Equal(t, SignupActionUpdate, p.SignupAction())

	// u2 signed up for a different round only
	p = TrackParticipation("u2", "r1", signups, submissions, votes)
	assert.Equal(t, Participation{HasSubmitted: true, HasVoted: true}, p)
	assert.Equal(t, SignupActionSuggest, p.SignupAction())

	// Matching user but wrong round
	p = TrackParticipation("u2", "r3", signups, submissions, votes)
	assert.Equal(t, Participation{}, p)
}

func TestTrackParticipation_Empty(t *testing.T) {
	assert.Equal(t, Participation{}, TrackParticipation("u1", "r1", nil, nil, nil))
	assert.Equal(t, Participation{}, TrackParticipation("u1", "r1", []Signup{}, []Submission{}, []Vote{}))
}

func testFacts() Facts {
	return Facts{
		RoundID:       "r1",
		Dates:         testDates(),
		VotingEnabled: true,
		Signups: []Signup{
			{RoundID: "r1", UserID: "u1", SongID: "s1"},
			{RoundID: "r1", UserID: "u2", SongID: "s2"},
			{RoundID: "r1", UserID: "u3", SongID: "s3"},
		},
		Votes: []Vote{
			vote("s1", "u2", 5),
			vote("s3", "u2", 2),
		},
		Submissions: []Submission{{RoundID: "r1", UserID: "u1"}},
	}
}

func TestAssemble_WithoutViewer(t *testing.T) {
	snap, err := Assemble(testFacts(), day(9), nil)
	require.NoError(t, err)

	assert.Equal(t, "r1", snap.RoundID)
	assert.Equal(t, PhaseVoting, snap.Phase)
	assert.Len(t, snap.Windows, 4)
	assert.Len(t, snap.Breakdown, 2)
	require.NotNil(t, snap.OutstandingVoters)
	assert.Equal(t, []string{"u1", "u3"}, *snap.OutstandingVoters)
	assert.Equal(t, 3, snap.SignupCount)
	assert.Equal(t, 1, snap.SubmissionCount)
	assert.Nil(t, snap.Participation)
	assert.Nil(t, snap.Reflection)

	// Absent viewer fields are left out of the JSON entirely
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "participation")
	assert.NotContains(t, fields, "reflection")
	assert.JSONEq(t, `["u1","u3"]`, string(fields["outstanding_voters"]))
}

func TestAssemble_EveryoneVoted(t *testing.T) {
	f := testFacts()
	f.Votes = append(f.Votes, vote("s2", "u1", 4), vote("s2", "u3", 3))

	snap, err := Assemble(f, day(9), nil)
	require.NoError(t, err)
	require.NotNil(t, snap.OutstandingVoters)
	assert.Empty(t, *snap.OutstandingVoters)

	// An empty list stays in the JSON so it reads differently from no voting
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.Contains(t, fields, "outstanding_voters")
	assert.JSONEq(t, `[]`, string(fields["outstanding_voters"]))
}

func TestAssemble_WithViewer(t *testing.T) {
	snap, err := Assemble(testFacts(), day(9), &Viewer{UserID: "u2"})
	require.NoError(t, err)

	require.NotNil(t, snap.Participation)
	assert.Equal(t, Participation{HasSignedUp: true, HasVoted: true}, *snap.Participation)
	require.NotNil(t, snap.Reflection)
	assert.True(t, snap.Reflection.CanCreateInitial)

	// A viewer who has done nothing gets an all-false record, not nil
	snap, err = Assemble(testFacts(), day(9), &Viewer{UserID: "nobody"})
	require.NoError(t, err)
	require.NotNil(t, snap.Participation)
	assert.Equal(t, Participation{}, *snap.Participation)
}

func TestAssemble_VotingDisabled(t *testing.T) {
	f := testFacts()
	f.VotingEnabled = false
	f.Votes = nil

	snap, err := Assemble(f, day(9), &Viewer{UserID: "u1", HasInitialReflection: true})
	require.NoError(t, err)

	assert.Equal(t, PhaseSignups, snap.Phase)
	assert.Len(t, snap.Windows, 3)
	assert.Empty(t, snap.Breakdown)
	assert.Nil(t, snap.OutstandingVoters)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "outstanding_voters")

	// Reflections still follow the four-phase model
	assert.Equal(t, PhaseVoting, snap.Reflection.CurrentPhase)
	assert.False(t, snap.Reflection.CanCreateInitial)
}

func TestAssemble_BadScore(t *testing.T) {
	f := testFacts()
	f.Votes = append(f.Votes, vote("s1", "u3", 11))

	_, err := Assemble(f, day(9), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScoreOutOfRange))
}

func TestAssemble_Idempotent(t *testing.T) {
	f := testFacts()
	viewer := &Viewer{UserID: "u1"}

	first, err := Assemble(f, day(20), viewer)
	require.NoError(t, err)
	second, err := Assemble(f, day(20), viewer)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssemble_EmptyRound(t *testing.T) {
	snap, err := Assemble(Facts{RoundID: "r9", Dates: testDates(), VotingEnabled: true}, day(1), nil)
	require.NoError(t, err)
	assert.Empty(t, snap.Breakdown)
	require.NotNil(t, snap.OutstandingVoters)
	assert.Empty(t, *snap.OutstandingVoters)
	assert.Zero(t, snap.SignupCount)
}
