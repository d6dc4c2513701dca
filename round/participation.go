// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package round

// Signup is the engine's view of a song proposal: who proposed it, in
// which round. SongID is the proposal's own ID; votes refer to it.
type Signup struct {
	RoundID string `json:"round_id"`
	UserID  string `json:"user_id"`
	SongID  string `json:"song_id"`
}

// Submission is the engine's view of a cover recording.
type Submission struct {
	RoundID string `json:"round_id"`
	UserID  string `json:"user_id"`
}

// Participation is a user's completion state in one round. Every gate that
// depends on "has this person done X yet" reads it from here.
type Participation struct {
	HasSignedUp  bool `json:"has_signed_up"`
	HasSubmitted bool `json:"has_submitted"`
	HasVoted     bool `json:"has_voted"`
}

// Signup button actions
const (
	SignupActionSuggest = "suggest"
	SignupActionUpdate  = "update"
)

// SignupAction is the label for the signup button: update an existing
// proposal or suggest a new one.
func (p Participation) SignupAction() string {
	if p.HasSignedUp {
		return SignupActionUpdate
	}
	return SignupActionSuggest
}

// TrackParticipation checks each collection for at least one row matching
// both userID and roundID.
func TrackParticipation(userID, roundID string, signups []Signup, submissions []Submission, votes []Vote) Participation {
	var p Participation
	for _, s := range signups {
		if s.UserID == userID && s.RoundID == roundID {
			p.HasSignedUp = true
			break
		}
	}
	for _, s := range submissions {
		if s.UserID == userID && s.RoundID == roundID {
			p.HasSubmitted = true
			break
		}
	}
	for _, v := range votes {
		if v.UserID == userID && v.RoundID == roundID {
			p.HasVoted = true
			break
		}
	}
	return p
}
