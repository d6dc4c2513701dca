package models

import (
	"time"

	"github.com/danielhkuo/cover-rounds/round"
)

// Request types

type CreateProjectRequest struct {
	Name          string `json:"name"`
	VotingEnabled *bool  `json:"voting_enabled"`
}

type ClaimUsernameRequest struct {
	Username string `json:"username"`
}

type CreateRoundRequest struct {
	Title          string    `json:"title"`
	SignupOpens    time.Time `json:"signup_opens"`
	VotingOpens    time.Time `json:"voting_opens"`
	CoveringBegins time.Time `json:"covering_begins"`
	CoversDue      time.Time `json:"covers_due"`
	ListeningParty time.Time `json:"listening_party"`
}

// Dates converts the request into the engine's date set.
func (r CreateRoundRequest) Dates() round.Dates {
	return round.Dates{
		SignupOpens:    r.SignupOpens,
		VotingOpens:    r.VotingOpens,
		CoveringBegins: r.CoveringBegins,
		CoversDue:      r.CoversDue,
		ListeningParty: r.ListeningParty,
	}
}

type SignupRequest struct {
	SongTitle          string `json:"song_title"`
	Artist             string `json:"artist"`
	YoutubeLink        string `json:"youtube_link"`
	AdditionalComments string `json:"additional_comments"`
}

// song_id -> score (1 to 5)
type SubmitVotesRequest struct {
	Scores map[string]int `json:"scores"`
}

type SubmitCoverRequest struct {
	AudioURL           string `json:"audio_url"`
	Lyrics             string `json:"lyrics"`
	AdditionalComments string `json:"additional_comments"`
}

type CreateReflectionRequest struct {
	Kind     round.ReflectionKind `json:"kind"`
	Title    string               `json:"title"`
	Markdown string               `json:"markdown"`
	IsPublic bool                 `json:"is_public"`
}

// Response types

type CreateProjectResponse struct {
	ProjectID string `json:"project_id"`
	AdminKey  string `json:"admin_key"`
}

type ClaimUsernameResponse struct {
	UserID    string `json:"user_id"`
	UserToken string `json:"user_token"`
}

type CreateRoundResponse struct {
	RoundID string      `json:"round_id"`
	Phase   round.Phase `json:"phase"`
}

type SignupResponse struct {
	SignupID string `json:"signup_id"`
	Message  string `json:"message"`
}

type SubmitVotesResponse struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

type SubmitCoverResponse struct {
	SubmissionID string `json:"submission_id"`
}

type CreateReflectionResponse struct {
	ReflectionID string `json:"reflection_id"`
}

type ResultsResponse struct {
	RoundID   string       `json:"round_id"`
	Phase     round.Phase  `json:"phase"`
	Songs     []SongResult `json:"songs"`
	VoteCount int          `json:"vote_count"`
}

// SongResult pairs a tally with the proposal it belongs to.
type SongResult struct {
	Rank      int               `json:"rank"`
	SongID    string            `json:"song_id"`
	SongTitle string            `json:"song_title"`
	Artist    string            `json:"artist"`
	Average   float64           `json:"average"`
	Counts    round.ScoreCounts `json:"counts"`
	Total     int               `json:"total"`
}

type OutstandingVotersResponse struct {
	RoundID string   `json:"round_id"`
	Users   []string `json:"users"`
}

// Domain types

type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	VotingEnabled bool      `json:"voting_enabled"`
	CreatedAt     time.Time `json:"created_at"`
}

type Participant struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Username  string    `json:"username"`
	UserToken string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

type Round struct {
	ID        string      `json:"id"`
	ProjectID string      `json:"project_id"`
	Title     string      `json:"title"`
	Dates     round.Dates `json:"dates"`
	CreatedAt time.Time   `json:"created_at"`
}

type Signup struct {
	ID                 string    `json:"id"`
	RoundID            string    `json:"round_id"`
	UserID             string    `json:"user_id"`
	SongTitle          string    `json:"song_title"`
	Artist             string    `json:"artist"`
	YoutubeLink        string    `json:"youtube_link"`
	AdditionalComments string    `json:"additional_comments"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Submission struct {
	ID                 string    `json:"id"`
	RoundID            string    `json:"round_id"`
	UserID             string    `json:"user_id"`
	AudioURL           string    `json:"audio_url"`
	Lyrics             string    `json:"lyrics"`
	AdditionalComments string    `json:"additional_comments"`
	CreatedAt          time.Time `json:"created_at"`
}

type Reflection struct {
	ID        string               `json:"id"`
	RoundID   string               `json:"round_id"`
	UserID    string               `json:"user_id"`
	Kind      round.ReflectionKind `json:"kind"`
	Title     string               `json:"title"`
	Markdown  string               `json:"markdown"`
	IsPublic  bool                 `json:"is_public"`
	CreatedAt time.Time            `json:"created_at"`
}

// RoundView is the GET /rounds/{id} payload.
type RoundView struct {
	Round    Round          `json:"round"`
	Project  Project        `json:"project"`
	Signups  []Signup       `json:"signups"`
	Snapshot round.Snapshot `json:"snapshot"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
