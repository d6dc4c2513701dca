// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and stored record types for the API.

# Request Types

  - CreateProjectRequest: name, voting_enabled (defaults to true)
  - ClaimUsernameRequest: username
  - CreateRoundRequest: title and the five round dates
  - SignupRequest: song_title, artist, youtube_link, additional_comments
  - SubmitVotesRequest: scores (map of song_id to 1-5)
  - SubmitCoverRequest: audio_url, lyrics, additional_comments
  - CreateReflectionRequest: kind, title, markdown, is_public

# Response Types

  - CreateProjectResponse: project_id, admin_key
  - ClaimUsernameResponse: user_id, user_token
  - CreateRoundResponse, SignupResponse, SubmitVotesResponse,
    SubmitCoverResponse, CreateReflectionResponse
  - ResultsResponse: ranked SongResult rows
  - OutstandingVotersResponse
  - RoundView: round, project, signups and the engine snapshot
  - ErrorResponse: error, message

# Stored Records

  - Project: a tenant; VotingEnabled controls the phase sequence
  - Participant: a username claimed within a project
  - Round: title and round.Dates
  - Signup: a song proposal; its ID doubles as the song ID for votes
  - Submission: a cover recording link
  - Reflection: an initial or check-in write-up

Phase, vote tallies and participation are not stored; package round
derives them on every read.
*/
package models
