// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the cover rounds API.

# Handler Types

Each handler is a struct with database, config and clock dependencies:

  - ProjectHandler: Project creation and username claims
  - RoundHandler: Round creation and the round snapshot
  - SignupHandler: Song proposals
  - VotingHandler: Score submission
  - SubmissionHandler: Cover recordings
  - ReflectionHandler: Initial and check-in reflections
  - ResultsHandler: Ranked results and outstanding voters

Handlers are created via constructor functions that accept *sql.DB and Config:

	roundHandler := handlers.NewRoundHandler(db, cfg)

The clock defaults to time.Now. Every gate reads the current phase from the
round package with that instant; no phase is ever stored.

# Round Lifecycle

A round moves through signups, voting, covering and celebration, with
voting skipped when the project disables it:

	POST /projects/{id}/rounds     → CreateRound (admin)
	POST /rounds/{id}/signups      → SubmitSignup (signups only)
	POST /rounds/{id}/votes        → SubmitVotes (voting only)
	POST /rounds/{id}/submissions  → SubmitCover (covering only)
	POST /rounds/{id}/reflections  → CreateReflection (reflection schedule)

Out-of-phase writes get 409 Conflict.

# Credentials

Admin operations require the X-Admin-Key header. Participant operations
require X-User-Token, which must belong to the round's project. Read
endpoints accept the token optionally to personalize the response.

# Results

Results stay sealed (403) until covering begins. RankSongs joins the vote
breakdown with the proposals and orders them by average, then vote count.
*/
package handlers
