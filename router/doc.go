// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the cover rounds API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Projects:

	POST /projects                   - Create project (returns admin key)
	POST /projects/{id}/participants - Claim username (returns user token)
	POST /projects/{id}/rounds       - Create round (X-Admin-Key)

Rounds (X-User-Token for writes, optional for reads):

	GET  /rounds/{id}             - Round snapshot
	POST /rounds/{id}/signups     - Suggest or update a song
	POST /rounds/{id}/votes       - Score the proposed songs
	POST /rounds/{id}/submissions - Submit a cover
	POST /rounds/{id}/reflections - Write a reflection
	GET  /rounds/{id}/reflections - Public reflections plus your own

Results:

	GET /rounds/{id}/results            - Ranked results (sealed until covering)
	GET /rounds/{id}/outstanding-voters - Who still has to vote (X-Admin-Key)
*/
package router
