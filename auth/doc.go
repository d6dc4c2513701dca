// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Each project gets an HMAC-SHA256 admin key:

	adminKey := auth.GenerateAdminKey(projectID, salt)
	err := auth.ValidateAdminKey(projectID, adminKey, salt)

The key is URL-safe base64 without padding and deterministic, so it is never
stored. Admin keys gate round creation and the outstanding-voter list.

# User Tokens

Participants get a random 24-byte token when they claim a username:

	token, err := auth.GenerateUserToken()

The token is sent as X-User-Token on every participant request.
CheckUserToken rejects malformed tokens before any database lookup.

# IDs

Records use random UUIDs:

	id := auth.NewID()

# IP Hashing

Votes store a salted hash of the client IP:

	hash := auth.HashIP(ipAddress, salt)
*/
package auth
