// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/danielhkuo/cover-rounds/cliparse"
	"github.com/danielhkuo/cover-rounds/middleware"
	"github.com/danielhkuo/cover-rounds/testutil"
)

// roundFixture is a project with one round on the standard test dates
type roundFixture struct {
	conn      *sql.DB
	cfg       cliparse.Config
	projectID string
	adminKey  string
	roundID   string
}

func newRoundFixture(t *testing.T, votingEnabled bool) *roundFixture {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	cfg := testutil.GetTestConfig()
	projectID, adminKey := testutil.CreateTestProject(t, conn, cfg, votingEnabled)
	roundID := testutil.CreateTestRound(t, conn, projectID, testutil.RoundDates())

	return &roundFixture{
		conn:      conn,
		cfg:       cfg,
		projectID: projectID,
		adminKey:  adminKey,
		roundID:   roundID,
	}
}

func (f *roundFixture) participant(t *testing.T, username string) (userID, token string) {
	t.Helper()
	return testutil.CreateTestParticipant(t, f.conn, f.projectID, username)
}

// roundRequest builds a request against /rounds/{id}/... with the path value
// set the way the router would
func roundRequest(method, roundID, suffix string, body interface{}, token string) *http.Request {
	headers := map[string]string{}
	if token != "" {
		headers[middleware.HeaderUserToken] = token
	}
	req := testutil.MakeRequest(method, "/rounds/"+roundID+suffix, body, headers)
	req.SetPathValue("id", roundID)
	return req
}

// adminRequest is roundRequest with X-Admin-Key instead of a user token
func adminRequest(method, path, id, adminKey string, body interface{}) *http.Request {
	headers := map[string]string{}
	if adminKey != "" {
		headers[middleware.HeaderAdminKey] = adminKey
	}
	req := testutil.MakeRequest(method, path, body, headers)
	req.SetPathValue("id", id)
	return req
}
