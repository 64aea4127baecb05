package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/BubbleXIV/dashboard-new/internal/app"
	"github.com/BubbleXIV/dashboard-new/internal/config"
	"github.com/BubbleXIV/dashboard-new/internal/crypto"
	"github.com/BubbleXIV/dashboard-new/internal/discord"
	"github.com/BubbleXIV/dashboard-new/internal/domain"
	"github.com/BubbleXIV/dashboard-new/internal/filestore"
	"github.com/BubbleXIV/dashboard-new/internal/store"
)

type stubOAuthClient struct {
	exchangeResult *discord.TokenResult
	exchangeErr    error
	refreshResult  *discord.TokenResult
	refreshErr     error
}

func (s *stubOAuthClient) ExchangeCode(_ context.Context, _ string) (*discord.TokenResult, error) {
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return s.exchangeResult, nil
}

func (s *stubOAuthClient) Refresh(_ context.Context, _ string) (*discord.TokenResult, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return s.refreshResult, nil
}

type stubRosterClient struct {
	entries  []domain.RosterEntry
	err      error
	gotToken string
}

func (s *stubRosterClient) FetchRoster(_ context.Context, accessToken string) ([]domain.RosterEntry, error) {
	s.gotToken = accessToken
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

type testServer struct {
	srv    *Server
	app    *app.Service
	clock  *clockwork.FakeClock
	oauth  *stubOAuthClient
	roster *stubRosterClient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	files, err := filestore.New(t.TempDir(), clock)
	require.NoError(t, err)

	stores := store.New(&store.SequenceGenerator{Prefix: "id"}, clock)
	appSvc := app.NewService(stores, files, crypto.NoopService{}, clock)

	cfg := &config.Config{
		AppEnv:              "test",
		Port:                "8080",
		DiscordClientID:     "client-id",
		DiscordClientSecret: "client-secret",
		DiscordRedirectURI:  "http://localhost:8080/auth/callback",
		SessionSecret:       "test-session-secret",
	}

	oauth := &stubOAuthClient{}
	roster := &stubRosterClient{}
	srv := NewServer(cfg, appSvc, oauth, roster, clock)

	return &testServer{srv: srv, app: appSvc, clock: clock, oauth: oauth, roster: roster}
}

// seedUser creates a user with a token valid for one hour.
func (ts *testServer) seedUser(t *testing.T) domain.User {
	t.Helper()

	expiry := ts.clock.Now().UTC().Add(time.Hour)
	user, err := ts.app.UpsertUser(context.Background(), "discord-1", "alice", "0", "avatar-hash", "access-token", "refresh-token", expiry)
	require.NoError(t, err)
	return user
}

// seedGuild reconciles a single administered guild into the store.
func (ts *testServer) seedGuild(t *testing.T, discordID, name string) domain.Guild {
	t.Helper()

	guilds, err := ts.app.SyncGuilds(context.Background(), "discord-1", []domain.RosterEntry{
		{GuildID: discordID, Name: name, Owner: true, MemberCount: 10},
	})
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	return guilds[0]
}

// newContext builds an echo context for a direct handler call.
func (ts *testServer) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return ts.srv.echo.NewContext(req, rec), rec
}

// authedContext is newContext with the authenticated user pre-set, the way
// requireAuth would leave it.
func (ts *testServer) authedContext(userID, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := ts.newContext(method, target, body)
	c.Set("userID", userID)
	return c, rec
}
