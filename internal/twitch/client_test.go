package twitch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nicklaw5/helix/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHelixClient points a HelixClient at a local test server with the
// app token already in place, so no call hits id.twitch.tv.
func newTestHelixClient(t *testing.T, handler http.HandlerFunc) *HelixClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := helix.NewClient(&helix.Options{
		ClientID:       "test-client-id",
		ClientSecret:   "test-client-secret",
		AppAccessToken: "test-app-token",
		APIBaseURL:     srv.URL,
	})
	require.NoError(t, err)

	return &HelixClient{client: client, hasToken: true}
}

func TestStreamsByLogin_KeysResultByLowercaseLogin(t *testing.T) {
	hc := newTestHelixClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"alicestreams"}, r.URL.Query()["user_login"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"user_login":"AliceStreams","type":"live","viewer_count":42,"game_name":"FFXIV","title":"raid night"}]}`))
	})

	statuses, err := hc.StreamsByLogin(context.Background(), []string{"alicestreams"})
	require.NoError(t, err)

	require.Contains(t, statuses, "alicestreams")
	status := statuses["alicestreams"]
	assert.True(t, status.Live)
	assert.Equal(t, 42, status.ViewerCount)
	assert.Equal(t, "FFXIV", status.Game)
	assert.Equal(t, "raid night", status.Title)
}

func TestStreamsByLogin_OmitsOfflineStreamers(t *testing.T) {
	hc := newTestHelixClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	})

	statuses, err := hc.StreamsByLogin(context.Background(), []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestStreamsByLogin_ChunksLargeBatches(t *testing.T) {
	var chunkSizes []int
	hc := newTestHelixClient(t, func(w http.ResponseWriter, r *http.Request) {
		chunkSizes = append(chunkSizes, len(r.URL.Query()["user_login"]))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	})

	logins := make([]string, 150)
	for i := range logins {
		logins[i] = "streamer" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}

	_, err := hc.StreamsByLogin(context.Background(), logins)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 50}, chunkSizes)
}

func TestStreamsByLogin_RateLimited(t *testing.T) {
	hc := newTestHelixClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Too Many Requests","status":429,"message":"rate limit exceeded"}`))
	})

	_, err := hc.StreamsByLogin(context.Background(), []string{"alice"})
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestStreamsByLogin_UnauthorizedInvalidatesToken(t *testing.T) {
	hc := newTestHelixClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Unauthorized","status":401,"message":"invalid token"}`))
	})

	_, err := hc.StreamsByLogin(context.Background(), []string{"alice"})
	require.Error(t, err)
	assert.False(t, hc.hasToken, "expired app token should be dropped")
}
