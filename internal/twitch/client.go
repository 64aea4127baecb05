package twitch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/nicklaw5/helix/v2"
)

// maxLoginsPerRequest is the Helix cap on user_login parameters per call.
const maxLoginsPerRequest = 100

// ErrRateLimited signals that Helix rejected a call with HTTP 429.
var ErrRateLimited = errors.New("helix rate limit exceeded")

// StreamStatus is the live state of a single streamer.
type StreamStatus struct {
	Live        bool
	ViewerCount int
	Game        string
	Title       string
}

// StatusClient reports live status for a batch of streamer logins. The
// result map is keyed by lowercase login; logins absent from the map are
// offline.
type StatusClient interface {
	StreamsByLogin(ctx context.Context, logins []string) (map[string]StreamStatus, error)
}

type HelixClient struct {
	mu       sync.Mutex
	client   *helix.Client
	hasToken bool
}

var _ StatusClient = (*HelixClient)(nil)

func NewHelixClient(clientID, clientSecret string) (*HelixClient, error) {
	client, err := helix.NewClient(&helix.Options{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create helix client: %w", err)
	}
	return &HelixClient{client: client}, nil
}

// StreamsByLogin fetches live streams for the given logins in chunks of at
// most maxLoginsPerRequest. Offline streamers simply do not appear in the
// Helix response, so they are left out of the result map.
func (hc *HelixClient) StreamsByLogin(ctx context.Context, logins []string) (map[string]StreamStatus, error) {
	if err := hc.ensureAppToken(); err != nil {
		return nil, err
	}

	statuses := make(map[string]StreamStatus, len(logins))
	for start := 0; start < len(logins); start += maxLoginsPerRequest {
		end := min(start+maxLoginsPerRequest, len(logins))

		resp, err := hc.client.GetStreams(&helix.StreamsParams{
			UserLogins: logins[start:end],
			First:      maxLoginsPerRequest,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch streams: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusUnauthorized:
			// The app token expired or was revoked. Drop it so the next
			// cycle requests a fresh one.
			hc.invalidateAppToken()
			return nil, fmt.Errorf("helix rejected app token: %s", resp.ErrorMessage)
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, resp.ErrorMessage)
		default:
			return nil, fmt.Errorf("helix returned status %d: %s", resp.StatusCode, resp.ErrorMessage)
		}

		for _, stream := range resp.Data.Streams {
			statuses[strings.ToLower(stream.UserLogin)] = StreamStatus{
				Live:        stream.Type == "live",
				ViewerCount: stream.ViewerCount,
				Game:        stream.GameName,
				Title:       stream.Title,
			}
		}
	}
	return statuses, nil
}

// ensureAppToken requests a client-credentials token on first use and keeps
// it on the underlying client for subsequent calls.
func (hc *HelixClient) ensureAppToken() error {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if hc.hasToken {
		return nil
	}

	resp, err := hc.client.RequestAppAccessToken(nil)
	if err != nil {
		return fmt.Errorf("failed to request app access token: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("app access token request returned status %d: %s", resp.StatusCode, resp.ErrorMessage)
	}

	hc.client.SetAppAccessToken(resp.Data.AccessToken)
	hc.hasToken = true
	return nil
}

func (hc *HelixClient) invalidateAppToken() {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.hasToken = false
	hc.client.SetAppAccessToken("")
}
