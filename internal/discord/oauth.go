package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	authorizeURL    = "https://discord.com/api/oauth2/authorize"
	tokenURL        = "https://discord.com/api/oauth2/token"
	oauthScopes     = "identify guilds"
	httpCallTimeout = 10 * time.Second
)

// TokenResult holds the outcome of an OAuth code exchange plus the identity
// fetch for the new token.
type TokenResult struct {
	AccessToken   string
	RefreshToken  string
	ExpiresIn     int
	DiscordID     string
	Username      string
	Discriminator string
	Avatar        string
}

// OAuthClient handles the Discord OAuth token exchange and refresh.
type OAuthClient interface {
	ExchangeCode(ctx context.Context, code string) (*TokenResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResult, error)
}

// oauthHTTPClient is the production implementation against Discord's OAuth
// and REST endpoints.
type oauthHTTPClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
}

func NewOAuthClient(clientID, clientSecret, redirectURI string) OAuthClient {
	return &oauthHTTPClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
	}
}

// AuthorizeURL builds the login redirect target for the given CSRF state.
func AuthorizeURL(clientID, redirectURI, state string) string {
	return fmt.Sprintf(
		"%s?client_id=%s&redirect_uri=%s&response_type=code&scope=%s&state=%s",
		authorizeURL,
		url.QueryEscape(clientID),
		url.QueryEscape(redirectURI),
		url.QueryEscape(oauthScopes),
		url.QueryEscape(state),
	)
}

func (c *oauthHTTPClient) ExchangeCode(ctx context.Context, code string) (*TokenResult, error) {
	data := url.Values{}
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", c.redirectURI)

	result, err := c.requestToken(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	if err := fetchIdentity(ctx, result); err != nil {
		return nil, fmt.Errorf("identity fetch failed: %w", err)
	}
	return result, nil
}

func (c *oauthHTTPClient) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	data := url.Values{}
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	result, err := c.requestToken(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return result, nil
}

func (c *oauthHTTPClient) requestToken(ctx context.Context, data url.Values) (*TokenResult, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: httpCallTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord returned status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &TokenResult{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresIn:    tokenResp.ExpiresIn,
	}, nil
}

// fetchIdentity fills the identity fields of result using its access token.
func fetchIdentity(ctx context.Context, result *TokenResult) error {
	session, err := discordgo.New("Bearer " + result.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}

	user, err := session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to fetch identity: %w", err)
	}

	result.DiscordID = user.ID
	result.Username = user.Username
	result.Discriminator = user.Discriminator
	result.Avatar = user.Avatar
	return nil
}
