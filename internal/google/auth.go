// Package google builds the OAuth2 client shared by the Drive source and the
// YouTube sink.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/timmy/dailyreel/internal/config"
	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	youtubev3 "google.golang.org/api/youtube/v3"
)

// Scopes requested for the refresh token.
var Scopes = []string{
	drivev3.DriveScope,
	youtubev3.YoutubeUploadScope,
}

// ErrMissingCredentials is returned when the OAuth client is not configured.
var ErrMissingCredentials = errors.New("google oauth client is not configured")

// Client holds the authorized HTTP client used by every Google API service.
type Client struct {
	http *http.Client
}

// OAuthConfig returns the OAuth2 client configuration for cfg.
func OAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauthgoogle.Endpoint,
		Scopes:       Scopes,
	}
}

// NewClient builds a client that refreshes access tokens from the
// configured refresh token. The token source is reused across runs.
// Parameters:
//   - ctx: context the token source uses for refresh requests.
//   - cfg: OAuth client id, secret and refresh token.
// Returns:
//   - *Client: authorized client.
//   - error: ErrMissingCredentials if any credential is empty.
func NewClient(ctx context.Context, cfg config.GoogleConfig) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, ErrMissingCredentials
	}

	ts := OAuthConfig(cfg).TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	return &Client{http: oauth2.NewClient(ctx, oauth2.ReuseTokenSource(nil, ts))}, nil
}

// Drive creates a Drive v3 service.
func (c *Client) Drive(ctx context.Context) (*drivev3.Service, error) {
	svc, err := drivev3.NewService(ctx, option.WithHTTPClient(c.http))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}

// YouTube creates a YouTube Data v3 service.
func (c *Client) YouTube(ctx context.Context) (*youtubev3.Service, error) {
	svc, err := youtubev3.NewService(ctx, option.WithHTTPClient(c.http))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return svc, nil
}
