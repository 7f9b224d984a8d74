package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
)

// Endpoint is Spotify's OAuth 2.0 endpoint pair.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

// Scopes covers every read the extractor performs.
var Scopes = []string{
	"user-read-private",
	"user-library-read",
	"user-read-recently-played",
	"playlist-read-private",
	"playlist-read-collaborative",
}

// OAuthConfig returns the authorization-code flow configuration for the
// given app credentials.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
		Endpoint:     Endpoint,
	}
}

// LoadToken reads a token previously written by SaveToken.
func LoadToken(filename string) (*oauth2.Token, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(bs, &tok); err != nil {
		return nil, fmt.Errorf("error parsing token file '%s': %w", filename, err)
	}
	return &tok, nil
}

// SaveToken writes tok to filename, readable only by the current user.
func SaveToken(filename string, tok *oauth2.Token) error {
	bs, err := json.MarshalIndent(tok, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, bs, 0600); err != nil {
		return fmt.Errorf("error writing token file '%s': %w", filename, err)
	}
	return nil
}

// TokenClient returns an HTTP client that attaches the token cached in
// filename to every request, refreshing it as needed. Refreshed tokens are
// written back to filename so later runs skip the refresh round trip.
func TokenClient(ctx context.Context, cfg *oauth2.Config, filename string) (*http.Client, error) {
	tok, err := LoadToken(filename)
	if err != nil {
		return nil, fmt.Errorf("no usable token (run 'spotsnap auth' first): %w", err)
	}
	src := &savingSource{
		src:      cfg.TokenSource(ctx, tok),
		filename: filename,
		last:     tok.AccessToken,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// savingSource persists tokens produced by a refresh.
type savingSource struct {
	src      oauth2.TokenSource
	filename string
	last     string
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := SaveToken(s.filename, tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}
