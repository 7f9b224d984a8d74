package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spotsnap/spotsnap/config"
	"github.com/spotsnap/spotsnap/spotify"
	"github.com/spotsnap/spotsnap/subcmd"
)

// auth runs the one-time authorization-code flow: it listens on the
// configured redirect url, sends the user to spotify's consent page, and
// caches the resulting token for 'spotsnap extract' to use.
func auth(ctx context.Context, args []string) error {
	sc := subcmd.New("auth", "authorize access to the account's listening data and cache the token\nrequires SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	redirect, err := url.Parse(cfg.RedirectURL)
	if err != nil {
		return fmt.Errorf("bad redirect url '%s': %w", cfg.RedirectURL, err)
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return err
	}
	state := hex.EncodeToString(stateBytes)

	codes := make(chan string, 1)
	errs := make(chan error, 1)
	srv := &http.Server{
		Addr: redirect.Host,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != redirect.Path {
				http.NotFound(w, r)
				return
			}
			if r.FormValue("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				return
			}
			if errMsg := r.FormValue("error"); errMsg != "" {
				errs <- fmt.Errorf("authorization refused: %s", errMsg)
				http.Error(w, errMsg, http.StatusForbidden)
				return
			}
			codes <- r.FormValue("code")
			fmt.Fprintln(w, "all set, you can close this tab")
		}),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()
	defer srv.Shutdown(context.Background())

	fmt.Printf("open this url in your browser:\n\n  %s\n\n", spotify.OAuthConfig(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL).AuthCodeURL(state))

	select {
	case <-ctx.Done():
		return ctx.Err()

	case err := <-errs:
		return err

	case code := <-codes:
		tok, err := spotify.OAuthConfig(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL).Exchange(ctx, code)
		if err != nil {
			return fmt.Errorf("token exchange error: %w", err)
		}
		if err := spotify.SaveToken(cfg.TokenFile, tok); err != nil {
			return err
		}
		fmt.Printf("token saved to %s\n", cfg.TokenFile)
		return nil
	}
}
