// Package config loads extractor configuration from the environment. A .env
// file in the working directory is honored if present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spotsnap/spotsnap/spotify"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	DataDir     string
	CatalogFile string
	TokenFile   string

	RecentLimit int
}

// Load reads configuration from the environment, applying defaults for
// everything but the app credentials.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		RedirectURL:  getenv("SPOTSNAP_REDIRECT_URL", "http://127.0.0.1:8910/callback"),
		DataDir:      getenv("SPOTSNAP_DATA_DIR", "spotify_data"),
		CatalogFile:  getenv("SPOTSNAP_DB", "spotsnap.db"),
		TokenFile:    getenv("SPOTSNAP_TOKEN_FILE", "spotify-token.json"),
		RecentLimit:  spotify.MaxRecentlyPlayed,
	}

	if limitStr := os.Getenv("SPOTSNAP_RECENT_LIMIT"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("bad SPOTSNAP_RECENT_LIMIT '%s': %w", limitStr, err)
		}
		cfg.RecentLimit = limit
	}

	return cfg, nil
}

// Validate reports configuration problems a run can't proceed with.
func (cfg *Config) Validate() error {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return errors.New("must set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	}
	if cfg.RecentLimit < 1 || cfg.RecentLimit > spotify.MaxRecentlyPlayed {
		return fmt.Errorf("SPOTSNAP_RECENT_LIMIT must be between 1 and %d", spotify.MaxRecentlyPlayed)
	}
	return nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
