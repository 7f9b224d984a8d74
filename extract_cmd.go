package main

import (
	"context"
	"fmt"

	"github.com/spotsnap/spotsnap/config"
	"github.com/spotsnap/spotsnap/db"
	"github.com/spotsnap/spotsnap/extract"
	"github.com/spotsnap/spotsnap/setflag"
	"github.com/spotsnap/spotsnap/snapshot"
	"github.com/spotsnap/spotsnap/spotify"
	"github.com/spotsnap/spotsnap/subcmd"
)

func extractCmd(ctx context.Context, args []string) error {
	sc := subcmd.New("extract", "take snapshots of the account's listening data\nrequires SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET, and a cached token from 'spotsnap auth'")
	tasks := setflag.New(extract.Tasks...)
	sc.Var(tasks, "tasks", "comma-separated subset of tasks to run (default: all)")
	verbose := sc.Bool("v", false, "verbose logging")
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

	log, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	oauthCfg := spotify.OAuthConfig(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL)
	httpClient, err := spotify.TokenClient(ctx, oauthCfg, cfg.TokenFile)
	if err != nil {
		return err
	}
	spo := spotify.New(httpClient, log)

	catalog, err := db.Open(cfg.CatalogFile)
	if err != nil {
		return err
	}
	defer catalog.Close()

	store, err := snapshot.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}

	ex := extract.New(spo, store, catalog, log)
	ex.SetRecentLimit(cfg.RecentLimit)
	if selected := tasks.List(); len(selected) > 0 {
		if err := ex.Select(selected); err != nil {
			return err
		}
	}

	results, err := ex.Run(ctx)
	if err != nil {
		return err
	}

	for _, res := range results {
		switch res.Status {
		case extract.StatusOK:
			fmt.Printf("%s:\t%d records\t%s\n", res.Name, res.Records, res.File)
		case extract.StatusSkipped:
			fmt.Printf("%s:\tskipped (no input)\n", res.Name)
		case extract.StatusFailed:
			fmt.Printf("%s:\tfailed: %s\n", res.Name, res.Err)
		}
	}

	if n := extract.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d tasks failed", n, len(results))
	}
	return nil
}
