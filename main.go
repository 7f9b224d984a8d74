// spotsnap takes timestamped json snapshots of a spotify account's listening
// data: saved tracks, playlists, one playlist's contents, audio features for
// saved tracks, and recent plays.
//
// each run is recorded, task by task, in a sqlite3 catalog file; see
// db/schema.sql.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spotsnap/spotsnap/sigctx"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: spotsnap $cmd
valid $cmd are 'auth', 'extract', 'runs'
for help: spotsnap $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "auth":
		return auth(ctx, args)

	case "extract":
		return extractCmd(ctx, args)

	case "runs":
		return listRuns(args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
