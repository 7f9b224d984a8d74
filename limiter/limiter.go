package limiter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// New returns a Limiter that spaces requests by delay and remembers
// server-imposed backoff across process restarts in the given file.
func New(filename string, delay time.Duration, log *zap.Logger) *Limiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Limiter{
		filename: filename,
		delay:    delay,
		log:      log,
	}
}

type Limiter struct {
	filename string
	delay    time.Duration
	log      *zap.Logger
	nextAt   time.Time
}

// Load reads a persisted backoff deadline left over from a previous run, if
// one exists.
func (lim *Limiter) Load() error {
	if _, err := os.Stat(lim.filename); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error statting file: %w", err)
	}

	bs, err := os.ReadFile(lim.filename)
	if err != nil {
		return err
	}

	lim.nextAt, err = time.Parse(time.UnixDate, string(bs))
	if err != nil {
		return err
	}

	return nil
}

// Wait blocks until the next request is allowed, or until ctx is canceled.
func (lim *Limiter) Wait(ctx context.Context) error {
	if !lim.nextAt.IsZero() {
		now := time.Now()
		dur := lim.nextAt.Sub(now)
		if dur > time.Second {
			lim.log.Info("waiting for rate limit",
				zap.Duration("wait", dur.Truncate(time.Second)),
				zap.Time("until", lim.nextAt))
		}

	wait:
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			break wait
		}

		if err := os.Remove(lim.filename); err != nil &&
			!errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

// Backoff handles a Retry-After header value: it parses the given number of
// seconds (defaulting to a minute when the header is empty), schedules the
// next request after that long plus a second of slack, and persists the
// deadline so a restarted run still honors it.
func (lim *Limiter) Backoff(secondsStr string) error {
	if secondsStr == "" {
		secondsStr = "60"
	}
	seconds, err := strconv.ParseInt(secondsStr, 10, 64)
	if err != nil {
		return err
	}
	waitTime := time.Duration(seconds)*time.Second + time.Second
	lim.nextAt = time.Now().Add(waitTime)
	if err := os.WriteFile(lim.filename, []byte(lim.nextAt.Format(time.UnixDate)), 0666); err != nil {
		return err
	}
	return nil
}

// Delay schedules the next request one standard delay from now.
func (lim *Limiter) Delay() {
	lim.nextAt = time.Now().Add(lim.delay)
}
