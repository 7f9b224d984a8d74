// Package extract runs the extraction tasks: each task fetches one kind of
// listening data, flattens it, and writes one snapshot file. Tasks run
// sequentially and fail independently; a task whose prerequisite produced no
// data is skipped.
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/spotsnap/spotsnap/data"
	"github.com/spotsnap/spotsnap/db"
	"github.com/spotsnap/spotsnap/paging"
	"github.com/spotsnap/spotsnap/snapshot"
	"github.com/spotsnap/spotsnap/spotify"
	"go.uber.org/zap"
)

// Task names, in execution order.
const (
	TaskSavedTracks    = "saved_tracks"
	TaskPlaylists      = "user_playlists"
	TaskPlaylistTracks = "playlist_tracks"
	TaskAudioFeatures  = "audio_features"
	TaskRecentlyPlayed = "recently_played"
)

// Tasks lists every task in execution order.
var Tasks = []string{
	TaskSavedTracks,
	TaskPlaylists,
	TaskPlaylistTracks,
	TaskAudioFeatures,
	TaskRecentlyPlayed,
}

type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// TaskResult is the outcome of one task. File is the snapshot written for a
// successful task; Err is set only for failed ones.
type TaskResult struct {
	Name    string
	Status  Status
	Records int
	File    string
	Err     error
}

// API is the slice of the Spotify client the extractor uses. It exists so
// tests can substitute a synthetic service.
type API interface {
	CurrentUser(ctx context.Context) (*spotify.User, error)
	SavedTracks(pageSize int) paging.Source[spotify.SavedTrackItem]
	Playlists(pageSize int) paging.Source[spotify.Playlist]
	PlaylistItems(playlistID string, pageSize int) paging.Source[spotify.PlaylistItem]
	RecentlyPlayed(ctx context.Context, limit int) ([]spotify.PlayItem, error)
	AudioFeatures(ctx context.Context, ids []string) ([]*spotify.AudioFeatures, error)
}

type Extractor struct {
	api     API
	store   *snapshot.Store
	catalog *db.DB
	log     *zap.Logger

	only        map[string]bool
	recentLimit int
	now         func() time.Time
}

// New creates an Extractor. catalog may be nil, in which case run outcomes
// are only logged, not recorded.
func New(api API, store *snapshot.Store, catalog *db.DB, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		api:         api,
		store:       store,
		catalog:     catalog,
		log:         log,
		recentLimit: spotify.MaxRecentlyPlayed,
		now:         time.Now,
	}
}

// Select restricts Run to the named tasks. A selected task whose
// prerequisite task is not selected is skipped like any other
// missing-dependency task.
func (ex *Extractor) Select(tasks []string) error {
	only := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		switch task {
		case TaskSavedTracks, TaskPlaylists, TaskPlaylistTracks, TaskAudioFeatures, TaskRecentlyPlayed:
			only[task] = true
		default:
			return fmt.Errorf("unknown task '%s'", task)
		}
	}
	ex.only = only
	return nil
}

// SetRecentLimit bounds the recently-played fetch; values outside the API's
// window are clamped by the client.
func (ex *Extractor) SetRecentLimit(n int) {
	ex.recentLimit = n
}

func (ex *Extractor) enabled(task string) bool {
	return len(ex.only) == 0 || ex.only[task]
}

// Run authenticates, then executes each selected task in order. A failing
// task is reported and the run moves on; only an authentication failure or
// context cancelation stops the run. The returned results have one entry per
// selected task.
func (ex *Extractor) Run(ctx context.Context) ([]TaskResult, error) {
	user, err := ex.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication check failed: %w", err)
	}
	ex.log.Info("authenticated",
		zap.String("user_id", user.ID),
		zap.String("user_name", user.DisplayName))

	run := &data.Run{StartedAt: ex.now(), UserID: user.ID, UserName: user.DisplayName}
	if ex.catalog != nil {
		if err := ex.catalog.StartRun(run); err != nil {
			return nil, fmt.Errorf("error starting catalog run: %w", err)
		}
	}

	var results []TaskResult
	add := func(res TaskResult) {
		ex.report(run, res)
		results = append(results, res)
	}

	var saved []data.SavedTrack
	var playlists []data.Playlist

	for _, task := range Tasks {
		if !ex.enabled(task) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		switch task {
		case TaskSavedTracks:
			var res TaskResult
			saved, res = ex.savedTracks(ctx)
			add(res)
		case TaskPlaylists:
			var res TaskResult
			playlists, res = ex.playlists(ctx)
			add(res)
		case TaskPlaylistTracks:
			add(ex.playlistTracks(ctx, playlists))
		case TaskAudioFeatures:
			add(ex.audioFeatures(ctx, saved))
		case TaskRecentlyPlayed:
			add(ex.recentlyPlayed(ctx))
		}
	}

	if ex.catalog != nil {
		if err := ex.catalog.FinishRun(run); err != nil {
			ex.log.Warn("could not finish catalog run", zap.Error(err))
		}
	}

	return results, nil
}

// Failed counts the failed results.
func Failed(results []TaskResult) int {
	n := 0
	for _, res := range results {
		if res.Status == StatusFailed {
			n++
		}
	}
	return n
}

func (ex *Extractor) report(run *data.Run, res TaskResult) {
	switch res.Status {
	case StatusOK:
		ex.log.Info("task complete",
			zap.String("task", res.Name),
			zap.Int("records", res.Records),
			zap.String("file", res.File))
	case StatusSkipped:
		ex.log.Info("task skipped", zap.String("task", res.Name))
	case StatusFailed:
		ex.log.Error("task failed", zap.String("task", res.Name), zap.Error(res.Err))
	}

	if ex.catalog == nil {
		return
	}
	errMsg := ""
	if res.Err != nil {
		errMsg = res.Err.Error()
	}
	task := &data.TaskRun{
		RunID:   run.ID,
		Name:    res.Name,
		Status:  string(res.Status),
		Records: res.Records,
		File:    res.File,
		Error:   errMsg,
	}
	if err := ex.catalog.RecordTask(task); err != nil {
		ex.log.Warn("could not record task outcome",
			zap.String("task", res.Name), zap.Error(err))
	}
}
