package extract_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spotsnap/spotsnap/db"
	"github.com/spotsnap/spotsnap/extract"
	"github.com/spotsnap/spotsnap/paging"
	"github.com/spotsnap/spotsnap/snapshot"
	"github.com/spotsnap/spotsnap/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type stubSource[T any] struct {
	pages []paging.Page[T]
	err   error
	calls int
}

func (src *stubSource[T]) NextPage(ctx context.Context) (paging.Page[T], error) {
	if src.err != nil {
		return paging.Page[T]{}, src.err
	}
	page := src.pages[src.calls]
	src.calls++
	return page, nil
}

type fakeAPI struct {
	user    *spotify.User
	userErr error

	saved    []spotify.SavedTrackItem
	savedErr error

	playlists []spotify.Playlist

	items map[string][]spotify.PlaylistItem

	recent    []spotify.PlayItem
	recentErr error

	featureCalls [][]string
	featureErr   error
}

func (api *fakeAPI) CurrentUser(ctx context.Context) (*spotify.User, error) {
	if api.userErr != nil {
		return nil, api.userErr
	}
	return api.user, nil
}

func (api *fakeAPI) SavedTracks(pageSize int) paging.Source[spotify.SavedTrackItem] {
	return &stubSource[spotify.SavedTrackItem]{
		pages: []paging.Page[spotify.SavedTrackItem]{{Items: api.saved}},
		err:   api.savedErr,
	}
}

func (api *fakeAPI) Playlists(pageSize int) paging.Source[spotify.Playlist] {
	return &stubSource[spotify.Playlist]{
		pages: []paging.Page[spotify.Playlist]{{Items: api.playlists}},
	}
}

func (api *fakeAPI) PlaylistItems(playlistID string, pageSize int) paging.Source[spotify.PlaylistItem] {
	return &stubSource[spotify.PlaylistItem]{
		pages: []paging.Page[spotify.PlaylistItem]{{Items: api.items[playlistID]}},
	}
}

func (api *fakeAPI) RecentlyPlayed(ctx context.Context, limit int) ([]spotify.PlayItem, error) {
	if api.recentErr != nil {
		return nil, api.recentErr
	}
	return api.recent, nil
}

func (api *fakeAPI) AudioFeatures(ctx context.Context, ids []string) ([]*spotify.AudioFeatures, error) {
	if api.featureErr != nil {
		return nil, api.featureErr
	}
	api.featureCalls = append(api.featureCalls, ids)
	features := make([]*spotify.AudioFeatures, len(ids))
	for i, id := range ids {
		features[i] = &spotify.AudioFeatures{ID: id}
	}
	return features, nil
}

func savedItem(id string) spotify.SavedTrackItem {
	return spotify.SavedTrackItem{
		AddedAt: "2024-03-01T12:00:00Z",
		Track: spotify.Track{
			ID:      ptr(id),
			Name:    ptr("song " + id),
			Artists: []spotify.Artist{{ID: "a1", Name: "First"}},
			Album:   &spotify.Album{ID: ptr("alb1"), Name: ptr("Album")},
			IsLocal: ptr(false),
		},
	}
}

func newExtractor(t *testing.T, api *fakeAPI) (*extract.Extractor, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := snapshot.NewStore(dir)
	require.NoError(t, err)
	return extract.New(api, store, nil, nil), dir
}

func resultsByName(results []extract.TaskResult) map[string]extract.TaskResult {
	byName := make(map[string]extract.TaskResult, len(results))
	for _, res := range results {
		byName[res.Name] = res
	}
	return byName
}

func TestRunWritesAllSnapshots(t *testing.T) {
	api := &fakeAPI{
		user:  &spotify.User{ID: "me", DisplayName: "Me"},
		saved: []spotify.SavedTrackItem{savedItem("t1"), savedItem("t2")},
		playlists: []spotify.Playlist{
			{ID: "pl1", Name: "first", Owner: spotify.User{ID: "me"}},
			{ID: "pl2", Name: "second", Owner: spotify.User{ID: "me"}},
		},
		items: map[string][]spotify.PlaylistItem{
			"pl1": {
				{AddedAt: "2024-03-01T12:00:00Z", Track: &spotify.Track{ID: ptr("t1")}},
				{AddedAt: "2024-03-01T12:01:00Z", Track: nil}, // removed track
			},
		},
		recent: []spotify.PlayItem{
			{PlayedAt: "2024-03-01T20:15:00.000Z", Track: spotify.Track{ID: ptr("t1")}},
		},
	}

	ex, dir := newExtractor(t, api)
	results, err := ex.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 5)

	byName := resultsByName(results)
	for _, task := range extract.Tasks {
		assert.Equal(t, extract.StatusOK, byName[task].Status, task)
	}

	assert.Equal(t, 2, byName[extract.TaskSavedTracks].Records)
	assert.Equal(t, 2, byName[extract.TaskPlaylists].Records)
	assert.Equal(t, 1, byName[extract.TaskPlaylistTracks].Records, "the entry without a track is skipped")
	assert.Equal(t, 2, byName[extract.TaskAudioFeatures].Records)
	assert.Equal(t, 1, byName[extract.TaskRecentlyPlayed].Records)

	// The playlist-tracks snapshot is named for the playlist it captured.
	assert.Contains(t, byName[extract.TaskPlaylistTracks].File, "playlist_pl1_tracks_")
	// The audio-features snapshot keeps the original's label.
	assert.Contains(t, byName[extract.TaskAudioFeatures].File, "saved_tracks_audio_features_")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
	for _, res := range results {
		assert.Equal(t, dir, filepath.Dir(res.File))
	}

	assert.Zero(t, extract.Failed(results))
}

func TestTaskFailureDoesNotAbortRun(t *testing.T) {
	api := &fakeAPI{
		user:     &spotify.User{ID: "me"},
		savedErr: errors.New("rate limit exceeded"),
		playlists: []spotify.Playlist{
			{ID: "pl1", Name: "first"},
		},
	}

	ex, _ := newExtractor(t, api)
	results, err := ex.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 5)

	byName := resultsByName(results)
	assert.Equal(t, extract.StatusFailed, byName[extract.TaskSavedTracks].Status)
	assert.Error(t, byName[extract.TaskSavedTracks].Err)
	assert.Equal(t, extract.StatusOK, byName[extract.TaskPlaylists].Status)
	assert.Equal(t, extract.StatusOK, byName[extract.TaskPlaylistTracks].Status)
	// With no saved tracks there are no ids to look up.
	assert.Equal(t, extract.StatusSkipped, byName[extract.TaskAudioFeatures].Status)
	assert.Equal(t, extract.StatusOK, byName[extract.TaskRecentlyPlayed].Status)

	assert.Equal(t, 1, extract.Failed(results))
}

func TestMissingDependencySkips(t *testing.T) {
	api := &fakeAPI{user: &spotify.User{ID: "me"}}

	ex, _ := newExtractor(t, api)
	results, err := ex.Run(context.Background())
	require.NoError(t, err)

	byName := resultsByName(results)
	assert.Equal(t, extract.StatusSkipped, byName[extract.TaskPlaylistTracks].Status)
	assert.Equal(t, extract.StatusSkipped, byName[extract.TaskAudioFeatures].Status)
}

func TestAuthFailureIsFatal(t *testing.T) {
	api := &fakeAPI{userErr: errors.New("401 unauthorized")}

	ex, dir := newExtractor(t, api)
	_, err := ex.Run(context.Background())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no task runs after an authentication failure")
}

func TestAudioFeatureBatching(t *testing.T) {
	var saved []spotify.SavedTrackItem
	for i := 0; i < 120; i++ {
		saved = append(saved, savedItem(fmt.Sprintf("t%03d", i)))
	}
	// Local tracks and tracks without ids are not looked up.
	saved = append(saved, spotify.SavedTrackItem{
		Track: spotify.Track{Name: ptr("local"), IsLocal: ptr(true), ID: ptr("ignored")},
	})
	saved = append(saved, spotify.SavedTrackItem{
		Track: spotify.Track{Name: ptr("no id")},
	})

	api := &fakeAPI{user: &spotify.User{ID: "me"}, saved: saved}

	ex, _ := newExtractor(t, api)
	require.NoError(t, ex.Select([]string{extract.TaskSavedTracks, extract.TaskAudioFeatures}))
	results, err := ex.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Len(t, api.featureCalls, 2)
	assert.Len(t, api.featureCalls[0], 100)
	assert.Len(t, api.featureCalls[1], 20)
	assert.Equal(t, "t000", api.featureCalls[0][0])
	assert.Equal(t, "t100", api.featureCalls[1][0])

	byName := resultsByName(results)
	assert.Equal(t, 120, byName[extract.TaskAudioFeatures].Records)
}

func TestSelect(t *testing.T) {
	api := &fakeAPI{
		user:  &spotify.User{ID: "me"},
		saved: []spotify.SavedTrackItem{savedItem("t1")},
	}

	ex, _ := newExtractor(t, api)
	require.NoError(t, ex.Select([]string{extract.TaskSavedTracks}))
	results, err := ex.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, extract.TaskSavedTracks, results[0].Name)

	assert.Error(t, ex.Select([]string{"no_such_task"}))
}

func TestRunRecordsOutcomes(t *testing.T) {
	api := &fakeAPI{
		user:  &spotify.User{ID: "me", DisplayName: "Me"},
		saved: []spotify.SavedTrackItem{savedItem("t1")},
	}

	dir := t.TempDir()
	store, err := snapshot.NewStore(dir)
	require.NoError(t, err)
	catalog, err := db.Open(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer catalog.Close()

	ex := extract.New(api, store, catalog, nil)
	require.NoError(t, ex.Select([]string{extract.TaskSavedTracks}))
	_, err = ex.Run(context.Background())
	require.NoError(t, err)

	runs, err := catalog.RecentRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "me", runs[0].UserID)
	assert.NotNil(t, runs[0].FinishedAt)
	require.Len(t, runs[0].Tasks, 1)
	assert.Equal(t, extract.TaskSavedTracks, runs[0].Tasks[0].Name)
	assert.Equal(t, string(extract.StatusOK), runs[0].Tasks[0].Status)
	assert.Equal(t, 1, runs[0].Tasks[0].Records)
}
