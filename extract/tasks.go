package extract

import (
	"context"
	"fmt"

	"github.com/spotsnap/spotsnap/data"
	"github.com/spotsnap/spotsnap/paging"
	"github.com/spotsnap/spotsnap/spotify"
)

func failed(task string, err error) TaskResult {
	return TaskResult{Name: task, Status: StatusFailed, Err: err}
}

func skipped(task string) TaskResult {
	return TaskResult{Name: task, Status: StatusSkipped}
}

// write snapshots records under label and returns the task's result. The
// snapshot label is usually the task name; the playlist-tracks and
// audio-features tasks use labels tied to their inputs.
func (ex *Extractor) write(task, label string, records any, count int) TaskResult {
	file, err := ex.store.Write(label, ex.now(), records)
	if err != nil {
		return failed(task, err)
	}
	return TaskResult{Name: task, Status: StatusOK, Records: count, File: file}
}

func (ex *Extractor) savedTracks(ctx context.Context) ([]data.SavedTrack, TaskResult) {
	items, err := paging.All(ctx, ex.api.SavedTracks(spotify.MaxPageSize))
	if err != nil {
		return nil, failed(TaskSavedTracks, err)
	}

	records := make([]data.SavedTrack, len(items))
	for i, item := range items {
		records[i] = data.NewSavedTrack(item)
	}
	return records, ex.write(TaskSavedTracks, TaskSavedTracks, records, len(records))
}

func (ex *Extractor) playlists(ctx context.Context) ([]data.Playlist, TaskResult) {
	items, err := paging.All(ctx, ex.api.Playlists(spotify.MaxPageSize))
	if err != nil {
		return nil, failed(TaskPlaylists, err)
	}

	records := make([]data.Playlist, len(items))
	for i, item := range items {
		records[i] = data.NewPlaylist(item)
	}
	return records, ex.write(TaskPlaylists, TaskPlaylists, records, len(records))
}

// playlistTracks extracts the contents of the first playlist from the
// playlist task's output. With no playlists to draw on, it is skipped.
func (ex *Extractor) playlistTracks(ctx context.Context, playlists []data.Playlist) TaskResult {
	if len(playlists) == 0 {
		return skipped(TaskPlaylistTracks)
	}
	playlistID := playlists[0].PlaylistID

	items, err := paging.All(ctx, ex.api.PlaylistItems(playlistID, spotify.MaxPlaylistPageSize))
	if err != nil {
		return failed(TaskPlaylistTracks, err)
	}

	records := make([]data.PlaylistTrack, 0, len(items))
	for _, item := range items {
		if record, ok := data.NewPlaylistTrack(playlistID, item); ok {
			records = append(records, record)
		}
	}

	label := fmt.Sprintf("playlist_%s_tracks", playlistID)
	return ex.write(TaskPlaylistTracks, label, records, len(records))
}

// audioFeatures looks up audio features for the saved-tracks task's output,
// batched to the API's per-call ceiling. Local tracks and tracks without an
// id have no features and aren't requested.
func (ex *Extractor) audioFeatures(ctx context.Context, saved []data.SavedTrack) TaskResult {
	var ids []string
	for _, track := range saved {
		if track.TrackID != nil && !track.IsLocal {
			ids = append(ids, *track.TrackID)
		}
	}
	if len(ids) == 0 {
		return skipped(TaskAudioFeatures)
	}

	var records []spotify.AudioFeatures
	for _, batch := range paging.Chunk(ids, spotify.MaxAudioFeatureIDs) {
		features, err := ex.api.AudioFeatures(ctx, batch)
		if err != nil {
			return failed(TaskAudioFeatures, err)
		}
		records = append(records, data.PresentAudioFeatures(features)...)
	}

	return ex.write(TaskAudioFeatures, "saved_tracks_audio_features", records, len(records))
}

func (ex *Extractor) recentlyPlayed(ctx context.Context) TaskResult {
	items, err := ex.api.RecentlyPlayed(ctx, ex.recentLimit)
	if err != nil {
		return failed(TaskRecentlyPlayed, err)
	}

	records := make([]data.RecentPlay, len(items))
	for i, item := range items {
		records[i] = data.NewRecentPlay(item)
	}
	return ex.write(TaskRecentlyPlayed, TaskRecentlyPlayed, records, len(records))
}
