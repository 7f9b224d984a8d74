package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spotsnap/spotsnap/paging"
)

// listing builds a page source for one paginated endpoint. A pageSize
// outside [1, maxSize] is replaced with maxSize.
func listing[T any](spo *Client, path string, pageSize, maxSize int) paging.Source[T] {
	if pageSize < 1 || pageSize > maxSize {
		pageSize = maxSize
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageSize))
	return &source[T]{spo: spo, first: spo.base + path, query: query}
}

// CurrentUser returns the profile of the user the access token belongs to.
func (spo *Client) CurrentUser(ctx context.Context) (*User, error) {
	return getJSON[User](ctx, spo, spo.base+"/me", nil)
}

// SavedTracks lists the user's library, newest first.
func (spo *Client) SavedTracks(pageSize int) paging.Source[SavedTrackItem] {
	return listing[SavedTrackItem](spo, "/me/tracks", pageSize, MaxPageSize)
}

// Playlists lists the playlists the user owns or follows.
func (spo *Client) Playlists(pageSize int) paging.Source[Playlist] {
	return listing[Playlist](spo, "/me/playlists", pageSize, MaxPageSize)
}

// PlaylistItems lists the contents of one playlist. This endpoint allows a
// larger page than the library listings do.
func (spo *Client) PlaylistItems(playlistID string, pageSize int) paging.Source[PlaylistItem] {
	path := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	return listing[PlaylistItem](spo, path, pageSize, MaxPlaylistPageSize)
}

// RecentlyPlayed returns up to limit of the user's most recent plays. The
// API keeps only the most recent listening window, so this is a single
// bounded call rather than a paginated walk.
func (spo *Client) RecentlyPlayed(ctx context.Context, limit int) ([]PlayItem, error) {
	if limit < 1 || limit > MaxRecentlyPlayed {
		limit = MaxRecentlyPlayed
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	env, err := getJSON[envelope[PlayItem]](ctx, spo, spo.base+"/me/player/recently-played", query)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// AudioFeatures looks up audio features for up to MaxAudioFeatureIDs tracks
// in one call. The result has one entry per requested id, in request order;
// an entry is nil when Spotify has no features for that id.
func (spo *Client) AudioFeatures(ctx context.Context, ids []string) ([]*AudioFeatures, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxAudioFeatureIDs {
		return nil, fmt.Errorf("requested %d audio features, but one call allows at most %d", len(ids), MaxAudioFeatureIDs)
	}
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))

	results, err := getJSON[audioFeaturesResults](ctx, spo, spo.base+"/audio-features", query)
	if err != nil {
		return nil, err
	}
	return results.AudioFeatures, nil
}

type audioFeaturesResults struct {
	AudioFeatures []*AudioFeatures `json:"audio_features"`
}
