package data

import "github.com/spotsnap/spotsnap/spotify"

// PlaylistTrack is one playlist entry, flattened. PlaylistID is the
// enclosing playlist, injected so records from different playlists stay
// joinable downstream.
type PlaylistTrack struct {
	PlaylistID  string   `json:"playlist_id"`
	AddedAt     string   `json:"added_at"`
	AddedByID   *string  `json:"added_by_id"`
	TrackID     *string  `json:"track_id"`
	TrackName   *string  `json:"track_name"`
	ArtistIDs   []string `json:"artist_ids"`
	ArtistNames []string `json:"artist_names"`
	AlbumID     *string  `json:"album_id"`
	AlbumName   *string  `json:"album_name"`
	DurationMS  *int64   `json:"duration_ms"`
	Popularity  *int64   `json:"popularity"`
	ExternalURL *string  `json:"external_url"`
	PreviewURL  *string  `json:"preview_url"`
	IsLocal     bool     `json:"is_local"`
}

// NewPlaylistTrack flattens one playlist entry. It returns false for entries
// with no track at all (removed or otherwise unresolvable); those are
// excluded from output rather than emitted as all-null records. Entries for
// locally-stored tracks are kept, with nulls standing in for the catalog
// fields they lack.
func NewPlaylistTrack(playlistID string, item spotify.PlaylistItem) (PlaylistTrack, bool) {
	if item.Track == nil {
		return PlaylistTrack{}, false
	}

	var addedByID *string
	if item.AddedBy != nil {
		addedByID = &item.AddedBy.ID
	}

	track := *item.Track
	return PlaylistTrack{
		PlaylistID:  playlistID,
		AddedAt:     item.AddedAt,
		AddedByID:   addedByID,
		TrackID:     track.ID,
		TrackName:   track.Name,
		ArtistIDs:   artistIDs(track.Artists),
		ArtistNames: artistNames(track.Artists),
		AlbumID:     albumID(track.Album),
		AlbumName:   albumName(track.Album),
		DurationMS:  track.DurationMS,
		Popularity:  track.Popularity,
		ExternalURL: externalURL(track.ExternalURLs),
		PreviewURL:  track.PreviewURL,
		IsLocal:     track.IsLocal != nil && *track.IsLocal,
	}, true
}
