package data

import "github.com/spotsnap/spotsnap/spotify"

// SavedTrack is one library entry, flattened.
type SavedTrack struct {
	AddedAt     string   `json:"added_at"`
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

// NewSavedTrack flattens one library entry. The library endpoint always
// returns a track object, so unlike playlist entries there is no skip case.
func NewSavedTrack(item spotify.SavedTrackItem) SavedTrack {
	track := item.Track
	return SavedTrack{
		AddedAt:     item.AddedAt,
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
	}
}
