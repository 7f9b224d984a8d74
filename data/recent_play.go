package data

import "github.com/spotsnap/spotsnap/spotify"

// RecentPlay is one recently-played entry, flattened. ContextType and
// ContextURI are both null when playback wasn't started from a playlist,
// album, or artist page.
type RecentPlay struct {
	PlayedAt    string   `json:"played_at"`
	TrackID     *string  `json:"track_id"`
	TrackName   *string  `json:"track_name"`
	ArtistIDs   []string `json:"artist_ids"`
	ArtistNames []string `json:"artist_names"`
	AlbumID     *string  `json:"album_id"`
	AlbumName   *string  `json:"album_name"`
	ContextType *string  `json:"context_type"`
	ContextURI  *string  `json:"context_uri"`
}

func NewRecentPlay(item spotify.PlayItem) RecentPlay {
	var contextType, contextURI *string
	if item.Context != nil {
		contextType = &item.Context.Type
		contextURI = &item.Context.URI
	}

	track := item.Track
	return RecentPlay{
		PlayedAt:    item.PlayedAt,
		TrackID:     track.ID,
		TrackName:   track.Name,
		ArtistIDs:   artistIDs(track.Artists),
		ArtistNames: artistNames(track.Artists),
		AlbumID:     albumID(track.Album),
		AlbumName:   albumName(track.Album),
		ContextType: contextType,
		ContextURI:  contextURI,
	}
}
