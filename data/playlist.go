package data

import "github.com/spotsnap/spotsnap/spotify"

// Playlist is one entry of the user's playlist listing, flattened.
type Playlist struct {
	PlaylistID    string  `json:"playlist_id"`
	PlaylistName  string  `json:"playlist_name"`
	OwnerID       string  `json:"owner_id"`
	OwnerName     string  `json:"owner_name"`
	Description   string  `json:"description"`
	Public        bool    `json:"public"`
	Collaborative bool    `json:"collaborative"`
	TrackCount    int64   `json:"track_count"`
	SnapshotID    string  `json:"snapshot_id"`
	ExternalURL   *string `json:"external_url"`
}

func NewPlaylist(playlist spotify.Playlist) Playlist {
	return Playlist{
		PlaylistID:    playlist.ID,
		PlaylistName:  playlist.Name,
		OwnerID:       playlist.Owner.ID,
		OwnerName:     playlist.Owner.DisplayName,
		Description:   playlist.Description,
		Public:        playlist.Public,
		Collaborative: playlist.Collaborative,
		TrackCount:    playlist.Tracks.Total,
		SnapshotID:    playlist.SnapshotID,
		ExternalURL:   externalURL(playlist.ExternalURLs),
	}
}
