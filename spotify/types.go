package spotify

// User identifies a Spotify user. The display name can be empty for users
// who never set one.
type User struct {
	ID          string
	DisplayName string `json:"display_name"`
}

type Artist struct {
	ID   string
	Name string
}

// Album carries pointer fields because the synthetic album attached to a
// locally-stored track has a null id.
type Album struct {
	ID   *string
	Name *string
}

// Track is the track object shared by the library, playlist, and player
// endpoints. Pointer fields are null or absent for locally-stored and other
// non-catalog tracks, so decoding never invents values the API didn't send.
type Track struct {
	ID           *string
	Name         *string
	Artists      []Artist
	Album        *Album
	DurationMS   *int64 `json:"duration_ms"`
	Popularity   *int64
	ExternalURLs map[string]string `json:"external_urls"`
	PreviewURL   *string           `json:"preview_url"`
	IsLocal      *bool             `json:"is_local"`
}

// SavedTrackItem is one entry of the user's library listing.
type SavedTrackItem struct {
	AddedAt string `json:"added_at"`
	Track   Track
}

// PlaylistItem is one entry of a playlist listing. Track is nil for entries
// whose track has been removed from the catalog; AddedBy is nil for very old
// playlists.
type PlaylistItem struct {
	AddedAt string `json:"added_at"`
	AddedBy *User  `json:"added_by"`
	Track   *Track
}

// Playlist is one entry of the current user's playlist listing.
type Playlist struct {
	ID            string
	Name          string
	Owner         User
	Description   string
	Public        bool
	Collaborative bool
	SnapshotID    string `json:"snapshot_id"`
	Tracks        struct {
		Total int64
	}
	ExternalURLs map[string]string `json:"external_urls"`
}

// PlayContext describes where playback was started from (a playlist, album,
// or artist page). Plays started elsewhere have no context at all.
type PlayContext struct {
	Type string
	URI  string
}

// PlayItem is one entry of the recently-played listing.
type PlayItem struct {
	PlayedAt string `json:"played_at"`
	Track    Track
	Context  *PlayContext
}

// AudioFeatures is Spotify's computed audio analysis summary for one track.
// It is already flat and is passed through to snapshots unchanged, so every
// field carries an explicit tag.
type AudioFeatures struct {
	ID               string  `json:"id"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Key              int64   `json:"key"`
	Loudness         float64 `json:"loudness"`
	Mode             int64   `json:"mode"`
	Speechiness      float64 `json:"speechiness"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	DurationMS       int64   `json:"duration_ms"`
	TimeSignature    int64   `json:"time_signature"`
	Type             string  `json:"type"`
	URI              string  `json:"uri"`
	TrackHref        string  `json:"track_href"`
	AnalysisURL      string  `json:"analysis_url"`
}
