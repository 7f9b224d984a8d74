// Package data holds the flat record shapes the extractor writes to
// snapshots, the normalizers that produce them from raw API items, and the
// run-catalog models.
//
// Every record field is always present in serialized output. A field whose
// source data was absent is null; absent multi-valued fields (artist ids and
// names) are empty sequences, never null.
package data

import "github.com/spotsnap/spotsnap/spotify"

func artistIDs(artists []spotify.Artist) []string {
	ids := make([]string, len(artists))
	for i, artist := range artists {
		ids[i] = artist.ID
	}
	return ids
}

func artistNames(artists []spotify.Artist) []string {
	names := make([]string, len(artists))
	for i, artist := range artists {
		names[i] = artist.Name
	}
	return names
}

func albumID(album *spotify.Album) *string {
	if album == nil {
		return nil
	}
	return album.ID
}

func albumName(album *spotify.Album) *string {
	if album == nil {
		return nil
	}
	return album.Name
}

// externalURL pulls the canonical open.spotify.com link out of an
// external_urls object.
func externalURL(urls map[string]string) *string {
	if url, ok := urls["spotify"]; ok {
		return &url
	}
	return nil
}
