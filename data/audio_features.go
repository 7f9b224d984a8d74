package data

import "github.com/spotsnap/spotsnap/spotify"

// PresentAudioFeatures drops the null entries a bulk audio-features lookup
// returns for ids Spotify has no analysis for, preserving the order of the
// rest. The surviving entries are snapshot-ready as-is.
func PresentAudioFeatures(batch []*spotify.AudioFeatures) []spotify.AudioFeatures {
	features := make([]spotify.AudioFeatures, 0, len(batch))
	for _, f := range batch {
		if f != nil {
			features = append(features, *f)
		}
	}
	return features
}
