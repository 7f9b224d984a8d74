package data_test

import (
	"testing"

	"github.com/spotsnap/spotsnap/data"
	"github.com/spotsnap/spotsnap/spotify"
	"github.com/stretchr/testify/assert"
)

func TestPresentAudioFeaturesDropsNulls(t *testing.T) {
	f1 := &spotify.AudioFeatures{ID: "t1", Danceability: 0.8}
	f3 := &spotify.AudioFeatures{ID: "t3", Danceability: 0.2}

	features := data.PresentAudioFeatures([]*spotify.AudioFeatures{f1, nil, f3})
	assert.Equal(t, []spotify.AudioFeatures{*f1, *f3}, features)
}

func TestPresentAudioFeaturesEmpty(t *testing.T) {
	assert.Empty(t, data.PresentAudioFeatures(nil))
	assert.Empty(t, data.PresentAudioFeatures([]*spotify.AudioFeatures{nil, nil}))
}
