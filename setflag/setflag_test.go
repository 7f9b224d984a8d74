package setflag_test

import (
	"testing"

	"github.com/spotsnap/spotsnap/setflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAcceptsCommaSeparatedValues(t *testing.T) {
	sf := setflag.New("a", "b", "c")
	require.NoError(t, sf.Set("c, a"))
	assert.Equal(t, []string{"a", "c"}, sf.List())
	assert.Equal(t, "a,c", sf.String())
}

func TestSetRejectsUnknownValue(t *testing.T) {
	sf := setflag.New("a", "b")
	err := sf.Set("a,nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "a, b")
}

func TestEmptySet(t *testing.T) {
	sf := setflag.New("a")
	assert.Empty(t, sf.List())
	assert.Equal(t, "", sf.String())
}
