//go:build unix

package termtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKey(t *testing.T) {
	seq, err := lookupKey("Shift+Right")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[1;2C", seq)

	seq, err = lookupKey("enter")
	require.NoError(t, err)
	assert.Equal(t, "\r", seq)

	_, err = lookupKey("hyper+q")
	assert.EqualError(t, err, "unknown key: hyper+q")
}

func TestKeyMap_NoEmptySequences(t *testing.T) {
	for name, seq := range keyMap {
		assert.NotEmpty(t, seq, name)
	}
}
