package booking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^BOOK[A-Z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		ref, err := NewReference("BOOK")
		require.NoError(t, err)
		assert.Regexp(t, pattern, ref)
	}
}

func TestNewReferencePrefix(t *testing.T) {
	ref, err := NewReference("EVT")
	require.NoError(t, err)
	assert.Regexp(t, `^EVT[A-Z0-9]{6}$`, ref)
}

func TestNewReferenceVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		ref, err := NewReference("BOOK")
		require.NoError(t, err)
		seen[ref] = true
	}
	// 20 draws from a 36^6 space should never all collide.
	assert.Greater(t, len(seen), 1)
}
