package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("LengthAndAlphabet", func(t *testing.T) {
		for range 100 {
			pw, err := Generate()
			require.NoError(t, err)
			assert.Len(t, pw, Length)
			for _, r := range pw {
				assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q", r)
			}
		}
	})

	t.Run("Distinct", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 500 {
			pw, err := Generate()
			require.NoError(t, err)
			assert.False(t, seen[pw], "duplicate password generated")
			seen[pw] = true
		}
	})

	t.Run("CustomAlphabet", func(t *testing.T) {
		pw, err := GenerateFrom("a", 5)
		require.NoError(t, err)
		assert.Equal(t, "aaaaa", pw)
	})

	t.Run("EmptyAlphabet", func(t *testing.T) {
		_, err := GenerateFrom("", 5)
		assert.ErrorIs(t, err, ErrEmptyAlphabet)
	})
}

func TestHash(t *testing.T) {
	hash, err := Hash("correct horse")
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse")

	ok, err := Verify("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("wrong horse", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
