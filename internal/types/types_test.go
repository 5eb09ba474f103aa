package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	t.Run("Absent", func(t *testing.T) {
		var req JudgeUpdateRequest
		require.NoError(t, json.Unmarshal([]byte(`{"bio": "hi"}`), &req))

		_, ok := req.Featured.Get()
		assert.False(t, ok, "featured was not in the payload")
		assert.False(t, req.Featured.Defined)
	})

	t.Run("Present", func(t *testing.T) {
		var req JudgeUpdateRequest
		require.NoError(t, json.Unmarshal([]byte(`{"featured": true, "badges": ["mentor"]}`), &req))

		featured, ok := req.Featured.Get()
		assert.True(t, ok)
		assert.True(t, featured)

		badges, ok := req.Badges.Get()
		assert.True(t, ok)
		assert.Equal(t, []string{"mentor"}, badges)
	})

	t.Run("ExplicitNull", func(t *testing.T) {
		var req JudgeUpdateRequest
		require.NoError(t, json.Unmarshal([]byte(`{"badges": null}`), &req))

		assert.True(t, req.Badges.Defined, "null still counts as defined")
		_, ok := req.Badges.Get()
		assert.False(t, ok, "but carries no value")
	})
}
