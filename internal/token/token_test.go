package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestIssuer(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		i := NewIssuer(secret, time.Hour)
		id := uuid.New()

		raw, err := i.Issue(id, RoleJudge)
		require.NoError(t, err)

		claims, err := i.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, RoleJudge, claims.Role)

		subject, err := claims.SubjectID()
		require.NoError(t, err)
		assert.Equal(t, id, subject)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		raw, err := NewIssuer(secret, time.Hour).Issue(uuid.New(), RoleOrganizer)
		require.NoError(t, err)

		_, err = NewIssuer("another secret that is long enough", time.Hour).Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		i := NewIssuer(secret, time.Minute)
		i.now = func() time.Time { return time.Now().Add(-time.Hour) }

		raw, err := i.Issue(uuid.New(), RoleJudge)
		require.NoError(t, err)

		_, err = NewIssuer(secret, time.Minute).Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := NewIssuer(secret, time.Hour).Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
