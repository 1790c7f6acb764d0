package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewCodecRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewCodec("", time.Minute, time.Hour, nil)
	require.Error(t, err)
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	t.Parallel()

	codec, err := NewCodec("secret", time.Minute, time.Hour, nil)
	require.NoError(t, err)

	token, err := codec.IssueAccessToken("user-1", "a@x.com")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)
	require.NotEmpty(t, claims.ID, "jti should be set")
}

func TestRefreshTokenOmitsEmail(t *testing.T) {
	t.Parallel()

	codec, err := NewCodec("secret", time.Minute, time.Hour, nil)
	require.NoError(t, err)

	token, err := codec.IssueRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Empty(t, claims.Email)
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	t.Parallel()

	codec, err := NewCodec("secret", time.Minute, time.Hour, nil)
	require.NoError(t, err)

	a, err := codec.IssueRefreshToken("user-1")
	require.NoError(t, err)
	b, err := codec.IssueRefreshToken("user-1")
	require.NoError(t, err)

	// Same subject, same instant: the random jti keeps the strings distinct.
	require.NotEqual(t, a, b)
}

func TestVerifyErrorMapping(t *testing.T) {
	t.Parallel()

	now := time.Now()
	codec, err := NewCodec("secret", time.Minute, time.Hour, func() time.Time { return now })
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		token, err := codec.IssueAccessToken("user-1", "a@x.com")
		require.NoError(t, err)

		late, err := NewCodec("secret", time.Minute, time.Hour, func() time.Time {
			return now.Add(time.Minute + time.Second)
		})
		require.NoError(t, err)

		_, err = late.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("expired exactly at expiry", func(t *testing.T) {
		token, err := codec.IssueAccessToken("user-1", "a@x.com")
		require.NoError(t, err)

		atExpiry, err := NewCodec("secret", time.Minute, time.Hour, func() time.Time {
			return now.Add(time.Minute)
		})
		require.NoError(t, err)

		_, err = atExpiry.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := codec.IssueAccessToken("user-1", "a@x.com")
		require.NoError(t, err)

		other, err := NewCodec("other-secret", time.Minute, time.Hour, func() time.Time { return now })
		require.NoError(t, err)

		_, err = other.Verify(token)
		require.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := codec.Verify("not.a.token")
		require.ErrorIs(t, err, ErrMalformed)

		_, err = codec.Verify("")
		require.ErrorIs(t, err, ErrMalformed)
	})
}
