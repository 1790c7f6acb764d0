package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("Secret123!", hash))
	require.Error(t, VerifyPassword("Wrong123!", hash))
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("Secret123!")
	require.NoError(t, err)
	b, err := HashPassword("Secret123!")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	t.Parallel()

	require.Error(t, VerifyPassword("x", ""))
	require.Error(t, VerifyPassword("x", "not-a-hash"))
	require.Error(t, VerifyPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"))
}
