package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/store"
	"github.com/showrunnerhq/showrunner/store/db/sqlite"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("open-sesame")
	require.NoError(t, err)
	require.NotEqual(t, "open-sesame", hash)

	assert.True(t, CheckPassword(hash, "open-sesame"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not a hash", "open-sesame"))
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", extractBearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", extractBearerToken("bearer abc123"))
	assert.Empty(t, extractBearerToken(""))
	assert.Empty(t, extractBearerToken("abc123"))
	assert.Empty(t, extractBearerToken("Basic abc123"))
}

func TestAuthenticateToUser(t *testing.T) {
	ctx := context.Background()

	driver, err := sqlite.NewDB(":memory:")
	require.NoError(t, err)
	st := store.New(driver)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { _ = st.Close() })

	user, err := st.CreateUser(ctx, &store.User{Username: "coordinator", PasswordHash: "x"})
	require.NoError(t, err)
	_, err = st.CreateAccessToken(ctx, &store.AccessToken{UserID: user.ID, Token: "tok-1"})
	require.NoError(t, err)

	a := NewAuthenticator(st)

	got, err := a.AuthenticateToUser(ctx, "Bearer tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	got, err = a.AuthenticateToUser(ctx, "Bearer unknown")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = a.AuthenticateToUser(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}
