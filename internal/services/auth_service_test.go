package services

import (
	"context"
	"testing"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/repository/memory"
	"praia-backend/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestTokenDenylist(t *testing.T) {
	s, client := newRedis(t)
	d := NewTokenDenylist(client)
	ctx := context.Background()

	revoked, err := d.Contains(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Add(ctx, "tok", time.Minute))
	revoked, err = d.Contains(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	s.FastForward(2 * time.Minute)
	revoked, err = d.Contains(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Add(ctx, "expired", -time.Second))
	assert.False(t, s.Exists(denylistPrefix+"expired"))
}

func TestAuthLoginLogout(t *testing.T) {
	_, client := newRedis(t)
	store := memory.NewStore()
	auth := NewAuthService(utils.NewTokenIssuer("secret", time.Hour), NewTokenDenylist(client), store, "Admin@Example.com", zap.NewNop())
	ctx := context.Background()

	session, err := auth.Login(ctx, "  Ana@Example.com ", "")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.Equal(t, "ana", session.User.Name)
	assert.Equal(t, models.RoleUser, session.User.Role)

	again, err := auth.Login(ctx, "ana@example.com", "Ana")
	require.NoError(t, err)
	assert.Equal(t, session.User.UserID, again.User.UserID)

	id, exp, err := auth.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User, id)
	assert.WithinDuration(t, session.ExpiresAt, exp, time.Second)

	userCtx := models.WithIdentity(ctx, id)
	require.NoError(t, store.Folders.Create(userCtx, models.PromptFolder{ID: "f1", OwnerID: id.UserID, Name: "Work"}))

	require.NoError(t, auth.Logout(userCtx, session.Token, exp))
	_, _, err = auth.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	folders, err := store.Folders.List(ctx, id.UserID)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestAuthAdminAndValidation(t *testing.T) {
	_, client := newRedis(t)
	auth := NewAuthService(utils.NewTokenIssuer("secret", time.Hour), NewTokenDenylist(client), memory.NewStore(), "admin@example.com", zap.NewNop())
	ctx := context.Background()

	session, err := auth.Login(ctx, "ADMIN@example.com", "Boss")
	require.NoError(t, err)
	assert.True(t, session.User.IsAdmin())

	_, err = auth.Login(ctx, "not-an-email", "x")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	assert.ErrorIs(t, auth.Logout(ctx, session.Token, session.ExpiresAt), models.ErrUnauthenticated)
}

func TestAuthWithoutAdminEmail(t *testing.T) {
	_, client := newRedis(t)
	auth := NewAuthService(utils.NewTokenIssuer("secret", time.Hour), NewTokenDenylist(client), memory.NewStore(), "", zap.NewNop())

	session, err := auth.Login(context.Background(), "someone@example.com", "x")
	require.NoError(t, err)
	assert.False(t, session.User.IsAdmin())
}
