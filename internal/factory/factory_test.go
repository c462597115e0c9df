package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankenpanel/frankenpanel/internal/testutil"
)

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	require.NotNil(t, app.Storage)
	require.NotNil(t, app.AuthService)
	require.NotNil(t, app.PanelService)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "cassandra"})
	assert.Error(t, err)
}

func TestNewRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, app.SeedAdmin(ctx, testutil.NopLogger()))
	require.NoError(t, app.SeedAdmin(ctx, testutil.NopLogger()))

	count, err := app.Storage.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	admin, err := app.Storage.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	assert.True(t, admin.IsSuperuser)
}

func TestSeedAdminSkipsWhenUsersExist(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = app.AuthService.CreateUser(ctx, "alice", "password123", "alice@example.com", "", false)
	require.NoError(t, err)

	require.NoError(t, app.SeedAdmin(ctx, testutil.NopLogger()))

	count, err := app.Storage.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
