package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/eventhub/internal/app/store/users"
	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/dalemusser/eventhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := t.Context()

	u, err := store.Create(ctx, "alice", "secret123", models.RoleStudent)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, models.RoleStudent, u.Role)
	assert.NotEqual(t, "secret123", u.PasswordHash, "password must be stored hashed")
}

func TestStore_Create_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := t.Context()

	_, err := store.Create(ctx, "alice", "secret123", models.RoleStudent)
	require.NoError(t, err)

	_, err = store.Create(ctx, "alice", "different", models.RoleOrganizer)
	require.ErrorIs(t, err, userstore.ErrUsernameTaken)
}

func TestStore_Authenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := t.Context()

	created, err := store.Create(ctx, "alice", "secret123", models.RoleStudent)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		u, err := store.Authenticate(ctx, "alice", "secret123")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := store.Authenticate(ctx, "alice", "nope")
		require.ErrorIs(t, err, userstore.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := store.Authenticate(ctx, "mallory", "secret123")
		require.ErrorIs(t, err, userstore.ErrInvalidCredentials)
	})
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fetcher := userstore.NewFetcher(db)
	ctx := t.Context()

	created, err := store.Create(ctx, "bob", "secret123", models.RoleOrganizer)
	require.NoError(t, err)

	su, err := fetcher.FetchUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, su.ID)
	assert.Equal(t, "bob", su.Username)
	assert.Equal(t, models.RoleOrganizer, su.Role)

	_, err = fetcher.FetchUser(ctx, 9999)
	require.Error(t, err)
}
