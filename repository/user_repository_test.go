package repository

import (
	"context"
	"testing"

	"storefront/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetOrCreateKeepsExistingAccount(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u, created, err := repo.GetOrCreate(db, "0840000001", "Somchai")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Somchai", u.FullName)
	assert.True(t, u.IsActive)

	again, created, err := repo.GetOrCreate(db, "0840000001", "Someone Else")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "Somchai", again.FullName)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "0840000001", byID.Mobile)

	_, err = repo.FindByID(ctx, u.ID+1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkActive(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	u := testdb.CreateUser(t, db, "0840000002")

	require.NoError(t, repo.Update(ctx, u.ID, map[string]any{"is_active": false}))
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, repo.MarkActive(db, u.ID))
	got, err = repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Equal(t, "User 0840000002", got.DisplayName())
}
