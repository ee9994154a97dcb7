package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateStoreSlugUniqueness(t *testing.T) {
	r := initTestRepo(t)
	svc := &StoreService{Repo: r}

	store, err := svc.CreateStore(context.Background(), "owner_1", "Vintage Vinyl")
	require.NoError(t, err)
	require.Equal(t, "vintage-vinyl", store.Slug)
	require.Equal(t, "owner_1", store.OwnerID)

	// Any name collapsing to the same slug is taken, even for another owner.
	_, err = svc.CreateStore(context.Background(), "owner_2", "VINTAGE  VINYL")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateStore(context.Background(), "owner_1", "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRenameStoreKeepsSlug(t *testing.T) {
	r := initTestRepo(t)
	svc := &StoreService{Repo: r}

	store, err := svc.CreateStore(context.Background(), "owner_1", "Vintage Vinyl")
	require.NoError(t, err)

	_, err = svc.Rename(context.Background(), store.ID, "owner_2", "Stolen")
	require.ErrorIs(t, err, ErrUnauthorized)

	renamed, err := svc.Rename(context.Background(), store.ID, "owner_1", "Vinyl & More")
	require.NoError(t, err)
	require.Equal(t, "Vinyl & More", renamed.Name)
	// The slug is the stable public handle.
	require.Equal(t, "vintage-vinyl", renamed.Slug)
}

func TestDeleteStoreScopedToOwner(t *testing.T) {
	r := initTestRepo(t)
	svc := &StoreService{Repo: r}

	store, err := svc.CreateStore(context.Background(), "owner_1", "Vintage Vinyl")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(context.Background(), store.ID, "owner_2"), ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), store.ID, "owner_1"))
	require.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), "owner_1"), ErrNotFound)

	stores, err := svc.ListMine(context.Background(), "owner_1")
	require.NoError(t, err)
	require.Empty(t, stores)
}
