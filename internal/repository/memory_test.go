package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	exists, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	saved, err := repo.Save(ctx, &domain.User{Username: "alice", DisplayName: "Alice", Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "alice", saved.Username)

	_, err = repo.Save(ctx, &domain.User{Username: "alice", DisplayName: "Other"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.DisplayName)
}

func newRestaurant(name, location string) *domain.Restaurant {
	now := time.Now()
	return &domain.Restaurant{ID: uuid.New(), Name: name, Rating: 4, Location: location, CreatedAt: now, UpdatedAt: now}
}

func TestMemoryRestaurantRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRestaurantRepository()

	pad := newRestaurant("Pad Thai Corner", "Bangkok")
	require.NoError(t, repo.Create(ctx, pad))
	assert.ErrorIs(t, repo.Create(ctx, newRestaurant("Pad Thai Corner", "Chiang Mai")), domain.ErrRestaurantNameTaken)

	got, err := repo.GetByName(ctx, "Pad Thai Corner")
	require.NoError(t, err)
	assert.Equal(t, pad.ID, got.ID)

	other := newRestaurant("Som Tam House", "Bangkok")
	require.NoError(t, repo.Create(ctx, other))

	other.Name = "Pad Thai Corner"
	assert.ErrorIs(t, repo.Update(ctx, other), domain.ErrRestaurantNameTaken)

	pad.Rating = 5
	require.NoError(t, repo.Update(ctx, pad))
	got, err = repo.GetByID(ctx, pad.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Rating)

	require.NoError(t, repo.Delete(ctx, pad.ID))
	assert.ErrorIs(t, repo.Delete(ctx, pad.ID), domain.ErrRestaurantNotFound)
	_, err = repo.GetByID(ctx, pad.ID)
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestMemoryRestaurantRepository_Listing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRestaurantRepository()
	for _, r := range []*domain.Restaurant{
		newRestaurant("C", "Bangkok"),
		newRestaurant("A", "Phuket"),
		newRestaurant("B", "Bangkok"),
	} {
		require.NoError(t, repo.Create(ctx, r))
	}

	page, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "A", page[0].Name)
	assert.Equal(t, "B", page[1].Name)

	page, _, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "C", page[0].Name)

	page, _, err = repo.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	page, total, err = repo.List(ctx, 2, -200)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.EqualValues(t, 3, total)

	bkk, err := repo.ListByLocation(ctx, "Bangkok")
	require.NoError(t, err)
	require.Len(t, bkk, 2)
	assert.Equal(t, "B", bkk[0].Name)
}
