package memrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

func TestUserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Users.Create(ctx, &models.User{Name: "A", Email: "a@example.com"}))
	err := store.Users.Create(ctx, &models.User{Name: "B", Email: "A@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUpdateProfileKeepsRatingCache(t *testing.T) {
	ctx := context.Background()
	store := New()

	vendor := &models.User{Name: "V", Email: "v@example.com", Role: models.RoleVendor, PasswordHash: "hash"}
	require.NoError(t, store.Users.Create(ctx, vendor))
	require.NoError(t, store.Users.UpdateRatingSummary(ctx, vendor.ID, models.RatingSummary{AverageRating: 4.5, NumReviews: 2}))

	vendor.Name = "Renamed"
	vendor.PasswordHash = ""
	require.NoError(t, store.Users.UpdateProfile(ctx, vendor))

	got, err := store.Users.FindByID(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, int64(2), got.NumReviews)
}

func TestCartAddItemMerges(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Carts.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	cart, err := store.Carts.AddItem(ctx, "u1", "p1", 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	cart, err = store.Carts.RemoveItem(ctx, "u1", cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = store.Carts.RemoveItem(ctx, "u1", "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReviewListSortsAndPages(t *testing.T) {
	ctx := context.Background()
	store := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, rating := range []int{3, 5, 1} {
		r := &models.Review{UserID: string(rune('a' + i)), VendorID: "v", Rating: rating}
		r.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.Reviews.Create(ctx, r))
	}

	page, total, err := store.Reviews.List(ctx, repository.ReviewFilter{VendorID: "v"},
		repository.Page{Limit: 2, SortBy: "createdAt", SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, 1, page[0].Rating)
	assert.Equal(t, 5, page[1].Rating)

	page, _, err = store.Reviews.List(ctx, repository.ReviewFilter{VendorID: "v"},
		repository.Page{Offset: 2, Limit: 2, SortBy: "rating"})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 5, page[0].Rating)
}

func TestSetHelpfulOverwritesVote(t *testing.T) {
	ctx := context.Background()
	store := New()

	r := &models.Review{UserID: "u", VendorID: "v", Rating: 4}
	require.NoError(t, store.Reviews.Create(ctx, r))

	_, err := store.Reviews.SetHelpful(ctx, r.ID, "x", true)
	require.NoError(t, err)
	got, err := store.Reviews.SetHelpful(ctx, r.ID, "x", false)
	require.NoError(t, err)

	require.Len(t, got.Helpful, 1)
	assert.False(t, got.Helpful[0].Helpful)

	hist, err := store.Reviews.RatingHistogram(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{4: 1}, hist)
}

func TestOrderUpdateStatusRequiresCurrentStatus(t *testing.T) {
	ctx := context.Background()
	store := New()

	o := &models.Order{UserID: "u", Status: models.OrderStatusPending}
	require.NoError(t, store.Orders.Create(ctx, o))

	require.NoError(t, store.Orders.UpdateStatus(ctx, o.ID, models.OrderStatusPending, models.OrderStatusCancelled))
	err := store.Orders.UpdateStatus(ctx, o.ID, models.OrderStatusPending, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReviewImagesReadAsEmptyList(t *testing.T) {
	ctx := context.Background()
	store := New()

	r := &models.Review{UserID: "u", VendorID: "v", Rating: 3}
	require.NoError(t, store.Reviews.Create(ctx, r))

	got, err := store.Reviews.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Images)
	assert.Empty(t, got.Images)
}
