package services

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

type reviewFixture struct {
	store   *repository.Store
	service *ReviewService
	vendor  *models.User
}

func newReviewFixture(t *testing.T) *reviewFixture {
	store := newStore()
	return &reviewFixture{
		store:   store,
		service: NewReviewService(store, NewRatingAggregator(store)),
		vendor:  seedUser(t, store, "fresh-mart", models.RoleVendor),
	}
}

func (f *reviewFixture) review(t *testing.T, author *models.User, rating int) *models.Review {
	t.Helper()
	review, err := f.service.Create(context.Background(), author.ID, &CreateReviewRequest{
		VendorID: f.vendor.ID,
		Rating:   rating,
		Title:    "Fresh stock",
		Comment:  "Everything was well within date",
	})
	require.NoError(t, err)
	return review
}

func (f *reviewFixture) summary(t *testing.T) models.RatingSummary {
	t.Helper()
	vendor, err := f.store.Users.FindByID(context.Background(), f.vendor.ID)
	require.NoError(t, err)
	return vendor.RatingSummary
}

func TestReviewAggregateAfterCreateAndDelete(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	var three *models.Review
	for i, rating := range []int{5, 5, 4, 3, 5} {
		author := seedUser(t, f.store, fmt.Sprintf("buyer%d", i), models.RoleUser)
		r := f.review(t, author, rating)
		if rating == 3 {
			three = r
		}
	}

	summary := f.summary(t)
	assert.Equal(t, 4.4, summary.AverageRating)
	assert.Equal(t, int64(5), summary.NumReviews)
	assert.Equal(t, models.RatingDistribution{Three: 1, Four: 1, Five: 3}, summary.RatingDistribution)

	require.NoError(t, f.service.Delete(ctx, three.UserID, three.ID))

	summary = f.summary(t)
	assert.Equal(t, 4.8, summary.AverageRating)
	assert.Equal(t, int64(4), summary.NumReviews)
	assert.Equal(t, models.RatingDistribution{Four: 1, Five: 3}, summary.RatingDistribution)
}

func TestReviewDuplicateIsConflict(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.store, "buyer", models.RoleUser)
	first := f.review(t, author, 4)

	_, err := f.service.Create(context.Background(), author.ID, &CreateReviewRequest{
		VendorID: f.vendor.ID,
		Rating:   1,
		Title:    "Changed my mind",
		Comment:  "Second attempt",
	})
	assert.ErrorIs(t, err, ErrConflict)

	stored, err := f.store.Reviews.FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)

	summary := f.summary(t)
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Equal(t, int64(1), summary.NumReviews)
}

func TestReviewDeleteOnlyReviewResetsSummary(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.store, "buyer", models.RoleUser)
	review := f.review(t, author, 2)

	require.NoError(t, f.service.Delete(context.Background(), author.ID, review.ID))

	assert.Equal(t, models.RatingSummary{}, f.summary(t))
}

func TestReviewUpdateRecomputes(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.store, "buyer", models.RoleUser)
	review := f.review(t, author, 2)

	updated, err := f.service.Update(context.Background(), author.ID, review.ID, &UpdateReviewRequest{
		Rating: intPtr(5),
		Title:  strPtr("  Much better now  "),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Much better now", updated.Title)
	assert.Equal(t, review.Comment, updated.Comment)
	assert.Equal(t, "buyer", updated.UserName)

	summary := f.summary(t)
	assert.Equal(t, 5.0, summary.AverageRating)
	assert.Equal(t, models.RatingDistribution{Five: 1}, summary.RatingDistribution)
}

func TestReviewOwnershipIsEnforced(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	author := seedUser(t, f.store, "buyer", models.RoleUser)
	other := seedUser(t, f.store, "stranger", models.RoleUser)
	review := f.review(t, author, 3)

	_, err := f.service.Update(ctx, other.ID, review.ID, &UpdateReviewRequest{Rating: intPtr(1)})
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.service.Delete(ctx, other.ID, review.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.service.Delete(ctx, author.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 3.0, f.summary(t).AverageRating)
}

func TestReviewRequiresVendor(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.store, "buyer", models.RoleUser)
	plainUser := seedUser(t, f.store, "neighbour", models.RoleUser)

	for _, vendorID := range []string{"missing", plainUser.ID} {
		_, err := f.service.Create(context.Background(), author.ID, &CreateReviewRequest{
			VendorID: vendorID,
			Rating:   5,
			Title:    "Great",
			Comment:  "Great",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestReviewValidation(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.store, "buyer", models.RoleUser)

	_, err := f.service.Create(context.Background(), author.ID, &CreateReviewRequest{
		VendorID: f.vendor.ID,
		Rating:   6,
		Title:    "   ",
		Comment:  "ok",
	})
	require.ErrorIs(t, err, ErrValidation)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	fields := map[string]bool{}
	for _, d := range svcErr.Details.([]utils.ValidationError) {
		fields[d.Field] = true
	}
	assert.True(t, fields["rating"])
	assert.True(t, fields["title"])
}

func TestMarkHelpfulIsIdempotent(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	author := seedUser(t, f.store, "buyer", models.RoleUser)
	voter := seedUser(t, f.store, "voter", models.RoleUser)
	review := f.review(t, author, 4)

	updated, err := f.service.MarkHelpful(ctx, voter.ID, review.ID, &HelpfulRequest{})
	require.NoError(t, err)
	require.Len(t, updated.Helpful, 1)
	assert.True(t, updated.Helpful[0].Helpful)

	no := false
	updated, err = f.service.MarkHelpful(ctx, voter.ID, review.ID, &HelpfulRequest{Helpful: &no})
	require.NoError(t, err)
	require.Len(t, updated.Helpful, 1)
	assert.Equal(t, voter.ID, updated.Helpful[0].UserID)
	assert.False(t, updated.Helpful[0].Helpful)
	assert.Zero(t, updated.HelpfulCount())

	_, err = f.service.MarkHelpful(ctx, voter.ID, "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForVendorPaginates(t *testing.T) {
	f := newReviewFixture(t)
	for i := 0; i < 12; i++ {
		author := seedUser(t, f.store, fmt.Sprintf("buyer%02d", i), models.RoleUser)
		f.review(t, author, i%5+1)
	}

	params := utils.PaginationParams{Page: 2, Limit: 5, SortBy: "rating", SortDesc: true}
	result, err := f.service.ListForVendor(context.Background(), f.vendor.ID, params)
	require.NoError(t, err)

	assert.Len(t, result.Reviews, 5)
	assert.Equal(t, int64(12), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
	assert.Equal(t, int64(12), result.RatingStats.NumReviews)
	for i := 1; i < len(result.Reviews); i++ {
		assert.GreaterOrEqual(t, result.Reviews[i-1].Rating, result.Reviews[i].Rating)
	}
	assert.NotEmpty(t, result.Reviews[0].UserName)

	empty, err := f.service.ListForVendor(context.Background(), "nobody", utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, empty.Reviews)
	assert.Equal(t, models.RatingSummary{}, empty.RatingStats)
}

func TestListAllFiltersByRating(t *testing.T) {
	f := newReviewFixture(t)
	for i, rating := range []int{5, 4, 5, 1} {
		author := seedUser(t, f.store, fmt.Sprintf("buyer%d", i), models.RoleUser)
		f.review(t, author, rating)
	}

	result, err := f.service.ListAll(context.Background(), ReviewFilter{Rating: 5}, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, result.Reviews, 2)

	_, err = f.service.ListAll(context.Background(), ReviewFilter{Rating: 9}, utils.PaginationParams{Page: 1, Limit: 20})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetMine(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.store, "buyer", models.RoleUser)

	_, err := f.service.GetMine(context.Background(), author.ID, f.vendor.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	created := f.review(t, author, 3)
	mine, err := f.service.GetMine(context.Background(), author.ID, f.vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, mine.ID)
}

// The cached summary must match the live review set after any sequence of mutations.
func TestRatingCacheMatchesReviewsAfterRandomMutations(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	var authors []*models.User
	for i := 0; i < 8; i++ {
		authors = append(authors, seedUser(t, f.store, fmt.Sprintf("buyer%d", i), models.RoleUser))
	}
	live := map[string]*models.Review{}

	for step := 0; step < 60; step++ {
		author := authors[rng.Intn(len(authors))]
		existing, has := live[author.ID]

		switch {
		case !has:
			live[author.ID] = f.review(t, author, rng.Intn(5)+1)
		case rng.Intn(2) == 0:
			_, err := f.service.Update(ctx, author.ID, existing.ID, &UpdateReviewRequest{Rating: intPtr(rng.Intn(5) + 1)})
			require.NoError(t, err)
		default:
			require.NoError(t, f.service.Delete(ctx, author.ID, existing.ID))
			delete(live, author.ID)
		}

		histogram, err := f.store.Reviews.RatingHistogram(ctx, f.vendor.ID)
		require.NoError(t, err)
		assert.Equal(t, ComputeRatingSummary(histogram), f.summary(t), "step %d", step)
	}
}
