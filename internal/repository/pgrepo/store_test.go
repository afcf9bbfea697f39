package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

func TestTranslate(t *testing.T) {
	other := &pgconn.PgError{Code: "23502"}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, repository.ErrNotFound},
		{"duplicate key", gorm.ErrDuplicatedKey, repository.ErrDuplicate},
		{"malformed uuid", fmt.Errorf("query: %w", &pgconn.PgError{Code: "22P02"}), repository.ErrNotFound},
		{"other postgres error", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.True(t, errors.Is(got, tt.want), "got %v", got)
		})
	}
}

func TestOnlyIDs(t *testing.T) {
	valid := newID()
	assert.Equal(t, []string{valid}, onlyIDs([]string{"abc", valid, ""}))
	assert.Empty(t, onlyIDs([]string{"x"}))
}

// Malformed ids are answered without a query, so the repositories need no
// connection here.
func TestMalformedIDsMatchNothing(t *testing.T) {
	ctx := context.Background()
	valid := newID()

	_, err := (&userRepo{}).FindByID(ctx, "abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	users, err := (&userRepo{}).FindByIDs(ctx, []string{"abc", "def"})
	require.NoError(t, err)
	assert.Empty(t, users)

	assert.ErrorIs(t, (&userRepo{}).UpdateRatingSummary(ctx, "abc", models.RatingSummary{}), repository.ErrNotFound)

	_, err = (&productRepo{}).FindByID(ctx, "abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, (&productRepo{}).Delete(ctx, "abc"), repository.ErrNotFound)

	_, err = (&cartRepo{}).RemoveItem(ctx, valid, "line-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = (&cartRepo{}).AddItem(ctx, valid, "abc", 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = (&orderRepo{}).FindByID(ctx, "abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, (&orderRepo{}).UpdateStatus(ctx, "abc", models.OrderStatusPending, models.OrderStatusCancelled), repository.ErrNotFound)

	_, err = (&reviewRepo{}).FindByUserAndVendor(ctx, valid, "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = (&reviewRepo{}).SetHelpful(ctx, "abc", valid, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, (&reviewRepo{}).Delete(ctx, "abc"), repository.ErrNotFound)

	hist, err := (&reviewRepo{}).RatingHistogram(ctx, "x")
	require.NoError(t, err)
	assert.Empty(t, hist)
}
