package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

func TestComputeRatingSummary(t *testing.T) {
	tests := []struct {
		name      string
		histogram map[int]int64
		average   float64
		count     int64
		dist      models.RatingDistribution
	}{
		{
			name:      "empty",
			histogram: map[int]int64{},
		},
		{
			name:      "mixed ratings",
			histogram: map[int]int64{5: 3, 4: 1, 3: 1},
			average:   4.4,
			count:     5,
			dist:      models.RatingDistribution{Three: 1, Four: 1, Five: 3},
		},
		{
			name:      "half rounds up",
			histogram: map[int]int64{5: 3, 4: 1},
			average:   4.8,
			count:     4,
			dist:      models.RatingDistribution{Four: 1, Five: 3},
		},
		{
			name:      "thirds round down",
			histogram: map[int]int64{1: 2, 2: 1},
			average:   1.3,
			count:     3,
			dist:      models.RatingDistribution{One: 2, Two: 1},
		},
		{
			name:      "out of range stars ignored",
			histogram: map[int]int64{0: 4, 6: 2, 2: 1},
			average:   2,
			count:     1,
			dist:      models.RatingDistribution{Two: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := ComputeRatingSummary(tt.histogram)
			assert.Equal(t, tt.average, summary.AverageRating)
			assert.Equal(t, tt.count, summary.NumReviews)
			assert.Equal(t, tt.dist, summary.RatingDistribution)
		})
	}
}

func TestRecomputeSkipsMissingVendor(t *testing.T) {
	store := newStore()
	aggregator := NewRatingAggregator(store)

	summary, err := aggregator.Recompute(context.Background(), "no-such-vendor")
	require.NoError(t, err)
	assert.Zero(t, summary.NumReviews)
}
