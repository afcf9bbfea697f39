// internal/services/rating_aggregator.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/expiryeaze/expiryeaze-backend/internal/metrics"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

// RatingAggregator keeps a vendor's cached rating summary equal to the
// aggregate of the vendor's reviews.
type RatingAggregator struct {
	reviews repository.ReviewRepository
	users   repository.UserRepository
}

func NewRatingAggregator(store *repository.Store) *RatingAggregator {
	return &RatingAggregator{
		reviews: store.Reviews,
		users:   store.Users,
	}
}

// ComputeRatingSummary derives the summary from a per-star histogram. The
// mean is rounded half-up to one decimal in integer arithmetic.
func ComputeRatingSummary(histogram map[int]int64) models.RatingSummary {
	var summary models.RatingSummary
	var sum int64

	for stars := models.MinRating; stars <= models.MaxRating; stars++ {
		n := histogram[stars]
		if n <= 0 {
			continue
		}
		*summary.RatingDistribution.Bucket(stars) = n
		summary.NumReviews += n
		sum += int64(stars) * n
	}

	if summary.NumReviews == 0 {
		return summary
	}

	// round(10*sum/count) without floating point
	tenths := (20*sum + summary.NumReviews) / (2 * summary.NumReviews)
	summary.AverageRating = float64(tenths) / 10
	return summary
}

// Recompute re-reads the vendor's reviews and overwrites the cached summary.
// A vendor that no longer exists is skipped.
func (a *RatingAggregator) Recompute(ctx context.Context, vendorID string) (models.RatingSummary, error) {
	histogram, err := a.reviews.RatingHistogram(ctx, vendorID)
	if err != nil {
		metrics.RatingRecomputationsTotal.WithLabelValues("error").Inc()
		return models.RatingSummary{}, fmt.Errorf("failed to read ratings: %w", err)
	}

	summary := ComputeRatingSummary(histogram)

	if err := a.users.UpdateRatingSummary(ctx, vendorID, summary); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logrus.WithField("vendor_id", vendorID).Debug("Rating summary skipped, vendor not found")
			metrics.RatingRecomputationsTotal.WithLabelValues("skipped").Inc()
			return summary, nil
		}
		metrics.RatingRecomputationsTotal.WithLabelValues("error").Inc()
		return models.RatingSummary{}, fmt.Errorf("failed to store rating summary: %w", err)
	}

	metrics.RatingRecomputationsTotal.WithLabelValues("ok").Inc()
	logrus.WithFields(logrus.Fields{
		"vendor_id":      vendorID,
		"average_rating": summary.AverageRating,
		"num_reviews":    summary.NumReviews,
	}).Debug("Rating summary updated")
	return summary, nil
}
