// internal/repository/pgrepo/reviews.go
package pgrepo

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type reviewRepo struct{ db *gorm.DB }

func orderedVotes(db *gorm.DB) *gorm.DB {
	return db.Order("review_votes.id ASC")
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = newID()
	}
	if review.Helpful == nil {
		review.Helpful = []models.HelpfulVote{}
	}
	row := toReviewRow(review)
	return translate(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *reviewRepo) findOne(query *gorm.DB) (*models.Review, error) {
	var row reviewRow
	if err := query.Preload("Votes", orderedVotes).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	review := row.model()
	return &review, nil
}

func (r *reviewRepo) FindByID(ctx context.Context, id string) (*models.Review, error) {
	if !isID(id) {
		return nil, repository.ErrNotFound
	}
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *reviewRepo) FindByUserAndVendor(ctx context.Context, userID, vendorID string) (*models.Review, error) {
	if !isID(userID) || !isID(vendorID) {
		return nil, repository.ErrNotFound
	}
	return r.findOne(r.db.WithContext(ctx).Where("user_id = ? AND vendor_id = ?", userID, vendorID))
}

func (r *reviewRepo) List(ctx context.Context, filter repository.ReviewFilter, page repository.Page) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&reviewRow{})
	if filter.VendorID != "" {
		if !isID(filter.VendorID) {
			return []models.Review{}, 0, nil
		}
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Rating != 0 {
		query = query.Where("rating = ?", filter.Rating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	direction := "ASC"
	if page.SortDesc {
		direction = "DESC"
	}
	if page.SortBy == "rating" {
		query = query.Order("rating " + direction)
	}
	query = query.Order("created_at " + direction).Order("id ASC").Offset(page.Offset)
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}

	var rows []reviewRow
	if err := query.Preload("Votes", orderedVotes).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}

	reviews := make([]models.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, row.model())
	}
	return reviews, total, nil
}

func (r *reviewRepo) Update(ctx context.Context, review *models.Review) error {
	if !isID(review.ID) {
		return repository.ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(&reviewRow{}).Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":     review.Rating,
			"title":      review.Title,
			"comment":    review.Comment,
			"images":     pq.StringArray(review.Images),
			"updated_at": review.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	if !isID(id) {
		return repository.ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&reviewRow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetHelpful upserts the (review, user) vote row.
func (r *reviewRepo) SetHelpful(ctx context.Context, reviewID, userID string, helpful bool) (*models.Review, error) {
	if !isID(reviewID) || !isID(userID) {
		return nil, repository.ErrNotFound
	}
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&reviewRow{}).Where("id = ?", reviewID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}

	vote := reviewVoteRow{ReviewID: reviewID, UserID: userID, Helpful: helpful}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"helpful"}),
	}).Create(&vote).Error
	if err != nil {
		// The review was deleted between the check and the insert
		if isForeignKeyViolation(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	return r.FindByID(ctx, reviewID)
}

func (r *reviewRepo) RatingHistogram(ctx context.Context, vendorID string) (map[int]int64, error) {
	if !isID(vendorID) {
		return map[int]int64{}, nil
	}
	var buckets []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&reviewRow{}).
		Select("rating, COUNT(*) AS count").
		Where("vendor_id = ?", vendorID).
		Group("rating").
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	hist := make(map[int]int64, len(buckets))
	for _, b := range buckets {
		hist[b.Rating] = b.Count
	}
	return hist, nil
}
