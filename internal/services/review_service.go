// internal/services/review_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/metrics"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

type ReviewService struct {
	store      *repository.Store
	aggregator *RatingAggregator
	policy     Policy
}

type CreateReviewRequest struct {
	VendorID string   `json:"vendorId" validate:"required"`
	Rating   int      `json:"rating" validate:"required,gte=1,lte=5"`
	Title    string   `json:"title" validate:"required,notblank,max=100"`
	Comment  string   `json:"comment" validate:"required,notblank,max=500"`
	Images   []string `json:"images" validate:"omitempty,max=10,dive,required"`
}

// UpdateReviewRequest applies only the fields that are present.
type UpdateReviewRequest struct {
	Rating  *int     `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Title   *string  `json:"title" validate:"omitempty,notblank,max=100"`
	Comment *string  `json:"comment" validate:"omitempty,notblank,max=500"`
	Images  []string `json:"images" validate:"omitempty,max=10,dive,required"`
}

type HelpfulRequest struct {
	Helpful *bool `json:"helpful"`
}

type ReviewFilter struct {
	VendorID string
	Rating   int
}

type VendorReviewsResult struct {
	Reviews     []models.Review      `json:"reviews"`
	Pagination  utils.Pagination     `json:"pagination"`
	RatingStats models.RatingSummary `json:"ratingStats"`
}

type ReviewListResult struct {
	Reviews    []models.Review  `json:"reviews"`
	Pagination utils.Pagination `json:"pagination"`
}

func NewReviewService(store *repository.Store, aggregator *RatingAggregator) *ReviewService {
	return &ReviewService{
		store:      store,
		aggregator: aggregator,
	}
}

func (s *ReviewService) Create(ctx context.Context, actorID string, req *CreateReviewRequest) (*models.Review, error) {
	// Validate request
	req.Title = strings.TrimSpace(req.Title)
	req.Comment = strings.TrimSpace(req.Comment)
	if err := validate(req); err != nil {
		return nil, err
	}

	_, author, err := loadActor(ctx, s.store.Users, actorID)
	if err != nil {
		return nil, err
	}

	// One review per (user, vendor)
	if _, err := s.store.Reviews.FindByUserAndVendor(ctx, actorID, req.VendorID); err == nil {
		return nil, newError(ErrConflict, i18n.KeyReviewExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	vendor, err := s.store.Users.FindByID(ctx, req.VendorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}
	if vendor == nil || !vendor.IsVendor() {
		return nil, newError(ErrNotFound, i18n.KeyReviewVendorMissing)
	}

	now := time.Now()
	review := &models.Review{
		BaseModel: models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		UserID:    actorID,
		VendorID:  req.VendorID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		Images:    cleanStrings(req.Images),
		Helpful:   []models.HelpfulVote{},
	}

	if err := s.store.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, i18n.KeyReviewExists)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	metrics.ReviewMutationsTotal.WithLabelValues("create").Inc()

	if _, err := s.aggregator.Recompute(ctx, review.VendorID); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"review_id": review.ID,
		"vendor_id": review.VendorID,
		"user_id":   actorID,
	}).Info("Review created")

	review.UserName = author.Name
	review.UserImage = author.ProfileImage
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, actorID, reviewID string, req *UpdateReviewRequest) (*models.Review, error) {
	// Validate request
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		req.Comment = &trimmed
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyReview(Actor{ID: actorID}, review); err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.Images != nil {
		review.Images = cleanStrings(req.Images)
	}
	review.UpdatedAt = time.Now()

	if err := s.store.Reviews.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyReviewNotFound)
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	metrics.ReviewMutationsTotal.WithLabelValues("update").Inc()

	if _, err := s.aggregator.Recompute(ctx, review.VendorID); err != nil {
		return nil, err
	}

	if err := s.populateAuthors(ctx, []*models.Review{review}); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actorID, reviewID string) error {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.policy.CanModifyReview(Actor{ID: actorID}, review); err != nil {
		return err
	}

	if err := s.store.Reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, i18n.KeyReviewNotFound)
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}
	metrics.ReviewMutationsTotal.WithLabelValues("delete").Inc()

	if _, err := s.aggregator.Recompute(ctx, review.VendorID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"review_id": reviewID,
		"vendor_id": review.VendorID,
	}).Info("Review deleted")
	return nil
}

// MarkHelpful records the caller's vote; repeating it overwrites the earlier
// value. An omitted vote counts as helpful.
func (s *ReviewService) MarkHelpful(ctx context.Context, actorID, reviewID string, req *HelpfulRequest) (*models.Review, error) {
	helpful := true
	if req != nil && req.Helpful != nil {
		helpful = *req.Helpful
	}

	review, err := s.store.Reviews.SetHelpful(ctx, reviewID, actorID, helpful)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyReviewNotFound)
		}
		return nil, fmt.Errorf("failed to record helpful vote: %w", err)
	}

	if err := s.populateAuthors(ctx, []*models.Review{review}); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListForVendor(ctx context.Context, vendorID string, params utils.PaginationParams) (*VendorReviewsResult, error) {
	reviews, pagination, err := s.list(ctx, repository.ReviewFilter{VendorID: vendorID}, params)
	if err != nil {
		return nil, err
	}

	// Unknown vendors report an empty summary
	var stats models.RatingSummary
	vendor, err := s.store.Users.FindByID(ctx, vendorID)
	switch {
	case err == nil:
		stats = vendor.RatingSummary
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}

	return &VendorReviewsResult{
		Reviews:     reviews,
		Pagination:  pagination,
		RatingStats: stats,
	}, nil
}

func (s *ReviewService) ListAll(ctx context.Context, filter ReviewFilter, params utils.PaginationParams) (*ReviewListResult, error) {
	if filter.Rating != 0 && (filter.Rating < models.MinRating || filter.Rating > models.MaxRating) {
		return nil, newError(ErrValidation, i18n.KeyValidationInvalid, "rating")
	}

	reviews, pagination, err := s.list(ctx, repository.ReviewFilter{VendorID: filter.VendorID, Rating: filter.Rating}, params)
	if err != nil {
		return nil, err
	}
	return &ReviewListResult{Reviews: reviews, Pagination: pagination}, nil
}

// GetMine returns the caller's review of a vendor.
func (s *ReviewService) GetMine(ctx context.Context, actorID, vendorID string) (*models.Review, error) {
	review, err := s.store.Reviews.FindByUserAndVendor(ctx, actorID, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyReviewNotFound)
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}

	if err := s.populateAuthors(ctx, []*models.Review{review}); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) list(ctx context.Context, filter repository.ReviewFilter, params utils.PaginationParams) ([]models.Review, utils.Pagination, error) {
	page := repository.Page{
		Offset:   params.Offset(),
		Limit:    params.Limit,
		SortBy:   params.SortBy,
		SortDesc: params.SortDesc,
	}

	reviews, total, err := s.store.Reviews.List(ctx, filter, page)
	if err != nil {
		return nil, utils.Pagination{}, fmt.Errorf("failed to list reviews: %w", err)
	}

	ptrs := make([]*models.Review, len(reviews))
	for i := range reviews {
		ptrs[i] = &reviews[i]
	}
	if err := s.populateAuthors(ctx, ptrs); err != nil {
		return nil, utils.Pagination{}, err
	}

	return reviews, utils.NewPagination(params, total, len(reviews)), nil
}

func (s *ReviewService) findReview(ctx context.Context, reviewID string) (*models.Review, error) {
	review, err := s.store.Reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyReviewNotFound)
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return review, nil
}

// populateAuthors fills the author's display name and image.
func (s *ReviewService) populateAuthors(ctx context.Context, reviews []*models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}

	users, err := s.store.Users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load review authors: %w", err)
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, r := range reviews {
		if u, ok := byID[r.UserID]; ok {
			r.UserName = u.Name
			r.UserImage = u.ProfileImage
		}
	}
	return nil
}

// cleanStrings trims entries and drops empty ones.
func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
