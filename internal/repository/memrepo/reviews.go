// internal/repository/memrepo/reviews.go
package memrepo

import (
	"context"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type reviewRepo struct{ d *db }

func (r *reviewRepo) Create(_ context.Context, review *models.Review) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	for _, existing := range r.d.reviews {
		if existing.UserID == review.UserID && existing.VendorID == review.VendorID {
			return repository.ErrDuplicate
		}
	}
	if review.ID == "" {
		review.ID = newID()
	}
	if review.Helpful == nil {
		review.Helpful = []models.HelpfulVote{}
	}
	r.d.reviews[review.ID] = cloneReview(*review)
	return nil
}

func (r *reviewRepo) FindByID(_ context.Context, id string) (*models.Review, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	rv, ok := r.d.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rv = cloneReview(rv)
	return &rv, nil
}

func (r *reviewRepo) FindByUserAndVendor(_ context.Context, userID, vendorID string) (*models.Review, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, rv := range r.d.reviews {
		if rv.UserID == userID && rv.VendorID == vendorID {
			rv = cloneReview(rv)
			return &rv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *reviewRepo) List(_ context.Context, filter repository.ReviewFilter, page repository.Page) ([]models.Review, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	matched := []models.Review{}
	for _, rv := range r.d.reviews {
		if filter.VendorID != "" && rv.VendorID != filter.VendorID {
			continue
		}
		if filter.Rating != 0 && rv.Rating != filter.Rating {
			continue
		}
		matched = append(matched, cloneReview(rv))
	}
	sortReviews(matched, page)
	return window(matched, page), int64(len(matched)), nil
}

func (r *reviewRepo) Update(_ context.Context, review *models.Review) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	current, ok := r.d.reviews[review.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Rating = review.Rating
	current.Title = review.Title
	current.Comment = review.Comment
	current.Images = cloneStrings(review.Images)
	current.UpdatedAt = review.UpdatedAt
	r.d.reviews[review.ID] = current
	return nil
}

func (r *reviewRepo) Delete(_ context.Context, id string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.reviews, id)
	return nil
}

func (r *reviewRepo) SetHelpful(_ context.Context, reviewID, userID string, helpful bool) (*models.Review, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	rv, ok := r.d.reviews[reviewID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rv = cloneReview(rv)

	replaced := false
	for i := range rv.Helpful {
		if rv.Helpful[i].UserID == userID {
			rv.Helpful[i].Helpful = helpful
			replaced = true
			break
		}
	}
	if !replaced {
		rv.Helpful = append(rv.Helpful, models.HelpfulVote{UserID: userID, Helpful: helpful})
	}
	r.d.reviews[reviewID] = rv

	out := cloneReview(rv)
	return &out, nil
}

func (r *reviewRepo) RatingHistogram(_ context.Context, vendorID string) (map[int]int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	hist := make(map[int]int64)
	for _, rv := range r.d.reviews {
		if rv.VendorID == vendorID {
			hist[rv.Rating]++
		}
	}
	return hist, nil
}
