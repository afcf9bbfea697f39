// internal/repository/mongorepo/reviews.go
package mongorepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type reviewRepo struct{ base }

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if review.ID == "" {
		review.ID = newID()
	}
	if review.Helpful == nil {
		review.Helpful = []models.HelpfulVote{}
	}
	if review.Images == nil {
		review.Images = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return translate(err)
	}
	return nil
}

func (r *reviewRepo) findOne(ctx context.Context, filter bson.M) (*models.Review, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r *reviewRepo) FindByID(ctx context.Context, id string) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *reviewRepo) FindByUserAndVendor(ctx context.Context, userID, vendorID string) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"user": userID, "vendor": vendorID})
}

func (r *reviewRepo) List(ctx context.Context, filter repository.ReviewFilter, page repository.Page) ([]models.Review, int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := bson.M{}
	if filter.VendorID != "" {
		query["vendor"] = filter.VendorID
	}
	if filter.Rating != 0 {
		query["rating"] = filter.Rating
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	direction := 1
	if page.SortDesc {
		direction = -1
	}
	sort := bson.D{}
	if page.SortBy == "rating" {
		sort = append(sort, bson.E{Key: "rating", Value: direction})
	}
	sort = append(sort, bson.E{Key: "createdAt", Value: direction}, bson.E{Key: "_id", Value: 1})

	opts := options.Find().SetSort(sort).SetSkip(int64(page.Offset))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *reviewRepo) Update(ctx context.Context, review *models.Review) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if review.Images == nil {
		review.Images = []string{}
	}
	update := bson.M{"$set": bson.M{
		"rating":    review.Rating,
		"title":     review.Title,
		"comment":   review.Comment,
		"images":    review.Images,
		"updatedAt": review.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": review.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetHelpful overwrites the user's vote in place, or appends it when the user
// has not voted yet. Each step is a single-document update.
func (r *reviewRepo) SetHelpful(ctx context.Context, reviewID, userID string, helpful bool) (*models.Review, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	for attempt := 0; attempt < 2; attempt++ {
		review, err := r.overwriteVote(ctx, reviewID, userID, helpful)
		if !errors.Is(err, repository.ErrNotFound) {
			return review, err
		}

		var out models.Review
		err = r.coll.FindOneAndUpdate(ctx,
			bson.M{"_id": reviewID, "helpful.user": bson.M{"$ne": userID}},
			bson.M{"$push": bson.M{"helpful": models.HelpfulVote{UserID: userID, Helpful: helpful}}},
			returnAfter,
		).Decode(&out)
		if err == nil {
			return &out, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		// Either the review is gone or a concurrent request pushed the vote.
		count, err := r.coll.CountDocuments(ctx, bson.M{"_id": reviewID})
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, repository.ErrNotFound
		}
	}
	return r.overwriteVote(ctx, reviewID, userID, helpful)
}

func (r *reviewRepo) overwriteVote(ctx context.Context, reviewID, userID string, helpful bool) (*models.Review, error) {
	var review models.Review
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": reviewID, "helpful.user": userID},
		bson.M{"$set": bson.M{"helpful.$.helpful": helpful}},
		returnAfter,
	).Decode(&review)
	if err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

type ratingBucket struct {
	Rating int   `bson:"_id"`
	Count  int64 `bson:"count"`
}

func (r *reviewRepo) RatingHistogram(ctx context.Context, vendorID string) (map[int]int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"vendor": vendorID}}},
		{{Key: "$group", Value: bson.M{"_id": "$rating", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []ratingBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode rating histogram: %w", err)
	}

	hist := make(map[int]int64, len(buckets))
	for _, b := range buckets {
		hist[b.Rating] = b.Count
	}
	return hist, nil
}
