// internal/repository/mongorepo/users.go
package mongorepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type userRepo struct{ base }

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = newID()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return translate(err)
	}
	return nil
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

func (r *userRepo) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.find(ctx, bson.M{"role": role}, opts)
}

func (r *userRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	user.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":                  user.Name,
		"email":                 user.Email,
		"role":                  user.Role,
		"address":               user.Address,
		"phone":                 user.Phone,
		"location":              user.Location,
		"aadhar":                user.Aadhar,
		"profileImage":          user.ProfileImage,
		"profileCompleted":      user.ProfileCompleted,
		"isMedicineVerified":    user.IsMedicineVerified,
		"pharmacyLicenseNumber": user.PharmacyLicenseNumber,
		"businessName":          user.BusinessName,
		"documentUrl":           user.DocumentURL,
		"updatedAt":             user.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateRatingSummary(ctx context.Context, userID string, summary models.RatingSummary) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"averageRating":      summary.AverageRating,
		"numReviews":         summary.NumReviews,
		"ratingDistribution": summary.RatingDistribution,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating summary: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
