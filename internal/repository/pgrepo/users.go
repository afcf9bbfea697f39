// internal/repository/pgrepo/users.go
package pgrepo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type userRepo struct{ db *gorm.DB }

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	row := toUserRow(user)
	return translate(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !isID(id) {
		return nil, repository.ErrNotFound
	}
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	user := row.model()
	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	user := row.model()
	return &user, nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if ids = onlyIDs(ids); len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

func (r *userRepo) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return r.find(r.db.WithContext(ctx).Where("role = ?", string(role)).Order("created_at ASC"))
}

func (r *userRepo) find(query *gorm.DB) ([]models.User, error) {
	var rows []userRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.model())
	}
	return users, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	if !isID(user.ID) {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":                    user.Name,
		"email":                   user.Email,
		"role":                    string(user.Role),
		"address":                 user.Address,
		"phone":                   user.Phone,
		"location":                user.Location,
		"aadhar":                  user.Aadhar,
		"profile_image":           user.ProfileImage,
		"profile_completed":       user.ProfileCompleted,
		"is_medicine_verified":    user.IsMedicineVerified,
		"pharmacy_license_number": user.PharmacyLicenseNumber,
		"business_name":           user.BusinessName,
		"document_url":            user.DocumentURL,
		"updated_at":              user.UpdatedAt,
	})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateRatingSummary(ctx context.Context, userID string, summary models.RatingSummary) error {
	if !isID(userID) {
		return repository.ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"average_rating":      summary.AverageRating,
			"num_reviews":         summary.NumReviews,
			"rating_distribution": distribution(summary.RatingDistribution),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update rating summary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
