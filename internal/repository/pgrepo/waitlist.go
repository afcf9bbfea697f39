// internal/repository/pgrepo/waitlist.go
package pgrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

type waitlistRepo struct{ db *gorm.DB }

func (r *waitlistRepo) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = newID()
	}
	row := toWaitlistRow(entry)
	return translate(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *waitlistRepo) FindByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.WaitlistEntry, error) {
	var row waitlistRow
	err := r.db.WithContext(ctx).Where("email = ? AND role = ?", email, string(role)).First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	entry := row.model()
	return &entry, nil
}
