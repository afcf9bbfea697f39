// internal/repository/pgrepo/carts.go
package pgrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expiryeaze/expiryeaze-backend/internal/database"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type cartRepo struct{ db *gorm.DB }

func loadCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var row cartRow
	err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.created_at ASC, cart_items.id ASC")
	}).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	cart := row.model()
	return &cart, nil
}

func (r *cartRepo) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	if !isID(userID) {
		return nil, repository.ErrNotFound
	}
	return loadCart(r.db.WithContext(ctx), userID)
}

// AddItem upserts the cart and merges the line with ON CONFLICT, so
// concurrent adds of the same product sum their quantities.
func (r *cartRepo) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if !isID(userID) || !isID(productID) {
		return nil, repository.ErrNotFound
	}
	var cart *models.Cart
	err := database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		now := time.Now()

		// Create the cart when missing
		header := cartRow{ID: newID(), UserID: userID, UpdatedAt: now}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": now}),
		}).Omit("Items").Create(&header).Error; err != nil {
			return err
		}

		var cartID string
		if err := tx.Model(&cartRow{}).Where("user_id = ?", userID).Pluck("id", &cartID).Error; err != nil {
			return err
		}

		line := cartItemRow{ID: newID(), CartID: cartID, ProductID: productID, Quantity: quantity, CreatedAt: now}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			}),
		}).Create(&line).Error; err != nil {
			return err
		}

		var err error
		cart, err = loadCart(tx, userID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return cart, nil
}

func (r *cartRepo) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	if !isID(userID) || !isID(itemID) {
		return nil, repository.ErrNotFound
	}
	var cart *models.Cart
	err := database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND cart_id IN (?)", itemID,
			tx.Model(&cartRow{}).Select("id").Where("user_id = ?", userID),
		).Delete(&cartItemRow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}

		if err := tx.Model(&cartRow{}).Where("user_id = ?", userID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		var err error
		cart, err = loadCart(tx, userID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return cart, nil
}

func (r *cartRepo) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	if !isID(userID) {
		return nil, repository.ErrNotFound
	}
	var cart *models.Cart
	err := database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		result := tx.Model(&cartRow{}).Where("user_id = ?", userID).Update("updated_at", time.Now())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}

		if err := tx.Where("cart_id IN (?)",
			tx.Model(&cartRow{}).Select("id").Where("user_id = ?", userID),
		).Delete(&cartItemRow{}).Error; err != nil {
			return err
		}

		var err error
		cart, err = loadCart(tx, userID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return cart, nil
}
