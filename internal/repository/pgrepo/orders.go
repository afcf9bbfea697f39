// internal/repository/pgrepo/orders.go
package pgrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type orderRepo struct{ db *gorm.DB }

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.position ASC")
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = newID()
	}
	row := toOrderRow(order)
	// Items are inserted in the same transaction as the header
	return translate(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	if !isID(id) {
		return nil, repository.ErrNotFound
	}
	var row orderRow
	if err := r.db.WithContext(ctx).Preload("Items", orderedItems).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	order := row.model()
	return &order, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	if !isID(userID) {
		return []models.Order{}, nil
	}
	var rows []orderRow
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.model())
	}
	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	if !isID(id) {
		return repository.ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(&orderRow{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
