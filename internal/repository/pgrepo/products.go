// internal/repository/pgrepo/products.go
package pgrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type productRepo struct{ db *gorm.DB }

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = newID()
	}
	row := toProductRow(product)
	return translate(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if !isID(id) {
		return nil, repository.ErrNotFound
	}
	var row productRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	product := row.model()
	return &product, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if ids = onlyIDs(ids); len(ids) == 0 {
		return []models.Product{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	switch {
	case filter.VendorID != "":
		if !isID(filter.VendorID) {
			return []models.Product{}, nil
		}
		query = query.Where("vendor_id = ?", filter.VendorID)
	case len(filter.VendorIDs) > 0:
		vendorIDs := onlyIDs(filter.VendorIDs)
		if len(vendorIDs) == 0 {
			return []models.Product{}, nil
		}
		query = query.Where("vendor_id IN ?", vendorIDs)
	}
	return r.find(query)
}

func (r *productRepo) find(query *gorm.DB) ([]models.Product, error) {
	var rows []productRow
	if err := query.Order("created_at DESC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.model())
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	if !isID(product.ID) {
		return repository.ErrNotFound
	}
	row := toProductRow(product)
	// Select("*") writes zero values and NULL discounted prices too
	result := r.db.WithContext(ctx).Model(&productRow{}).Where("id = ?", product.ID).
		Select("*").Omit("id", "created_at").Updates(&row)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	if !isID(id) {
		return repository.ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&productRow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
