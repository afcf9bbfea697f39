// internal/services/product_service.go
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
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type ProductService struct {
	store  *repository.Store
	policy Policy
}

type CreateProductRequest struct {
	Name            string    `json:"name" validate:"required,notblank,max=200"`
	Description     string    `json:"description" validate:"required,notblank"`
	Price           float64   `json:"price" validate:"gt=0"`
	DiscountedPrice *float64  `json:"discountedPrice" validate:"omitempty,gte=0"`
	Category        string    `json:"category" validate:"required,notblank"`
	ExpiryDate      time.Time `json:"expiryDate" validate:"required"`
	Stock           int       `json:"stock" validate:"gte=0"`
	ImageURL        string    `json:"imageUrl"`
	Images          []string  `json:"images" validate:"omitempty,max=10"`
	ExpiryPhoto     string    `json:"expiryPhoto"`
}

// UpdateProductRequest changes only the fields present in the body.
// discountedPrice may also be null, which clears it.
type UpdateProductRequest struct {
	Name            *string       `json:"name" validate:"omitempty,notblank,max=200"`
	Description     *string       `json:"description" validate:"omitempty,notblank"`
	Price           *float64      `json:"price" validate:"omitempty,gt=0"`
	DiscountedPrice OptionalFloat `json:"discountedPrice"`
	Category        *string       `json:"category" validate:"omitempty,notblank"`
	ExpiryDate      *time.Time    `json:"expiryDate"`
	Stock           *int          `json:"stock" validate:"omitempty,gte=0"`
	ImageURL        *string       `json:"imageUrl"`
	Images          []string      `json:"images" validate:"omitempty,max=10"`
	ExpiryPhoto     *string       `json:"expiryPhoto"`
}

type ProductFilter struct {
	Category string
	VendorID string
}

func NewProductService(store *repository.Store) *ProductService {
	return &ProductService{
		store: store,
	}
}

// List returns matching products, newest first, with vendor names.
func (s *ProductService) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	products, err := s.store.Products.List(ctx, repository.ProductFilter{
		Category: strings.TrimSpace(filter.Category),
		VendorID: strings.TrimSpace(filter.VendorID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if err := populateVendorNames(ctx, s.store.Users, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	list := []models.Product{*product}
	if err := populateVendorNames(ctx, s.store.Users, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *ProductService) Create(ctx context.Context, actorID string, req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.DiscountedPrice != nil && *req.DiscountedPrice > req.Price {
		return nil, newError(ErrValidation, i18n.KeyProductInvalidPrice)
	}

	actor, vendor, err := loadActor(ctx, s.store.Users, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireVendor(actor); err != nil {
		return nil, err
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		imageURL = models.DefaultProductImage
	}

	now := time.Now()
	product := &models.Product{
		BaseModel:       models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		Category:        strings.TrimSpace(req.Category),
		ExpiryDate:      req.ExpiryDate,
		Stock:           req.Stock,
		ImageURL:        imageURL,
		Images:          cleanStrings(req.Images),
		ExpiryPhoto:     strings.TrimSpace(req.ExpiryPhoto),
		VendorID:        actor.ID,
	}

	if err := s.store.Products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"vendor_id":  actor.ID,
	}).Info("Product created")

	product.VendorName = vendor.Name
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, actorID, id string, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := validate(req); err != nil {
		return nil, err
	}

	actor, vendor, err := loadActor(ctx, s.store.Users, actorID)
	if err != nil {
		return nil, err
	}

	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyProduct(actor, product); err != nil {
		return nil, err
	}

	// Update fields
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.DiscountedPrice.Set {
		product.DiscountedPrice = req.DiscountedPrice.Value
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.ExpiryDate != nil {
		product.ExpiryDate = *req.ExpiryDate
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*req.ImageURL)
		if product.ImageURL == "" {
			product.ImageURL = models.DefaultProductImage
		}
	}
	if req.Images != nil {
		product.Images = cleanStrings(req.Images)
	}
	if req.ExpiryPhoto != nil {
		product.ExpiryPhoto = strings.TrimSpace(*req.ExpiryPhoto)
	}

	if product.DiscountedPrice != nil && (*product.DiscountedPrice < 0 || *product.DiscountedPrice > product.Price) {
		return nil, newError(ErrValidation, i18n.KeyProductInvalidPrice)
	}

	product.UpdatedAt = time.Now()
	if err := s.store.Products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyProductNotFound)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	product.VendorName = vendor.Name
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, actorID, id string) error {
	actor, _, err := loadActor(ctx, s.store.Users, actorID)
	if err != nil {
		return err
	}

	product, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanModifyProduct(actor, product); err != nil {
		return err
	}

	if err := s.store.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, i18n.KeyProductNotFound)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logrus.WithField("product_id", id).Info("Product deleted")
	return nil
}

func (s *ProductService) find(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.store.Products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyProductNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}

// populateVendorNames fills VendorName from the vendors' user records.
func populateVendorNames(ctx context.Context, users repository.UserRepository, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, p := range products {
		if !seen[p.VendorID] {
			seen[p.VendorID] = true
			ids = append(ids, p.VendorID)
		}
	}

	vendors, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load vendors: %w", err)
	}

	names := make(map[string]string, len(vendors))
	for _, v := range vendors {
		names[v.ID] = v.Name
	}
	for i := range products {
		products[i].VendorName = names[products[i].VendorID]
	}
	return nil
}
