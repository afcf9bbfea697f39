// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type CartService struct {
	store *repository.Store
}

type AddToCartRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,gte=1,lte=1000"`
}

type RemoveFromCartRequest struct {
	UserID string `json:"userId"`
	ItemID string `json:"itemId" validate:"required"`
}

func NewCartService(store *repository.Store) *CartService {
	return &CartService{
		store: store,
	}
}

// Get returns the user's cart with product details; a user without a cart
// gets an empty one.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.store.Carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if err := s.populateProducts(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem merges quantity into the line for the product, creating the cart
// and the line when needed.
func (s *CartService) AddItem(ctx context.Context, userID string, req *AddToCartRequest) (*models.Cart, error) {
	// Validate request
	if err := validate(req); err != nil {
		return nil, err
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if _, err := s.store.Products.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyProductNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	cart, err := s.store.Carts.AddItem(ctx, userID, req.ProductID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	if err := s.populateProducts(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, req *RemoveFromCartRequest) (*models.Cart, error) {
	// Validate request
	if err := validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.Carts.FindByUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyCartNotFound)
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart, err := s.store.Carts.RemoveItem(ctx, userID, req.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyCartItemNotFound)
		}
		return nil, fmt.Errorf("failed to remove item from cart: %w", err)
	}

	if err := s.populateProducts(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart in a single update.
func (s *CartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.store.Carts.Clear(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyCartNotFound)
		}
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) populateProducts(ctx context.Context, cart *models.Cart) error {
	if len(cart.Items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.store.Products.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load cart products: %w", err)
	}
	if err := populateVendorNames(ctx, s.store.Users, products); err != nil {
		return err
	}

	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range cart.Items {
		// Deleted products leave the line without details
		cart.Items[i].Product = byID[cart.Items[i].ProductID]
	}
	return nil
}
