// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/metrics"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

// totalTolerance is how far a client-supplied total may drift from the computed one.
const totalTolerance = 0.01

type OrderService struct {
	store  *repository.Store
	policy Policy
}

type OrderLineRequest struct {
	ProductID string `json:"product" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=1000"`
}

type PlaceOrderRequest struct {
	UserID          string             `json:"userId"`
	Products        []OrderLineRequest `json:"products" validate:"required,min=1,dive"`
	TotalAmount     *float64           `json:"totalAmount" validate:"omitempty,gte=0"`
	ShippingAddress string             `json:"shippingAddress" validate:"required,notblank,max=500"`
}

func NewOrderService(store *repository.Store) *OrderService {
	return &OrderService{
		store: store,
	}
}

// Place snapshots each product's current effective price and computes the
// total server-side.
func (s *OrderService) Place(ctx context.Context, userID string, req *PlaceOrderRequest) (*models.Order, error) {
	if len(req.Products) == 0 {
		return nil, newError(ErrValidation, i18n.KeyOrderEmpty)
	}
	// Validate request
	if err := validate(req); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.Products))
	for _, line := range req.Products {
		ids = append(ids, line.ProductID)
	}
	products, err := s.store.Products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var cents int64
	lines := make([]models.OrderItem, 0, len(req.Products))
	for _, line := range req.Products {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, newError(ErrNotFound, i18n.KeyProductNotFound)
		}
		price := product.EffectivePrice()
		lines = append(lines, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     price,
		})
		cents += int64(math.Round(price*100)) * int64(line.Quantity)
	}
	total := float64(cents) / 100

	if req.TotalAmount != nil && math.Abs(*req.TotalAmount-total) > totalTolerance {
		return nil, newError(ErrValidation, i18n.KeyOrderTotalMismatch, total)
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Products:        lines,
		TotalAmount:     total,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.store.Orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	metrics.OrdersPlacedTotal.Inc()

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    total,
	}).Info("Order placed")
	return order, nil
}

// ListForUser returns the user's orders, newest first, with product details.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.store.Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, o := range orders {
		for _, line := range o.Products {
			if !seen[line.ProductID] {
				seen[line.ProductID] = true
				ids = append(ids, line.ProductID)
			}
		}
	}
	if len(ids) == 0 {
		return orders, nil
	}

	products, err := s.store.Products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range orders {
		for j := range orders[i].Products {
			orders[i].Products[j].Product = byID[orders[i].Products[j].ProductID]
		}
	}
	return orders, nil
}

// Cancel moves a pending order to Cancelled.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.store.Orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyOrderNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if err := s.policy.CanAccessOrder(Actor{ID: userID}, order); err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusPending {
		return nil, newError(ErrConflict, i18n.KeyOrderNotCancellable)
	}
	if err := s.store.Orders.UpdateStatus(ctx, orderID, models.OrderStatusPending, models.OrderStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Status changed since it was read
			return nil, newError(ErrConflict, i18n.KeyOrderNotCancellable)
		}
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	metrics.OrdersCancelledTotal.Inc()

	order.Status = models.OrderStatusCancelled
	return order, nil
}
