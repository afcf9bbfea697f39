// internal/repository/memrepo/orders.go
package memrepo

import (
	"context"
	"sort"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type orderRepo struct{ d *db }

func (r *orderRepo) Create(_ context.Context, order *models.Order) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if order.ID == "" {
		order.ID = newID()
	}
	if _, exists := r.d.orders[order.ID]; exists {
		return repository.ErrDuplicate
	}
	r.d.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *orderRepo) FindByID(_ context.Context, id string) (*models.Order, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	o, ok := r.d.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	out := []models.Order{}
	for _, o := range r.d.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id string, from, to models.OrderStatus) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	o, ok := r.d.orders[id]
	if !ok || o.Status != from {
		return repository.ErrNotFound
	}
	o.Status = to
	r.d.orders[id] = o
	return nil
}
