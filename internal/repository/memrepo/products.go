// internal/repository/memrepo/products.go
package memrepo

import (
	"context"
	"sort"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type productRepo struct{ d *db }

func (r *productRepo) Create(_ context.Context, product *models.Product) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if product.ID == "" {
		product.ID = newID()
	}
	if _, exists := r.d.products[product.ID]; exists {
		return repository.ErrDuplicate
	}
	r.d.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	p, ok := r.d.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *productRepo) FindByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.d.products[id]; ok {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *productRepo) List(_ context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	vendors := make(map[string]bool, len(filter.VendorIDs))
	for _, id := range filter.VendorIDs {
		vendors[id] = true
	}

	out := []models.Product{}
	for _, p := range r.d.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.VendorID != "" && p.VendorID != filter.VendorID {
			continue
		}
		if len(vendors) > 0 && !vendors[p.VendorID] {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *productRepo) Update(_ context.Context, product *models.Product) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	r.d.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.products, id)
	return nil
}
