// internal/repository/memrepo/carts.go
package memrepo

import (
	"context"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type cartRepo struct{ d *db }

func (r *cartRepo) FindByUser(_ context.Context, userID string) (*models.Cart, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	c, ok := r.d.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c = cloneCart(c)
	return &c, nil
}

func (r *cartRepo) AddItem(_ context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	c, ok := r.d.carts[userID]
	if !ok {
		c = models.Cart{ID: newID(), UserID: userID, Items: []models.CartItem{}}
	}
	c = cloneCart(c)

	if line, found := c.Line(productID); found {
		line.Quantity += quantity
	} else {
		c.Items = append(c.Items, models.CartItem{
			ID:        newID(),
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	c.UpdatedAt = r.d.now()
	r.d.carts[userID] = c

	out := cloneCart(c)
	return &out, nil
}

func (r *cartRepo) RemoveItem(_ context.Context, userID, itemID string) (*models.Cart, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	c, ok := r.d.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	kept := make([]models.CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(c.Items) {
		return nil, repository.ErrNotFound
	}
	c.Items = kept
	c.UpdatedAt = r.d.now()
	r.d.carts[userID] = c

	out := cloneCart(c)
	return &out, nil
}

func (r *cartRepo) Clear(_ context.Context, userID string) (*models.Cart, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	c, ok := r.d.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Items = []models.CartItem{}
	c.UpdatedAt = r.d.now()
	r.d.carts[userID] = c

	out := cloneCart(c)
	return &out, nil
}
