// internal/repository/memrepo/store.go
package memrepo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

// db holds every collection behind one lock, so each repository call is
// atomic with respect to the others.
type db struct {
	mu       sync.RWMutex
	users    map[string]models.User
	products map[string]models.Product
	carts    map[string]models.Cart // keyed by user id
	orders   map[string]models.Order
	reviews  map[string]models.Review
	waitlist map[string]models.WaitlistEntry
	now      func() time.Time
}

// New returns an empty in-memory store.
func New() *repository.Store {
	d := &db{
		users:    make(map[string]models.User),
		products: make(map[string]models.Product),
		carts:    make(map[string]models.Cart),
		orders:   make(map[string]models.Order),
		reviews:  make(map[string]models.Review),
		waitlist: make(map[string]models.WaitlistEntry),
		now:      time.Now,
	}
	return repository.NewStore(
		&userRepo{d}, &productRepo{d}, &cartRepo{d},
		&orderRepo{d}, &reviewRepo{d}, &waitlistRepo{d},
		nil,
	)
}

func newID() string {
	return uuid.NewString()
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneProduct(p models.Product) models.Product {
	p.Images = cloneStrings(p.Images)
	if p.DiscountedPrice != nil {
		v := *p.DiscountedPrice
		p.DiscountedPrice = &v
	}
	return p
}

func cloneCart(c models.Cart) models.Cart {
	items := make([]models.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Products))
	copy(items, o.Products)
	o.Products = items
	return o
}

func cloneReview(r models.Review) models.Review {
	r.Images = cloneStrings(r.Images)
	if r.Images == nil {
		r.Images = []string{}
	}
	votes := make([]models.HelpfulVote, len(r.Helpful))
	copy(votes, r.Helpful)
	r.Helpful = votes
	return r
}

func window[T any](items []T, page repository.Page) []T {
	if page.Offset < 0 || page.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return items[page.Offset:end]
}

func sortReviews(reviews []models.Review, page repository.Page) {
	sort.SliceStable(reviews, func(i, j int) bool {
		a, b := reviews[i], reviews[j]
		if page.SortBy == "rating" && a.Rating != b.Rating {
			if page.SortDesc {
				return a.Rating > b.Rating
			}
			return a.Rating < b.Rating
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if page.SortDesc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}
