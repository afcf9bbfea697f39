// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique key.
	ErrDuplicate = errors.New("duplicate key")
)

// Page selects a window of a sorted listing.
type Page struct {
	Offset   int
	Limit    int
	SortBy   string // createdAt or rating
	SortDesc bool
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.User, error)
	// UpdateProfile writes every field except the password hash and the rating cache.
	UpdateProfile(ctx context.Context, user *models.User) error
	// UpdateRatingSummary overwrites only the rating cache of the user.
	UpdateRatingSummary(ctx context.Context, userID string, summary models.RatingSummary) error
}

type ProductFilter struct {
	Category  string
	VendorID  string
	VendorIDs []string
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	// List returns matching products, newest first.
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type CartRepository interface {
	FindByUser(ctx context.Context, userID string) (*models.Cart, error)
	// AddItem merges quantity into the line for productID, creating the cart
	// and the line when needed.
	AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error)
	Clear(ctx context.Context, userID string) (*models.Cart, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	// UpdateStatus moves an order from one status to another and returns
	// ErrNotFound when the order is missing or no longer in status from.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error
}

type ReviewFilter struct {
	VendorID string
	Rating   int
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id string) (*models.Review, error)
	FindByUserAndVendor(ctx context.Context, userID, vendorID string) (*models.Review, error)
	List(ctx context.Context, filter ReviewFilter, page Page) ([]models.Review, int64, error)
	// Update writes rating, title, comment and images.
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	// SetHelpful records the user's vote on a review, replacing any earlier vote.
	SetHelpful(ctx context.Context, reviewID, userID string, helpful bool) (*models.Review, error)
	// RatingHistogram counts the vendor's reviews per star value.
	RatingHistogram(ctx context.Context, vendorID string) (map[int]int64, error)
}

type WaitlistRepository interface {
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	FindByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.WaitlistEntry, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
	Reviews  ReviewRepository
	Waitlist WaitlistRepository

	closer func(context.Context) error
}

// NewStore assembles a Store; closer may be nil.
func NewStore(users UserRepository, products ProductRepository, carts CartRepository,
	orders OrderRepository, reviews ReviewRepository, waitlist WaitlistRepository,
	closer func(context.Context) error) *Store {
	return &Store{
		Users:    users,
		Products: products,
		Carts:    carts,
		Orders:   orders,
		Reviews:  reviews,
		Waitlist: waitlist,
		closer:   closer,
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
