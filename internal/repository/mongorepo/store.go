// internal/repository/mongorepo/store.go
package mongorepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

// Collection names
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	CartsCollection    = "carts"
	OrdersCollection   = "orders"
	ReviewsCollection  = "reviews"
	WaitlistCollection = "waitlists"
)

// base bounds every call with the configured per-operation timeout.
type base struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (b base) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, b.timeout)
}

// New builds a repository.Store over db. Closing the store disconnects client.
func New(client *mongo.Client, db *mongo.Database, timeout time.Duration) *repository.Store {
	at := func(name string) base {
		return base{coll: db.Collection(name), timeout: timeout}
	}

	return repository.NewStore(
		&userRepo{at(UsersCollection)},
		&productRepo{at(ProductsCollection)},
		&cartRepo{at(CartsCollection)},
		&orderRepo{at(OrdersCollection)},
		&reviewRepo{at(ReviewsCollection)},
		&waitlistRepo{at(WaitlistCollection)},
		func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	)
}

func newID() string {
	return uuid.NewString()
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}
