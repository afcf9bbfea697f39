// internal/services/policy.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role models.Role
}

// Policy holds every ownership and role rule in one place.
type Policy struct{}

func (Policy) CanModifyReview(actor Actor, review *models.Review) error {
	if actor.ID == "" || review.UserID != actor.ID {
		return newError(ErrForbidden, i18n.KeyReviewNotOwner)
	}
	return nil
}

func (Policy) CanModifyProduct(actor Actor, product *models.Product) error {
	if actor.Role != models.RoleVendor {
		return newError(ErrForbidden, i18n.KeyProductVendorOnly)
	}
	if product.VendorID != actor.ID {
		return newError(ErrForbidden, i18n.KeyProductNotOwner)
	}
	return nil
}

func (Policy) CanAccessOrder(actor Actor, order *models.Order) error {
	if actor.ID == "" || order.UserID != actor.ID {
		return newError(ErrForbidden, i18n.KeyOrderNotOwner)
	}
	return nil
}

func (Policy) RequireVendor(actor Actor) error {
	if actor.Role != models.RoleVendor {
		return newError(ErrForbidden, i18n.KeyVendorOnly)
	}
	return nil
}

// loadActor resolves a token's user id to an Actor. A token whose account no
// longer exists is treated as unauthenticated.
func loadActor(ctx context.Context, users repository.UserRepository, userID string) (Actor, *models.User, error) {
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Actor{}, nil, newError(ErrUnauthorized, i18n.KeyAuthInvalidToken)
		}
		return Actor{}, nil, fmt.Errorf("failed to load user: %w", err)
	}
	return Actor{ID: user.ID, Role: user.Role}, user, nil
}
