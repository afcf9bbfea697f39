package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

func newProductRequest() *CreateProductRequest {
	return &CreateProductRequest{
		Name:        "Paneer 200g",
		Description: "Fresh paneer",
		Price:       90,
		Category:    "dairy",
		ExpiryDate:  time.Now().Add(72 * time.Hour),
		Stock:       4,
	}
}

func TestProductCreateRequiresVendor(t *testing.T) {
	store := newStore()
	service := NewProductService(store)
	ctx := context.Background()

	buyer := seedUser(t, store, "buyer", models.RoleUser)
	_, err := service.Create(ctx, buyer.ID, newProductRequest())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.Create(ctx, "ghost", newProductRequest())
	assert.ErrorIs(t, err, ErrUnauthorized)

	vendor := seedUser(t, store, "vendor", models.RoleVendor)
	product, err := service.Create(ctx, vendor.ID, newProductRequest())
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, product.VendorID)
	assert.Equal(t, "vendor", product.VendorName)
	assert.Equal(t, models.DefaultProductImage, product.ImageURL)

	req := newProductRequest()
	req.DiscountedPrice = floatPtr(120)
	_, err = service.Create(ctx, vendor.ID, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductUpdateDiscountTriState(t *testing.T) {
	store := newStore()
	service := NewProductService(store)
	ctx := context.Background()

	vendor := seedUser(t, store, "vendor", models.RoleVendor)
	product := seedProduct(t, store, vendor.ID, 100, floatPtr(60))

	decode := func(body string) *UpdateProductRequest {
		var req UpdateProductRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		return &req
	}

	// Omitted keeps the discount
	updated, err := service.Update(ctx, vendor.ID, product.ID, decode(`{"stock": 7}`))
	require.NoError(t, err)
	require.NotNil(t, updated.DiscountedPrice)
	assert.Equal(t, 60.0, *updated.DiscountedPrice)
	assert.Equal(t, 7, updated.Stock)

	// A number sets it
	updated, err = service.Update(ctx, vendor.ID, product.ID, decode(`{"discountedPrice": 45.5}`))
	require.NoError(t, err)
	require.NotNil(t, updated.DiscountedPrice)
	assert.Equal(t, 45.5, *updated.DiscountedPrice)

	// null clears it
	updated, err = service.Update(ctx, vendor.ID, product.ID, decode(`{"discountedPrice": null}`))
	require.NoError(t, err)
	assert.Nil(t, updated.DiscountedPrice)

	stored, err := store.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DiscountedPrice)
	assert.Equal(t, 100.0, stored.EffectivePrice())
}

func TestProductOwnership(t *testing.T) {
	store := newStore()
	service := NewProductService(store)
	ctx := context.Background()

	owner := seedUser(t, store, "owner", models.RoleVendor)
	rival := seedUser(t, store, "rival", models.RoleVendor)
	product := seedProduct(t, store, owner.ID, 50, nil)

	_, err := service.Update(ctx, rival.ID, product.ID, &UpdateProductRequest{Stock: intPtr(0)})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, service.Delete(ctx, rival.ID, product.ID), ErrForbidden)

	require.NoError(t, service.Delete(ctx, owner.ID, product.ID))
	_, err = service.Get(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductListFilters(t *testing.T) {
	store := newStore()
	service := NewProductService(store)
	ctx := context.Background()

	a := seedUser(t, store, "alpha", models.RoleVendor)
	b := seedUser(t, store, "beta", models.RoleVendor)
	seedProduct(t, store, a.ID, 10, nil)
	seedProduct(t, store, b.ID, 20, nil)

	all, err := service.List(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := service.List(ctx, ProductFilter{VendorID: b.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "beta", mine[0].VendorName)

	none, err := service.List(ctx, ProductFilter{Category: "medicine"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
