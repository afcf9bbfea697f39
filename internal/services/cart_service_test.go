package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

func TestCartMergesRepeatedAdds(t *testing.T) {
	store := newStore()
	service := NewCartService(store)
	ctx := context.Background()

	vendor := seedUser(t, store, "vendor", models.RoleVendor)
	buyer := seedUser(t, store, "buyer", models.RoleUser)
	product := seedProduct(t, store, vendor.ID, 40, nil)

	_, err := service.AddItem(ctx, buyer.ID, &AddToCartRequest{ProductID: product.ID, Quantity: intPtr(2)})
	require.NoError(t, err)
	cart, err := service.AddItem(ctx, buyer.ID, &AddToCartRequest{ProductID: product.ID, Quantity: intPtr(3)})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "vendor", cart.Items[0].Product.VendorName)

	cart, err = service.AddItem(ctx, buyer.ID, &AddToCartRequest{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, 6, cart.Items[0].Quantity, "omitted quantity adds one")
}

func TestCartAddValidation(t *testing.T) {
	store := newStore()
	service := NewCartService(store)
	ctx := context.Background()
	buyer := seedUser(t, store, "buyer", models.RoleUser)

	_, err := service.AddItem(ctx, buyer.ID, &AddToCartRequest{ProductID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.AddItem(ctx, buyer.ID, &AddToCartRequest{ProductID: "missing", Quantity: intPtr(0)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCartGetRemoveClear(t *testing.T) {
	store := newStore()
	service := NewCartService(store)
	ctx := context.Background()

	vendor := seedUser(t, store, "vendor", models.RoleVendor)
	buyer := seedUser(t, store, "buyer", models.RoleUser)
	milk := seedProduct(t, store, vendor.ID, 40, nil)
	bread := seedProduct(t, store, vendor.ID, 25, floatPtr(15))

	empty, err := service.Get(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = service.RemoveItem(ctx, buyer.ID, &RemoveFromCartRequest{ItemID: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = service.Clear(ctx, buyer.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.AddItem(ctx, buyer.ID, &AddToCartRequest{ProductID: milk.ID})
	require.NoError(t, err)
	cart, err := service.AddItem(ctx, buyer.ID, &AddToCartRequest{ProductID: bread.ID})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	line, ok := cart.Line(milk.ID)
	require.True(t, ok)
	cart, err = service.RemoveItem(ctx, buyer.ID, &RemoveFromCartRequest{ItemID: line.ID})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, bread.ID, cart.Items[0].ProductID)

	_, err = service.RemoveItem(ctx, buyer.ID, &RemoveFromCartRequest{ItemID: line.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	cart, err = service.Clear(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
