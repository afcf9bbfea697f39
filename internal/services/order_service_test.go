package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	store := newStore()
	service := NewOrderService(store)
	ctx := context.Background()

	vendor := seedUser(t, store, "vendor", models.RoleVendor)
	buyer := seedUser(t, store, "buyer", models.RoleUser)
	milk := seedProduct(t, store, vendor.ID, 40, nil)
	bread := seedProduct(t, store, vendor.ID, 30, floatPtr(19.99))

	order, err := service.Place(ctx, buyer.ID, &PlaceOrderRequest{
		Products: []OrderLineRequest{
			{ProductID: milk.ID, Quantity: 2},
			{ProductID: bread.ID, Quantity: 3},
		},
		TotalAmount:     floatPtr(139.97),
		ShippingAddress: " 12 MG Road, Pune ",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 139.97, order.TotalAmount)
	assert.Equal(t, "12 MG Road, Pune", order.ShippingAddress)
	require.Len(t, order.Products, 2)
	assert.Equal(t, 40.0, order.Products[0].Price)
	assert.Equal(t, 19.99, order.Products[1].Price)

	// Later price changes do not touch the order
	bread.DiscountedPrice = nil
	require.NoError(t, store.Products.Update(ctx, bread))

	orders, err := service.ListForUser(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 19.99, orders[0].Products[1].Price)
	require.NotNil(t, orders[0].Products[1].Product)
	assert.Equal(t, 30.0, orders[0].Products[1].Product.EffectivePrice())
}

func TestPlaceOrderRejectsBadInput(t *testing.T) {
	store := newStore()
	service := NewOrderService(store)
	ctx := context.Background()

	vendor := seedUser(t, store, "vendor", models.RoleVendor)
	buyer := seedUser(t, store, "buyer", models.RoleUser)
	milk := seedProduct(t, store, vendor.ID, 40, nil)

	_, err := service.Place(ctx, buyer.ID, &PlaceOrderRequest{ShippingAddress: "Pune"})
	assert.ErrorIs(t, err, ErrValidation, "empty order")

	_, err = service.Place(ctx, buyer.ID, &PlaceOrderRequest{
		Products: []OrderLineRequest{{ProductID: milk.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation, "missing address")

	_, err = service.Place(ctx, buyer.ID, &PlaceOrderRequest{
		Products:        []OrderLineRequest{{ProductID: milk.ID, Quantity: 1}},
		TotalAmount:     floatPtr(1),
		ShippingAddress: "Pune",
	})
	assert.ErrorIs(t, err, ErrValidation, "total mismatch")

	_, err = service.Place(ctx, buyer.ID, &PlaceOrderRequest{
		Products:        []OrderLineRequest{{ProductID: "gone", Quantity: 1}},
		ShippingAddress: "Pune",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	orders, err := service.ListForUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCancelOrder(t *testing.T) {
	store := newStore()
	service := NewOrderService(store)
	ctx := context.Background()

	vendor := seedUser(t, store, "vendor", models.RoleVendor)
	buyer := seedUser(t, store, "buyer", models.RoleUser)
	other := seedUser(t, store, "other", models.RoleUser)
	milk := seedProduct(t, store, vendor.ID, 40, nil)

	order, err := service.Place(ctx, buyer.ID, &PlaceOrderRequest{
		Products:        []OrderLineRequest{{ProductID: milk.ID, Quantity: 1}},
		ShippingAddress: "Pune",
	})
	require.NoError(t, err)

	_, err = service.Cancel(ctx, other.ID, order.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := service.Cancel(ctx, buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	_, err = service.Cancel(ctx, buyer.ID, order.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = service.Cancel(ctx, buyer.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
