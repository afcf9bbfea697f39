package pgrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

func TestDistributionRoundTrip(t *testing.T) {
	in := distribution(models.RatingDistribution{Three: 1, Four: 1, Five: 3})

	value, err := in.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":0,"2":0,"3":1,"4":1,"5":3}`, string(value.([]byte)))

	var out distribution
	require.NoError(t, out.Scan(value))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(nil))
	assert.Equal(t, distribution{}, out)

	assert.Error(t, out.Scan(42))
}

func TestUserRowKeepsRatingCache(t *testing.T) {
	user := &models.User{Name: "Vendor", Email: "v@example.com", Role: models.RoleVendor}
	user.ID = "4b1f4b4e-3a43-4d8c-9a8e-8a7d9b1e2f10"
	user.AverageRating = 4.4
	user.NumReviews = 5
	user.RatingDistribution.Five = 3

	got := toUserRow(user).model()
	assert.Equal(t, *user, got)
}

func TestOrderRowPreservesLineOrder(t *testing.T) {
	order := &models.Order{
		ID:     "o1",
		UserID: "u1",
		Products: []models.OrderItem{
			{ProductID: "p2", Quantity: 1, Price: 3},
			{ProductID: "p1", Quantity: 2, Price: 5},
		},
		Status: models.OrderStatusPending,
	}

	row := toOrderRow(order)
	require.Len(t, row.Items, 2)
	assert.Equal(t, 0, row.Items[0].Position)
	assert.Equal(t, 1, row.Items[1].Position)
	assert.Equal(t, order.Products, row.model().Products)
}
