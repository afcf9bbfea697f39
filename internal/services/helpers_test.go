package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/config"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository/memrepo"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{PublicURL: "http://localhost:5001"},
		Store:       config.StoreConfig{Driver: "memory"},
		JWT:         config.JWTConfig{SecretKey: "test-secret", TTLHours: 1},
		Reviews:     config.ReviewsConfig{PageSize: 10, MaxPageSize: 100},
	}
}

func seedUser(t *testing.T, store *repository.Store, name string, role models.Role) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		BaseModel: models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
	}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, store *repository.Store, vendorID string, price float64, discounted *float64) *models.Product {
	t.Helper()
	now := time.Now()
	product := &models.Product{
		BaseModel:       models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:            "Milk",
		Description:     "Toned milk, 1L",
		Price:           price,
		DiscountedPrice: discounted,
		Category:        "dairy",
		ExpiryDate:      now.Add(48 * time.Hour),
		Stock:           10,
		ImageURL:        models.DefaultProductImage,
		VendorID:        vendorID,
	}
	require.NoError(t, store.Products.Create(context.Background(), product))
	return product
}

func newStore() *repository.Store {
	return memrepo.New()
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
