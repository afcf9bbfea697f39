package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

func TestVendorProfileRequiresVendorRole(t *testing.T) {
	store := newStore()
	service := NewVendorService(store)
	ctx := context.Background()

	buyer := seedUser(t, store, "buyer", models.RoleUser)
	_, err := service.GetProfile(ctx, buyer.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.MedicineVerificationStatus(ctx, buyer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateVendorProfilePromotesAndCompletes(t *testing.T) {
	store := newStore()
	service := NewVendorService(store)
	ctx := context.Background()

	user := seedUser(t, store, "kirana", models.RoleUser)

	profile, err := service.UpdateProfile(ctx, user.ID, &UpdateVendorProfileRequest{
		Phone:    "9876543210",
		Location: "Nagpur",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendor, profile.Role)
	assert.False(t, profile.ProfileCompleted)
	assert.Equal(t, 67, profile.ProfileCompletion)

	profile, err = service.UpdateProfile(ctx, user.ID, &UpdateVendorProfileRequest{
		Aadhar: "documents/aadhar.pdf",
		Name:   "   ",
	})
	require.NoError(t, err)
	assert.True(t, profile.ProfileCompleted)
	assert.Equal(t, "kirana", profile.Name, "blank fields are ignored")

	stored, err := service.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.ProfileCompleted)
	assert.Equal(t, "Nagpur", stored.Location)
}

func TestUpdateVendorProfileEmailConflict(t *testing.T) {
	store := newStore()
	service := NewVendorService(store)
	ctx := context.Background()

	seedUser(t, store, "taken", models.RoleUser)
	vendor := seedUser(t, store, "vendor", models.RoleVendor)

	_, err := service.UpdateProfile(ctx, vendor.ID, &UpdateVendorProfileRequest{Email: "Taken@example.com"})
	assert.ErrorIs(t, err, ErrConflict)

	profile, err := service.UpdateProfile(ctx, vendor.ID, &UpdateVendorProfileRequest{Email: "New@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)

	_, err = service.UpdateProfile(ctx, "ghost", &UpdateVendorProfileRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateVendorProfileKeepsRatingCache(t *testing.T) {
	store := newStore()
	service := NewVendorService(store)
	ctx := context.Background()

	vendor := seedUser(t, store, "vendor", models.RoleVendor)
	summary := models.RatingSummary{AverageRating: 4.5, NumReviews: 2, RatingDistribution: models.RatingDistribution{Four: 1, Five: 1}}
	require.NoError(t, store.Users.UpdateRatingSummary(ctx, vendor.ID, summary))

	profile, err := service.UpdateProfile(ctx, vendor.ID, &UpdateVendorProfileRequest{Phone: "12345"})
	require.NoError(t, err)
	assert.Equal(t, summary, profile.RatingSummary)

	stored, err := store.Users.FindByID(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, summary, stored.RatingSummary)
}

func TestMedicineAuth(t *testing.T) {
	store := newStore()
	service := NewVendorService(store)
	ctx := context.Background()

	vendor := seedUser(t, store, "chemist", models.RoleVendor)

	_, err := service.MedicineAuth(ctx, vendor.ID, &MedicineAuthRequest{BusinessName: "Chemist Co"})
	assert.ErrorIs(t, err, ErrValidation)

	status, err := service.MedicineVerificationStatus(ctx, vendor.ID)
	require.NoError(t, err)
	assert.False(t, status.IsVerified)

	profile, err := service.MedicineAuth(ctx, vendor.ID, &MedicineAuthRequest{
		PharmacyLicenseNumber: "MH-PH-1234",
		BusinessName:          "Chemist Co",
	})
	require.NoError(t, err)
	assert.True(t, profile.IsMedicineVerified)
	assert.Equal(t, "MH-PH-1234", profile.PharmacyLicenseNumber)

	status, err = service.MedicineVerificationStatus(ctx, vendor.ID)
	require.NoError(t, err)
	assert.True(t, status.IsVerified)

	buyer := seedUser(t, store, "buyer", models.RoleUser)
	_, err = service.MedicineAuth(ctx, buyer.ID, &MedicineAuthRequest{PharmacyLicenseNumber: "x", BusinessName: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAllWithProducts(t *testing.T) {
	store := newStore()
	service := NewVendorService(store)
	ctx := context.Background()

	a := seedUser(t, store, "alpha", models.RoleVendor)
	seedUser(t, store, "beta", models.RoleVendor)
	seedUser(t, store, "buyer", models.RoleUser)
	seedProduct(t, store, a.ID, 10, nil)
	seedProduct(t, store, a.ID, 20, nil)

	vendors, err := service.AllWithProducts(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 2)

	counts := map[string]int{}
	for _, v := range vendors {
		counts[v.Vendor.Name] = len(v.Products)
		assert.NotNil(t, v.Products)
		for _, p := range v.Products {
			assert.Equal(t, v.Vendor.Name, p.VendorName)
		}
	}
	assert.Equal(t, map[string]int{"alpha": 2, "beta": 0}, counts)
}
