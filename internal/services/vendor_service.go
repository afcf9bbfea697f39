// internal/services/vendor_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type VendorService struct {
	store  *repository.Store
	policy Policy
}

type UpdateVendorProfileRequest struct {
	UserID       string `json:"userId"`
	Name         string `json:"name" validate:"omitempty,max=100"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
	Location     string `json:"location" validate:"omitempty,max=200"`
	Aadhar       string `json:"aadhar"`
	ProfileImage string `json:"profileImage"`
}

type MedicineAuthRequest struct {
	UserID                string `json:"userId"`
	PharmacyLicenseNumber string `json:"pharmacyLicenseNumber" validate:"required,notblank"`
	BusinessName          string `json:"businessName" validate:"required,notblank"`
	DocumentURL           string `json:"documentUrl"`
}

// VendorProfile is a vendor's user record plus its derived completion score.
type VendorProfile struct {
	*models.User
	ProfileCompletion int `json:"profileCompletion"`
}

type VendorWithProducts struct {
	Vendor   VendorProfile    `json:"vendor"`
	Products []models.Product `json:"products"`
}

type MedicineVerificationStatus struct {
	IsVerified bool `json:"isVerified"`
}

func NewVendorService(store *repository.Store) *VendorService {
	return &VendorService{
		store: store,
	}
}

func newVendorProfile(user *models.User) *VendorProfile {
	return &VendorProfile{User: user, ProfileCompletion: user.ProfileCompletion()}
}

func (s *VendorService) GetProfile(ctx context.Context, userID string) (*VendorProfile, error) {
	user, err := s.loadVendor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newVendorProfile(user), nil
}

// UpdateProfile promotes the caller to vendor and applies every non-empty field.
func (s *VendorService) UpdateProfile(ctx context.Context, userID string, req *UpdateVendorProfileRequest) (*VendorProfile, error) {
	// Validate request
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if email := normalizeEmail(req.Email); email != "" && email != user.Email {
		existing, err := s.store.Users.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, newError(ErrConflict, i18n.KeyVendorEmailTaken)
		}
		user.Email = email
	}

	user.Role = models.RoleVendor
	setIfPresent(&user.Name, req.Name)
	setIfPresent(&user.Phone, req.Phone)
	setIfPresent(&user.Location, req.Location)
	setIfPresent(&user.Aadhar, req.Aadhar)
	setIfPresent(&user.ProfileImage, req.ProfileImage)
	user.ProfileCompleted = user.HasCompleteProfile()
	user.UpdatedAt = time.Now()

	if err := s.store.Users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, i18n.KeyVendorEmailTaken)
		}
		return nil, fmt.Errorf("failed to update vendor profile: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":           user.ID,
		"profile_completed": user.ProfileCompleted,
	}).Info("Vendor profile updated")
	return newVendorProfile(user), nil
}

// AllWithProducts lists every vendor together with its products.
func (s *VendorService) AllWithProducts(ctx context.Context) ([]VendorWithProducts, error) {
	vendors, err := s.store.Users.FindByRole(ctx, models.RoleVendor)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	if len(vendors) == 0 {
		return []VendorWithProducts{}, nil
	}

	ids := make([]string, len(vendors))
	for i := range vendors {
		ids[i] = vendors[i].ID
	}
	products, err := s.store.Products.List(ctx, repository.ProductFilter{VendorIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor products: %w", err)
	}

	byVendor := make(map[string][]models.Product, len(vendors))
	for _, p := range products {
		byVendor[p.VendorID] = append(byVendor[p.VendorID], p)
	}

	result := make([]VendorWithProducts, 0, len(vendors))
	for i := range vendors {
		vendor := &vendors[i]
		owned := byVendor[vendor.ID]
		if owned == nil {
			owned = []models.Product{}
		}
		for j := range owned {
			owned[j].VendorName = vendor.Name
		}
		result = append(result, VendorWithProducts{
			Vendor:   *newVendorProfile(vendor),
			Products: owned,
		})
	}
	return result, nil
}

// MedicineAuth records the vendor's pharmacy credentials and marks it
// verified for medicine sales.
func (s *VendorService) MedicineAuth(ctx context.Context, userID string, req *MedicineAuthRequest) (*VendorProfile, error) {
	// Validate request
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.loadVendor(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsMedicineVerified = true
	user.PharmacyLicenseNumber = strings.TrimSpace(req.PharmacyLicenseNumber)
	user.BusinessName = strings.TrimSpace(req.BusinessName)
	user.DocumentURL = strings.TrimSpace(req.DocumentURL)
	user.UpdatedAt = time.Now()

	if err := s.store.Users.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save medicine verification: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("Vendor verified for medicine sales")
	return newVendorProfile(user), nil
}

func (s *VendorService) MedicineVerificationStatus(ctx context.Context, userID string) (*MedicineVerificationStatus, error) {
	user, err := s.loadVendor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MedicineVerificationStatus{IsVerified: user.IsMedicineVerified}, nil
}

// loadVendor returns the caller's record; callers without the vendor role
// are reported as a missing vendor.
func (s *VendorService) loadVendor(ctx context.Context, userID string) (*models.User, error) {
	actor, user, err := loadActor(ctx, s.store.Users, userID)
	if err != nil {
		return nil, err
	}
	if s.policy.RequireVendor(actor) != nil {
		return nil, newError(ErrNotFound, i18n.KeyVendorNotFound)
	}
	return user, nil
}

func setIfPresent(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
