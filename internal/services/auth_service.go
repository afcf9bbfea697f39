// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/expiryeaze/expiryeaze-backend/internal/config"
	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/metrics"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

type AuthService struct {
	store *repository.Store
	cfg   *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,notblank,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int          `json:"expiresIn"` // in seconds
	User      *models.User `json:"user"`
}

type WaitlistRequest struct {
	Name     string      `json:"name" validate:"required,notblank"`
	Email    string      `json:"email" validate:"required,email"`
	Phone    string      `json:"phone"`
	Location string      `json:"location"`
	Role     models.Role `json:"role" validate:"required,oneof=user vendor"`
}

func NewAuthService(store *repository.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store: store,
		cfg:   cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	// Validate request
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !req.Role.Valid() {
		return nil, newError(ErrValidation, i18n.KeyAuthInvalidRole)
	}

	// Check if user already exists
	if _, err := s.store.Users.FindByEmail(ctx, req.Email); err == nil {
		return nil, newError(ErrConflict, i18n.KeyAuthUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	now := time.Now()
	user := &models.User{
		BaseModel: models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
	}

	// Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Save user
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, i18n.KeyAuthUserExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")
	return user, nil
}

// Login fails identically for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	// Validate request
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	invalid := newError(ErrInvalidCredentials, i18n.KeyAuthInvalidCredentials)

	// Find user by email
	user, err := s.store.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginFailuresTotal.Inc()
			return nil, invalid
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Check password
	if err := user.CheckPassword(req.Password); err != nil {
		metrics.LoginFailuresTotal.Inc()
		return nil, invalid
	}

	token, err := utils.GenerateJWT(user.ID, s.cfg.JWT.TTLHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.cfg.JWT.TTLHours * 3600, // Convert hours to seconds
		User:      user,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// JoinWaitlist adds a signup; a repeat signup for the same email and role
// returns the existing entry with created=false.
func (s *AuthService) JoinWaitlist(ctx context.Context, req *WaitlistRequest) (*models.WaitlistEntry, bool, error) {
	// Validate request
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, false, err
	}

	existing, err := s.store.Waitlist.FindByEmailAndRole(ctx, req.Email, req.Role)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check waitlist: %w", err)
	}

	entry := &models.WaitlistEntry{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    strings.TrimSpace(req.Phone),
		Location: strings.TrimSpace(req.Location),
		Role:     req.Role,
		JoinedAt: time.Now(),
	}

	if err := s.store.Waitlist.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with an identical signup
			existing, findErr := s.store.Waitlist.FindByEmailAndRole(ctx, req.Email, req.Role)
			if findErr != nil {
				return nil, false, fmt.Errorf("failed to load waitlist entry: %w", findErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to join waitlist: %w", err)
	}

	metrics.WaitlistSignupsTotal.WithLabelValues(string(entry.Role)).Inc()
	return entry, true, nil
}

func (s *AuthService) CheckWaitlist(ctx context.Context, email string, role models.Role) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || !role.Valid() {
		return false, newError(ErrValidation, i18n.KeyValidationInvalid, "email or role")
	}

	_, err := s.store.Waitlist.FindByEmailAndRole(ctx, email, role)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	}
	return false, fmt.Errorf("failed to check waitlist: %w", err)
}
