package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return NewAuthService(newStore(), cfg)
}

func TestRegister(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, &RegisterRequest{
		Name:     "Asha",
		Email:    "  Asha@Example.com ",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("secret1"))

	_, err = service.Register(ctx, &RegisterRequest{
		Name:     "Asha again",
		Email:    "ASHA@example.com",
		Password: "secret2",
		Role:     models.RoleVendor,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{Name: "A", Email: "not-an-email", Password: "123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Register(ctx, &RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginFailsUniformly(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1", Role: models.RoleVendor})
	require.NoError(t, err)

	_, wrongPassword := service.Login(ctx, &LoginRequest{Email: "ravi@example.com", Password: "nope"})
	_, unknownEmail := service.Login(ctx, &LoginRequest{Email: "ghost@example.com", Password: "secret1"})

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginIssuesToken(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	resp, err := service.Login(ctx, &LoginRequest{Email: "RAVI@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resp.User.ID)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := utils.ValidateJWT(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)

	me, err := service.Me(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", me.Name)

	_, err = service.Me(ctx, "vanished")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWaitlist(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	joined, err := service.CheckWaitlist(ctx, "meera@example.com", models.RoleVendor)
	require.NoError(t, err)
	assert.False(t, joined)

	entry, created, err := service.JoinWaitlist(ctx, &WaitlistRequest{
		Name:  "Meera",
		Email: " Meera@Example.com",
		Role:  models.RoleVendor,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "meera@example.com", entry.Email)

	again, created, err := service.JoinWaitlist(ctx, &WaitlistRequest{
		Name:  "Meera K",
		Email: "meera@example.com",
		Role:  models.RoleVendor,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, entry.ID, again.ID)

	// Same email may join under the other role
	_, created, err = service.JoinWaitlist(ctx, &WaitlistRequest{
		Name:  "Meera",
		Email: "meera@example.com",
		Role:  models.RoleUser,
	})
	require.NoError(t, err)
	assert.True(t, created)

	joined, err = service.CheckWaitlist(ctx, "MEERA@example.com", models.RoleVendor)
	require.NoError(t, err)
	assert.True(t, joined)

	_, err = service.CheckWaitlist(ctx, "", models.RoleVendor)
	assert.ErrorIs(t, err, ErrValidation)
}
