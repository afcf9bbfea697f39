// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/services"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req, false) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"user": user,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, false) {
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.FieldsResponse(c, http.StatusOK, authResponse, gin.H{
		"token": authResponse.Token,
		"user":  authResponse.User,
	})
}

// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.FieldsResponse(c, http.StatusOK, gin.H{"user": user}, gin.H{"user": user})
}

// POST /auth/waitlist
func (h *AuthHandler) JoinWaitlist(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.WaitlistRequest
	if !bindJSON(c, &req, false) {
		return
	}

	entry, created, err := h.authService.JoinWaitlist(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if !created {
		utils.SuccessResponseWithMeta(c, entry, gin.H{"message": i18n.T(lang, i18n.KeyWaitlistAlready)})
		return
	}
	c.JSON(http.StatusCreated, utils.APIResponse{
		Success: true,
		Data:    entry,
		Meta:    gin.H{"message": i18n.T(lang, i18n.KeyWaitlistJoined)},
	})
}

// GET /auth/waitlist/check
func (h *AuthHandler) CheckWaitlist(c *gin.Context) {
	joined, err := h.authService.CheckWaitlist(c.Request.Context(), c.Query("email"), models.Role(c.Query("role")))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"joined": joined,
	})
}
