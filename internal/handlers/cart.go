// internal/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expiryeaze/expiryeaze-backend/internal/services"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok || !matchesToken(c, c.Query("userId"), userID) {
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.FieldsResponse(c, http.StatusOK, cart, gin.H{"cart": cart})
}

// POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if !bindJSON(c, &req, false) || !matchesToken(c, req.UserID, userID) {
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.FieldsResponse(c, http.StatusOK, cart, gin.H{"cart": cart})
}

// DELETE /cart
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RemoveFromCartRequest
	if !bindJSON(c, &req, false) || !matchesToken(c, req.UserID, userID) {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.FieldsResponse(c, http.StatusOK, cart, gin.H{"cart": cart})
}

// DELETE /cart/items
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Clear(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.FieldsResponse(c, http.StatusOK, cart, gin.H{"cart": cart})
}
