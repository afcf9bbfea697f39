// internal/handlers/vendor.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/services"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

type VendorHandler struct {
	vendorService *services.VendorService
}

func NewVendorHandler(vendorService *services.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// GET /vendors/profile
func (h *VendorHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.vendorService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"profile": profile,
	})
}

// PUT /vendors/profile
func (h *VendorHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateVendorProfileRequest
	if !bindJSON(c, &req, false) || !matchesToken(c, req.UserID, userID) {
		return
	}

	profile, err := h.vendorService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"profile": profile,
	})
}

// GET /vendors/all-with-products
func (h *VendorHandler) GetAllWithProducts(c *gin.Context) {
	vendors, err := h.vendorService.AllWithProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, vendors)
}

// POST /vendors/medicine-auth
func (h *VendorHandler) MedicineAuth(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.MedicineAuthRequest
	if !bindJSON(c, &req, false) || !matchesToken(c, req.UserID, userID) {
		return
	}

	profile, err := h.vendorService.MedicineAuth(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{"profile": profile},
		gin.H{"message": i18n.T(lang, i18n.KeyVendorMedicineVerified)})
}

// GET /vendors/medicine-verification-status
func (h *VendorHandler) GetMedicineVerificationStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.vendorService.MedicineVerificationStatus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, status)
}
