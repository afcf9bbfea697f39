// internal/handlers/review.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expiryeaze/expiryeaze-backend/internal/config"
	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/services"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

// allReviewsPageSize is the default page size of the unfiltered review listing.
const allReviewsPageSize = 20

var reviewSortFields = []string{"createdAt", "rating"}

type ReviewHandler struct {
	reviewService *services.ReviewService
	cfg           config.ReviewsConfig
}

func NewReviewHandler(reviewService *services.ReviewService, cfg config.ReviewsConfig) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		cfg:           cfg,
	}
}

// POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateReviewRequest
	if !bindJSON(c, &req, false) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, review)
}

// GET /reviews/vendor/:vendorId
func (h *ReviewHandler) GetVendorReviews(c *gin.Context) {
	params := utils.GetPaginationParams(c, h.cfg.PageSize, h.cfg.MaxPageSize, reviewSortFields)

	result, err := h.reviewService.ListForVendor(c.Request.Context(), c.Param("vendorId"), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SetPaginationHeaders(c, result.Pagination)
	utils.SuccessResponse(c, result)
}

// GET /reviews
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c, allReviewsPageSize, h.cfg.MaxPageSize, reviewSortFields)

	filter := services.ReviewFilter{VendorID: c.Query("vendorId")}
	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "rating"), nil)
			return
		}
		filter.Rating = rating
	}

	result, err := h.reviewService.ListAll(c.Request.Context(), filter, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, result.Reviews, result.Pagination)
}

// GET /reviews/vendor/:vendorId/my-review
func (h *ReviewHandler) GetMyReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetMine(c.Request.Context(), userID, c.Param("vendorId"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// PUT /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateReviewRequest
	if !bindJSON(c, &req, false) {
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{})
}

// POST /reviews/:id/helpful
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.HelpfulRequest
	if !bindJSON(c, &req, true) {
		return
	}

	review, err := h.reviewService.MarkHelpful(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"review":       review,
		"helpfulCount": review.HelpfulCount(),
	})
}
