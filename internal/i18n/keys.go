// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyServerError       = "common.server_error"
	KeyForbidden         = "common.forbidden"
	KeyRouteNotFound     = "common.route_not_found"
	KeyValidationInvalid = "validation.invalid"
	KeyRateLimited       = "common.rate_limited"
	KeyUserIDMismatch    = "common.user_id_mismatch"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthNoToken            = "auth.no_token"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthInvalidRole        = "auth.invalid_role"
	KeyUserNotFound           = "user.not_found"

	// Waitlist
	KeyWaitlistJoined  = "waitlist.joined"
	KeyWaitlistAlready = "waitlist.already_joined"

	// Products
	KeyProductNotFound     = "product.not_found"
	KeyProductNotOwner     = "product.not_owner"
	KeyProductVendorOnly   = "product.vendor_only"
	KeyProductInvalidPrice = "product.invalid_discount"

	// Cart
	KeyCartNotFound     = "cart.not_found"
	KeyCartItemNotFound = "cart.item_not_found"

	// Orders
	KeyOrderNotFound       = "order.not_found"
	KeyOrderEmpty          = "order.empty"
	KeyOrderTotalMismatch  = "order.total_mismatch"
	KeyOrderNotCancellable = "order.not_cancellable"
	KeyOrderNotOwner       = "order.not_owner"

	// Reviews
	KeyReviewNotFound      = "review.not_found"
	KeyReviewExists        = "review.already_exists"
	KeyReviewNotOwner      = "review.not_owner"
	KeyReviewVendorMissing = "review.vendor_not_found"

	// Vendors
	KeyVendorNotFound         = "vendor.not_found"
	KeyVendorOnly             = "vendor.vendor_only"
	KeyVendorEmailTaken       = "vendor.email_taken"
	KeyVendorMedicineVerified = "vendor.medicine_verified"

	// Uploads
	KeyUploadMissingFile  = "upload.missing_file"
	KeyUploadTooLarge     = "upload.too_large"
	KeyUploadInvalidType  = "upload.invalid_type"
	KeyUploadInvalidImage = "upload.invalid_image"
	KeyUploadInvalidKind  = "upload.invalid_kind"
)
