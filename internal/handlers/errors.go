// internal/handlers/errors.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/services"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

// respondError renders a service failure. Unknown errors are logged and
// reported as a generic server error.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
		return
	}

	message := svcErr.Message(lang)
	switch {
	case errors.Is(svcErr, services.ErrValidation):
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, svcErr.Details)
	case errors.Is(svcErr, services.ErrConflict):
		utils.ConflictResponse(c, message)
	case errors.Is(svcErr, services.ErrNotFound):
		utils.NotFoundResponse(c, message)
	case errors.Is(svcErr, services.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", message, nil)
	case errors.Is(svcErr, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, message)
	case errors.Is(svcErr, services.ErrForbidden):
		utils.ForbiddenResponse(c, message)
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes the body into req. An empty body is accepted when
// optional is set.
func bindJSON(c *gin.Context, req interface{}, optional bool) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

// currentUserID returns the authenticated user id or writes a 401.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return "", false
	}
	return userID, true
}

// matchesToken rejects a userId supplied by the client that names someone
// other than the token's user.
func matchesToken(c *gin.Context, claimed, userID string) bool {
	if claimed != "" && claimed != userID {
		lang := utils.GetLangFromContext(c)
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyUserIDMismatch))
		return false
	}
	return true
}
