package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/platform"
	"github.com/zapkash/vendor-console/utils"
)

// respondPlatformError translates a platform failure into the console's
// response taxonomy. Session expiry and access denial always surface
// as-is; an insufficient balance carries the platform's own numbers,
// which win over any client-side quote.
func respondPlatformError(c *gin.Context, err error) {
	if platform.IsSessionExpired(err) {
		utils.Unauthorized(c, utils.ErrSessionExpired)
		return
	}
	if platform.IsAccessDenied(err) {
		utils.Forbidden(c, utils.ErrForbidden)
		return
	}

	var insufficient *platform.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		utils.PaymentRequired(c, "Insufficient wallet balance", gin.H{
			"required":  insufficient.Required,
			"available": insufficient.Available,
			"shortfall": insufficient.Required - insufficient.Available,
		})
		return
	}

	var apiErr *platform.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		utils.BadRequest(c, apiErr.Message, nil)
		return
	}
	utils.InternalServerError(c, "Platform request failed", err.Error())
}
