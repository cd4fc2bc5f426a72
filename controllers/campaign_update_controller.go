package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/engine"
	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
	"github.com/zapkash/vendor-console/utils"
)

// UpdateCampaignRequest represents the request body for editing a
// pending campaign. Omitted fields are left unchanged.
type UpdateCampaignRequest struct {
	Title          *string                   `json:"title"`
	VoucherType    *string                   `json:"voucher_type"`
	CashbackAmount *float64                  `json:"cashback_amount"`
	SeriesCode     *string                   `json:"series_code"`
	ProductID      *uint                     `json:"product_id"`
	Allocations    []engine.RawAllocationRow `json:"allocations"`
}

// UpdateCampaign edits a campaign that has not been funded yet. Once a
// campaign is active its tiers are locked in; only pending campaigns
// can change.
func UpdateCampaign(c *gin.Context) {
	utils.LogInfo("UpdateCampaign called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	campaign, ok := loadCampaign(c, vendorID)
	if !ok {
		return
	}
	if campaign.Status != models.CampaignStatusPending {
		utils.LogError("Attempt to edit non-pending campaign %d (status %s)", campaign.ID, campaign.Status)
		utils.Conflict(c, utils.ErrCampaignNotDraft, nil)
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	patch := platform.CampaignPatch{}
	if req.Title != nil {
		title := utils.SanitizeString(*req.Title)
		if ok, msg := utils.ValidateCampaignTitle(title); !ok {
			utils.BadRequest(c, msg, nil)
			return
		}
		campaign.Title = title
		patch.Title = &title
	}
	if req.VoucherType != nil {
		if ok, msg := utils.ValidateVoucherType(*req.VoucherType); !ok {
			utils.BadRequest(c, msg, nil)
			return
		}
		campaign.VoucherType = *req.VoucherType
		patch.VoucherType = req.VoucherType
	}
	if req.CashbackAmount != nil {
		campaign.CashbackAmount = *req.CashbackAmount
		patch.CashbackAmount = req.CashbackAmount
	}
	if req.SeriesCode != nil {
		seriesCode := utils.NormalizeSeriesCode(*req.SeriesCode)
		if ok, msg := utils.ValidateSeriesCode(seriesCode); !ok {
			utils.BadRequest(c, msg, nil)
			return
		}
		campaign.SeriesCode = seriesCode
	}
	if req.ProductID != nil {
		campaign.ProductID = req.ProductID
	}

	var newTiers []models.Allocation
	if req.Allocations != nil {
		allocations, err := engine.NormalizeAllocations(req.Allocations, campaign.PlanType)
		if err != nil {
			utils.LogError("Allocation validation failed for campaign %d: %v", campaign.ID, err)
			utils.ValidationError(c, err.Error(), nil)
			return
		}
		subtotal := engine.Subtotal(allocations)
		campaign.Subtotal = subtotal.InexactFloat64()
		campaign.TotalBudget = subtotal.InexactFloat64()
		newTiers = toModelAllocations(allocations)
		patch.Allocations = toAllocationSpecs(allocations)
	}

	if _, err := config.Platform.UpdateCampaign(c.Request.Context(), middleware.VendorToken(c), campaign.PlatformID, patch); err != nil {
		utils.LogError("Platform campaign update failed for campaign %d: %v", campaign.ID, err)
		respondPlatformError(c, err)
		return
	}

	if newTiers != nil {
		if err := utils.ReplaceAllocations(campaign.ID, newTiers); err != nil {
			utils.LogError("Failed to replace tiers for campaign %d: %v", campaign.ID, err)
			utils.InternalServerError(c, "Failed to save campaign tiers", err.Error())
			return
		}
		campaign.Allocations = newTiers
	}
	if err := utils.UpdateCampaign(campaign); err != nil {
		utils.LogError("Failed to save campaign %d: %v", campaign.ID, err)
		utils.InternalServerError(c, "Failed to save campaign", err.Error())
		return
	}

	utils.LogInfo("Updated campaign %d for vendor %d", campaign.ID, vendorID)
	utils.Success(c, "Campaign updated successfully", formatCampaign(campaign))
}
