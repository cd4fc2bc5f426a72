package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/utils"
)

// DeleteCampaign removes a campaign. The platform unlocks whatever
// funds the campaign still held; the console records the refund in the
// transaction mirror and marks its local copy deleted.
func DeleteCampaign(c *gin.Context) {
	utils.LogInfo("DeleteCampaign called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	campaign, ok := loadCampaign(c, vendorID)
	if !ok {
		return
	}
	if campaign.Status == models.CampaignStatusDeleted {
		utils.BadRequest(c, "Campaign is already deleted", nil)
		return
	}

	result, err := config.Platform.DeleteCampaign(c.Request.Context(), middleware.VendorToken(c), campaign.PlatformID)
	if err != nil {
		utils.LogError("Platform campaign deletion failed for campaign %d: %v", campaign.ID, err)
		respondPlatformError(c, err)
		return
	}

	campaign.Status = models.CampaignStatusDeleted
	if err := utils.UpdateCampaign(campaign); err != nil {
		utils.LogError("Failed to mark campaign %d deleted: %v", campaign.ID, err)
		utils.InternalServerError(c, "Failed to update campaign", err.Error())
		return
	}

	if result.RefundedAmount > 0 {
		campaignID := campaign.ID
		txn := models.WalletTransaction{
			VendorID:    vendorID,
			Amount:      result.RefundedAmount,
			Type:        models.TransactionTypeCredit,
			Description: fmt.Sprintf("Refund for deleted campaign %q", campaign.Title),
			CampaignID:  &campaignID,
			Reference:   fmt.Sprintf("REFUND-CAMPAIGN-%d", campaign.ID),
		}
		if err := utils.CreateWalletTransaction(&txn); err != nil {
			utils.LogError("Failed to record refund transaction for campaign %d: %v", campaign.ID, err)
		}
		refreshWalletSnapshot(c, vendorID)
	}

	utils.LogInfo("Deleted campaign %d for vendor %d, refunded %.2f", campaign.ID, vendorID, result.RefundedAmount)
	utils.Success(c, "Campaign deleted successfully", gin.H{
		"id":              campaign.ID,
		"status":          campaign.Status,
		"refunded_amount": fmt.Sprintf("%.2f", result.RefundedAmount),
	})
}
