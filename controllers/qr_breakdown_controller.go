package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/engine"
	"github.com/zapkash/vendor-console/metrics"
	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
	"github.com/zapkash/vendor-console/utils"
)

// expectedTotalFor finds the platform's authoritative QR count for a
// campaign, or zero when no stats exist yet.
func expectedTotalFor(campaign *models.Campaign, stats []platform.CampaignStats) int {
	for _, s := range stats {
		if s.ID == campaign.PlatformID || strings.EqualFold(s.Campaign, campaign.Title) {
			return s.TotalQRsOrdered
		}
	}
	return 0
}

// GetQRBreakdown reconciles the vendor's QR inventory against a
// campaign, reporting true per-price-tier active and redeemed counts
// converged against the platform's expected total.
func GetQRBreakdown(c *gin.Context) {
	utils.LogInfo("GetQRBreakdown called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	campaign, ok := loadCampaign(c, vendorID)
	if !ok {
		return
	}

	token := middleware.VendorToken(c)
	stats, err := config.Platform.GetCampaignStats(c.Request.Context(), token)
	if err != nil {
		utils.LogError("Failed to fetch campaign stats for vendor %d: %v", vendorID, err)
		respondPlatformError(c, err)
		return
	}
	expectedTotal := expectedTotalFor(campaign, stats)

	reconciler := engine.NewReconciler(config.Platform)
	breakdown, err := reconciler.Reconcile(c.Request.Context(), token, campaign, expectedTotal)
	if err != nil {
		utils.LogError("QR reconciliation failed for campaign %d: %v", campaign.ID, err)
		respondPlatformError(c, err)
		return
	}
	metrics.ReconcilePages.Add(float64(breakdown.PagesScanned))

	utils.LogInfo("Reconciled campaign %d: %d QRs matched over %d pages (complete=%t)",
		campaign.ID, breakdown.MatchedCount, breakdown.PagesScanned, breakdown.Complete)
	utils.Success(c, "QR breakdown computed", gin.H{
		"campaign_id":    campaign.ID,
		"price_groups":   formatPriceGroups(breakdown.PriceGroups),
		"matched_count":  breakdown.MatchedCount,
		"expected_total": expectedTotal,
		"complete":       breakdown.Complete,
		"pages_scanned":  breakdown.PagesScanned,
	})
}
