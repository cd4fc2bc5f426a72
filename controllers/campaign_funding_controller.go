package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/engine"
	"github.com/zapkash/vendor-console/metrics"
	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/utils"
)

// GetFundingQuote prices a campaign's saved tiers and checks the result
// against the wallet, without moving any money. The shortfall, if any,
// is what the vendor still needs to recharge.
func GetFundingQuote(c *gin.Context) {
	utils.LogInfo("GetFundingQuote called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	campaign, ok := loadCampaign(c, vendorID)
	if !ok {
		return
	}

	allocations := engine.FromSaved(campaign.Allocations)
	quote, err := engine.BuildQuote(allocations, config.App.QRUnitRate, campaign.VoucherType)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	wallet, err := config.Platform.GetWallet(c.Request.Context(), middleware.VendorToken(c))
	if err != nil {
		utils.LogError("Failed to fetch wallet for vendor %d: %v", vendorID, err)
		respondPlatformError(c, err)
		return
	}
	authorization := engine.Authorize(quote.TotalCost, decimal.NewFromFloat(wallet.AvailableBalance))

	utils.Success(c, "Funding quote computed", gin.H{
		"quote":      formatQuote(quote),
		"authorized": authorization.Authorized,
		"shortfall":  authorization.Shortfall.StringFixed(2),
		"wallet": gin.H{
			"available_balance": fmt.Sprintf("%.2f", wallet.AvailableBalance),
		},
	})
}

// FundCampaignRequest represents the request body for funding
type FundCampaignRequest struct {
	SeriesCode string `json:"series_code"`
}

// FundCampaign runs the whole funding sequence: solvency check,
// activation, then one QR batch per saved tier in strict order. The
// local quote gates the attempt, but the platform re-validates on
// payment and its numbers always win. Tiers already issued before a
// hard abort stay issued.
func FundCampaign(c *gin.Context) {
	utils.LogInfo("FundCampaign called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	campaign, ok := loadCampaign(c, vendorID)
	if !ok {
		return
	}
	if campaign.Status != models.CampaignStatusPending && campaign.Status != models.CampaignStatusActive {
		utils.BadRequest(c, fmt.Sprintf("Campaign cannot be funded in status %q", campaign.Status), nil)
		return
	}
	if campaign.RequiresProduct && campaign.ProductID == nil {
		utils.BadRequest(c, engine.ErrProductRequired.Error(), nil)
		return
	}
	if len(campaign.Allocations) == 0 {
		utils.BadRequest(c, engine.ErrNoSavedTiers.Error(), nil)
		return
	}

	var req FundCampaignRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.SeriesCode != "" {
		req.SeriesCode = utils.NormalizeSeriesCode(req.SeriesCode)
		if ok, msg := utils.ValidateSeriesCode(req.SeriesCode); !ok {
			utils.BadRequest(c, msg, nil)
			return
		}
		campaign.SeriesCode = req.SeriesCode
	}

	allocations := engine.FromSaved(campaign.Allocations)
	quote, err := engine.BuildQuote(allocations, config.App.QRUnitRate, campaign.VoucherType)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	token := middleware.VendorToken(c)
	orchestrator := engine.NewFundingOrchestrator(config.Platform)
	start := time.Now()

	if campaign.Status == models.CampaignStatusPending {
		wallet, err := config.Platform.GetWallet(c.Request.Context(), token)
		if err != nil {
			utils.LogError("Failed to fetch wallet for vendor %d: %v", vendorID, err)
			respondPlatformError(c, err)
			return
		}
		authorization := engine.Authorize(quote.TotalCost, decimal.NewFromFloat(wallet.AvailableBalance))
		if !authorization.Authorized {
			utils.LogInfo("Funding blocked for campaign %d: short by %s", campaign.ID, authorization.Shortfall.StringFixed(2))
			utils.PaymentRequired(c, "Insufficient wallet balance", gin.H{
				"required":  quote.TotalCost.StringFixed(2),
				"available": fmt.Sprintf("%.2f", wallet.AvailableBalance),
				"shortfall": authorization.Shortfall.StringFixed(2),
			})
			return
		}

		if err := orchestrator.Activate(c.Request.Context(), token, campaign.PlatformID, campaign.SeriesCode); err != nil {
			utils.LogError("Activation failed for campaign %d: %v", campaign.ID, err)
			metrics.RecordFunding("failure", time.Since(start).Seconds(), 0)
			respondPlatformError(c, err)
			return
		}
		campaign.Status = models.CampaignStatusActive
		if err := utils.UpdateCampaign(campaign); err != nil {
			utils.LogError("Failed to mark campaign %d active: %v", campaign.ID, err)
			utils.InternalServerError(c, "Failed to update campaign", err.Error())
			return
		}
		utils.LogInfo("Campaign %d activated and funded", campaign.ID)
	}

	outcome, err := orchestrator.GenerateBatches(c.Request.Context(), token, campaign)
	if outcome != nil {
		recordOrders(vendorID, campaign, outcome)
	}
	if err != nil {
		// Hard abort: tiers issued so far stay issued and are already
		// recorded above.
		utils.LogError("Funding loop aborted for campaign %d after %d successes: %v", campaign.ID, safeSuccesses(outcome), err)
		metrics.RecordFunding("failure", time.Since(start).Seconds(), safeSuccesses(outcome))
		refreshWalletSnapshot(c, vendorID)
		respondPlatformError(c, err)
		return
	}

	if outcome.Successes > 0 {
		recordFundingDebit(vendorID, campaign, outcome, quote)
		refreshWalletSnapshot(c, vendorID)
	}

	outcomeLabel := "success"
	if outcome.Failures > 0 {
		outcomeLabel = "partial"
		if outcome.Successes == 0 {
			outcomeLabel = "failure"
		}
	}
	metrics.RecordFunding(outcomeLabel, time.Since(start).Seconds(), outcome.Successes)

	utils.LogInfo("Funding finished for campaign %d: %s", campaign.ID, outcome.Summary())
	utils.Success(c, outcome.Summary(), gin.H{
		"campaign_id":   campaign.ID,
		"status":        campaign.Status,
		"successes":     outcome.Successes,
		"failures":      outcome.Failures,
		"order_ids":     outcome.OrderIDs,
		"sample_hashes": outcome.SampleHashes,
		"quote":         formatQuote(quote),
	})
}

func safeSuccesses(outcome *engine.BatchOutcome) int {
	if outcome == nil {
		return 0
	}
	return outcome.Successes
}

// formatQuote renders a quote with display-ready amounts.
func formatQuote(quote *engine.Quote) gin.H {
	return gin.H{
		"total_quantity": quote.TotalQuantity,
		"base_budget":    quote.BaseBudget.StringFixed(2),
		"print_cost":     quote.PrintCost.StringFixed(2),
		"voucher_cost":   quote.VoucherCost.StringFixed(2),
		"total_cost":     quote.TotalCost.StringFixed(2),
	}
}

// recordOrders persists one immutable order per successfully issued
// tier.
func recordOrders(vendorID uint, campaign *models.Campaign, outcome *engine.BatchOutcome) {
	printFeePerUnit := config.App.QRUnitRate.Mul(decimal.NewFromFloat(1.18))
	for _, tier := range outcome.Tiers {
		if tier.OrderID == "" {
			continue
		}
		order := models.Order{
			VendorID:        vendorID,
			CampaignID:      campaign.ID,
			PlatformOrderID: tier.OrderID,
			Price:           tier.Price,
			Quantity:        tier.Quantity,
			QRCount:         tier.QRCount,
			PrintCost:       printFeePerUnit.Mul(decimal.NewFromInt(int64(tier.Quantity))).InexactFloat64(),
			TotalAmount:     tier.OrderTotal,
			SampleHashes:    strings.Join(tier.SampleHashes, ","),
			Reference:       "BATCH-" + uuid.New().String(),
		}
		if err := utils.CreateOrder(&order); err != nil {
			utils.LogError("Failed to record order %s for campaign %d: %v", tier.OrderID, campaign.ID, err)
		}
	}
}

// recordFundingDebit mirrors the wallet debit a funding run caused. The
// platform's per-order totals are preferred; the local quote only fills
// in when the platform did not report charges.
func recordFundingDebit(vendorID uint, campaign *models.Campaign, outcome *engine.BatchOutcome, quote *engine.Quote) {
	total := 0.0
	for _, tier := range outcome.Tiers {
		total += tier.OrderTotal
	}
	if total == 0 {
		total = quote.TotalCost.InexactFloat64()
	}

	campaignID := campaign.ID
	txn := models.WalletTransaction{
		VendorID:    vendorID,
		Amount:      total,
		Type:        models.TransactionTypeDebit,
		Description: fmt.Sprintf("Funding for campaign %q", campaign.Title),
		CampaignID:  &campaignID,
		Reference:   fmt.Sprintf("FUND-CAMPAIGN-%d", campaign.ID),
	}
	if err := utils.CreateWalletTransaction(&txn); err != nil {
		utils.LogError("Failed to record funding transaction for campaign %d: %v", campaign.ID, err)
	}
}
