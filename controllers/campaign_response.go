package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/engine"
	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
)

// formatMoney renders an amount with two decimal places.
func formatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// formatCampaign renders a campaign for API responses, tiers grouped by
// price in descending order.
func formatCampaign(campaign *models.Campaign) gin.H {
	allocations := make([]gin.H, len(campaign.Allocations))
	for i, tier := range campaign.Allocations {
		row := gin.H{
			"quantity":     tier.Quantity,
			"total_budget": fmt.Sprintf("%.2f", tier.TotalBudget),
		}
		if tier.Price != nil {
			row["price"] = fmt.Sprintf("%.2f", *tier.Price)
		} else {
			row["price"] = nil
		}
		allocations[i] = row
	}

	return gin.H{
		"id":               campaign.ID,
		"platform_id":      campaign.PlatformID,
		"title":            campaign.Title,
		"plan_type":        campaign.PlanType,
		"voucher_type":     campaign.VoucherType,
		"status":           campaign.Status,
		"cashback_amount":  fmt.Sprintf("%.2f", campaign.CashbackAmount),
		"series_code":      campaign.SeriesCode,
		"requires_product": campaign.RequiresProduct,
		"product_id":       campaign.ProductID,
		"sheet_count":      campaign.SheetCount,
		"qrs_per_sheet":    campaign.QRsPerSheet,
		"subtotal":         fmt.Sprintf("%.2f", campaign.Subtotal),
		"total_budget":     fmt.Sprintf("%.2f", campaign.TotalBudget),
		"allocations":      allocations,
		"price_groups":     formatPriceGroups(engine.GroupAllocationsByPrice(engine.FromSaved(campaign.Allocations))),
		"created_at":       campaign.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// formatPriceGroups renders price groups with display-ready amounts.
func formatPriceGroups(groups []engine.PriceGroup) []gin.H {
	formatted := make([]gin.H, len(groups))
	for i, group := range groups {
		formatted[i] = gin.H{
			"price":          group.Key,
			"quantity":       group.Quantity,
			"active_count":   group.ActiveCount,
			"redeemed_count": group.RedeemedCount,
		}
	}
	return formatted
}

// toModelAllocations converts canonical allocations into rows to save
// with a campaign.
func toModelAllocations(allocations []engine.Allocation) []models.Allocation {
	rows := make([]models.Allocation, len(allocations))
	for i, alloc := range allocations {
		row := models.Allocation{
			Quantity:    alloc.Quantity,
			TotalBudget: alloc.TotalBudget.InexactFloat64(),
			Position:    i,
		}
		if alloc.Cashback.Valid {
			price := alloc.Cashback.Decimal.InexactFloat64()
			row.Price = &price
		}
		rows[i] = row
	}
	return rows
}

// toAllocationSpecs converts canonical allocations into the platform's
// wire tiers.
func toAllocationSpecs(allocations []engine.Allocation) []platform.AllocationSpec {
	specs := make([]platform.AllocationSpec, len(allocations))
	for i, alloc := range allocations {
		spec := platform.AllocationSpec{Quantity: alloc.Quantity}
		if alloc.Cashback.Valid {
			price := alloc.Cashback.Decimal.InexactFloat64()
			spec.Price = &price
		}
		specs[i] = spec
	}
	return specs
}
