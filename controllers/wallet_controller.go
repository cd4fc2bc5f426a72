package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/utils"
)

// refreshWalletSnapshot re-reads the platform wallet and updates the
// cached snapshot. Failures are logged and swallowed: the snapshot is a
// cache, and the platform stays authoritative either way.
func refreshWalletSnapshot(c *gin.Context, vendorID uint) {
	wallet, err := config.Platform.GetWallet(c.Request.Context(), middleware.VendorToken(c))
	if err != nil {
		utils.LogError("Failed to refresh wallet for vendor %d: %v", vendorID, err)
		return
	}
	if _, err := utils.UpsertWalletSnapshot(vendorID, wallet.Balance, wallet.LockedBalance, wallet.AvailableBalance); err != nil {
		utils.LogError("Failed to save wallet snapshot for vendor %d: %v", vendorID, err)
	}
}

// GetWalletBalance returns the vendor's wallet state, read through from
// the platform.
func GetWalletBalance(c *gin.Context) {
	utils.LogInfo("GetWalletBalance called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	wallet, err := config.Platform.GetWallet(c.Request.Context(), middleware.VendorToken(c))
	if err != nil {
		utils.LogError("Failed to fetch wallet for vendor %d: %v", vendorID, err)
		respondPlatformError(c, err)
		return
	}
	snapshot, err := utils.UpsertWalletSnapshot(vendorID, wallet.Balance, wallet.LockedBalance, wallet.AvailableBalance)
	if err != nil {
		utils.LogError("Failed to save wallet snapshot for vendor %d: %v", vendorID, err)
	}

	response := gin.H{
		"balance":           fmt.Sprintf("%.2f", wallet.Balance),
		"locked_balance":    fmt.Sprintf("%.2f", wallet.LockedBalance),
		"available_balance": fmt.Sprintf("%.2f", wallet.AvailableBalance),
	}
	if snapshot != nil {
		response["refreshed_at"] = snapshot.RefreshedAt
	}
	utils.Success(c, "Wallet retrieved", response)
}

// GetWalletTransactions returns the console's mirror of wallet
// movements it caused: funding debits and deletion refunds.
func GetWalletTransactions(c *gin.Context) {
	utils.LogInfo("GetWalletTransactions called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	pagination := utils.NewPagination(c)
	transactions, total, err := utils.GetVendorTransactions(vendorID, pagination.Page, pagination.Limit)
	if err != nil {
		utils.LogError("Failed to list transactions for vendor %d: %v", vendorID, err)
		utils.InternalServerError(c, "Failed to list transactions", err.Error())
		return
	}

	formatted := make([]gin.H, len(transactions))
	for i, txn := range transactions {
		formatted[i] = gin.H{
			"id":          txn.ID,
			"amount":      fmt.Sprintf("%.2f", txn.Amount),
			"type":        txn.Type,
			"description": txn.Description,
			"reference":   txn.Reference,
			"campaign_id": txn.CampaignID,
			"order_id":    txn.OrderID,
			"created_at":  txn.CreatedAt,
		}
	}
	utils.SuccessWithPagination(c, "Transactions retrieved", formatted, total, pagination.Page, pagination.Limit)
}
