package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/utils"
)

// ListOrders returns the vendor's QR batch orders, newest first,
// optionally filtered to one campaign via ?campaign_id=.
func ListOrders(c *gin.Context) {
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	var campaignID *uint
	if raw := c.Query("campaign_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequest(c, "Invalid campaign ID", nil)
			return
		}
		cid := uint(id)
		campaignID = &cid
	}

	pagination := utils.NewPagination(c)
	orders, total, err := utils.GetVendorOrders(vendorID, campaignID, pagination.Page, pagination.Limit)
	if err != nil {
		utils.LogError("Failed to fetch orders for vendor %d: %v", vendorID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	formatted := make([]gin.H, len(orders))
	for i := range orders {
		formatted[i] = formatOrder(&orders[i])
	}
	utils.SuccessWithPagination(c, "Orders retrieved", formatted, total, pagination.Page, pagination.Limit)
}

// GetOrder returns one order with its sample hashes.
func GetOrder(c *gin.Context) {
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	order, err := utils.GetOrderByID(vendorID, uint(id))
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.NotFound(c, "Order not found")
		} else {
			utils.InternalServerError(c, "Failed to load order", err.Error())
		}
		return
	}

	detail := formatOrder(order)
	detail["sample_hashes"] = order.SampleHashList()
	utils.Success(c, "Order retrieved", detail)
}

func formatOrder(order *models.Order) gin.H {
	return gin.H{
		"id":                order.ID,
		"campaign_id":       order.CampaignID,
		"platform_order_id": order.PlatformOrderID,
		"price":             formatMoney(order.Price),
		"quantity":          order.Quantity,
		"qr_count":          order.QRCount,
		"print_cost":        formatMoney(order.PrintCost),
		"total_amount":      formatMoney(order.TotalAmount),
		"reference":         order.Reference,
		"created_at":        order.CreatedAt,
	}
}
