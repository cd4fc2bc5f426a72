package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/engine"
	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
	"github.com/zapkash/vendor-console/utils"
)

// CreateCampaignRequest represents the request body for creating a campaign
type CreateCampaignRequest struct {
	Title           string                     `json:"title" binding:"required"`
	PlanType        string                     `json:"plan_type" binding:"required,oneof=prepaid postpaid"`
	VoucherType     string                     `json:"voucher_type" binding:"omitempty,oneof=none digital_voucher printed_qr"`
	CashbackAmount  float64                    `json:"cashback_amount"`
	SeriesCode      string                     `json:"series_code"`
	RequiresProduct bool                       `json:"requires_product"`
	ProductID       *uint                      `json:"product_id"`
	SheetCount      int                        `json:"sheet_count"`
	QRsPerSheet     int                        `json:"qrs_per_sheet"`
	Allocations     []engine.RawAllocationRow  `json:"allocations" binding:"required"`
}

// platformCampaignSpec builds the platform create payload from a
// validated request.
func platformCampaignSpec(req *CreateCampaignRequest, allocations []engine.Allocation) platform.CampaignSpec {
	return platform.CampaignSpec{
		Title:          req.Title,
		PlanType:       req.PlanType,
		VoucherType:    req.VoucherType,
		CashbackAmount: req.CashbackAmount,
		SheetCount:     req.SheetCount,
		QRsPerSheet:    req.QRsPerSheet,
		Allocations:    toAllocationSpecs(allocations),
	}
}

// CreateCampaign registers a campaign on the platform and saves the
// console's record of it. The campaign starts pending; no funds move
// until it is funded.
func CreateCampaign(c *gin.Context) {
	utils.LogInfo("CreateCampaign called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	req.Title = utils.SanitizeString(req.Title)
	if req.VoucherType == "" {
		req.VoucherType = models.VoucherTypeNone
	}
	req.SeriesCode = utils.NormalizeSeriesCode(req.SeriesCode)

	fieldErrors := utils.FieldValidationErrors{}
	if ok, msg := utils.ValidateCampaignTitle(req.Title); !ok {
		fieldErrors["title"] = msg
	}
	if ok, msg := utils.ValidateSeriesCode(req.SeriesCode); !ok {
		fieldErrors["series_code"] = msg
	}
	if len(fieldErrors) > 0 {
		utils.BadRequest(c, "Validation failed", fieldErrors)
		return
	}

	allocations, err := engine.NormalizeAllocations(req.Allocations, req.PlanType)
	if err != nil {
		utils.LogError("Allocation validation failed for vendor %d: %v", vendorID, err)
		utils.ValidationError(c, err.Error(), nil)
		return
	}
	subtotal := engine.Subtotal(allocations)

	spec := platformCampaignSpec(&req, allocations)
	created, err := config.Platform.CreateCampaign(c.Request.Context(), middleware.VendorToken(c), spec)
	if err != nil {
		utils.LogError("Platform campaign creation failed for vendor %d: %v", vendorID, err)
		respondPlatformError(c, err)
		return
	}

	campaign := models.Campaign{
		VendorID:        vendorID,
		PlatformID:      created.ID,
		Title:           req.Title,
		PlanType:        req.PlanType,
		VoucherType:     req.VoucherType,
		Status:          models.CampaignStatusPending,
		CashbackAmount:  req.CashbackAmount,
		SeriesCode:      req.SeriesCode,
		RequiresProduct: req.RequiresProduct,
		ProductID:       req.ProductID,
		SheetCount:      req.SheetCount,
		QRsPerSheet:     req.QRsPerSheet,
		Subtotal:        subtotal.InexactFloat64(),
		TotalBudget:     subtotal.InexactFloat64(),
		Allocations:     toModelAllocations(allocations),
	}
	if err := utils.CreateCampaign(&campaign); err != nil {
		utils.LogError("Failed to save campaign for vendor %d: %v", vendorID, err)
		utils.InternalServerError(c, "Failed to save campaign", err.Error())
		return
	}

	utils.LogInfo("Created campaign %d (platform %s) for vendor %d", campaign.ID, campaign.PlatformID, vendorID)
	utils.Created(c, "Campaign created successfully", formatCampaign(&campaign))
}

// ListCampaigns returns a page of the vendor's campaigns
func ListCampaigns(c *gin.Context) {
	utils.LogInfo("ListCampaigns called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	pagination := utils.NewPagination(c)
	campaigns, total, err := utils.GetVendorCampaigns(vendorID, pagination.Page, pagination.Limit)
	if err != nil {
		utils.LogError("Failed to list campaigns for vendor %d: %v", vendorID, err)
		utils.InternalServerError(c, "Failed to list campaigns", err.Error())
		return
	}

	formatted := make([]gin.H, len(campaigns))
	for i := range campaigns {
		formatted[i] = formatCampaign(&campaigns[i])
	}
	utils.SuccessWithPagination(c, "Campaigns retrieved", formatted, total, pagination.Page, pagination.Limit)
}

// GetCampaign returns one campaign with its tiers and price groups
func GetCampaign(c *gin.Context) {
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	campaign, ok := loadCampaign(c, vendorID)
	if !ok {
		return
	}
	utils.Success(c, "Campaign retrieved", formatCampaign(campaign))
}

// loadCampaign parses the :id param and fetches the vendor's campaign,
// writing the error response itself when either step fails.
func loadCampaign(c *gin.Context, vendorID uint) (*models.Campaign, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid campaign ID", nil)
		return nil, false
	}
	campaign, err := utils.GetCampaignByID(vendorID, uint(id))
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.NotFound(c, "Campaign not found")
		} else {
			utils.LogError("Failed to load campaign %d for vendor %d: %v", id, vendorID, err)
			utils.InternalServerError(c, "Failed to load campaign", err.Error())
		}
		return nil, false
	}
	return campaign, true
}
