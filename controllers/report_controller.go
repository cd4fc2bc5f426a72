package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/engine"
	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/utils"
)

// DownloadFundingSummaryPDF renders a campaign's funding history as a
// PDF: one row per issued batch order plus totals.
func DownloadFundingSummaryPDF(c *gin.Context) {
	utils.LogInfo("DownloadFundingSummaryPDF called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	campaign, ok := loadCampaign(c, vendorID)
	if !ok {
		return
	}

	campaignID := campaign.ID
	orders, _, err := utils.GetVendorOrders(vendorID, &campaignID, 1, 1000)
	if err != nil {
		utils.LogError("Failed to fetch orders for campaign %d: %v", campaignID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d orders for funding summary", len(orders))

	// --- Calculate summary ---
	var summary struct {
		TotalOrders    int
		TotalQRs       int
		TotalPrintCost float64
		TotalDebited   float64
	}
	for _, order := range orders {
		summary.TotalOrders++
		summary.TotalQRs += order.QRCount
		summary.TotalPrintCost += order.PrintCost
		summary.TotalDebited += order.TotalAmount
	}

	// --- PDF Generation ---
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "ZAPKASH - Campaign Funding Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Campaign: "+campaign.Title)
	pdf.Ln(6)
	pdf.Cell(0, 8, "Plan: "+utils.Title(campaign.PlanType)+" | Voucher: "+utils.Title(strings.ReplaceAll(campaign.VoucherType, "_", " "))+" | Status: "+utils.Title(campaign.Status))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	// Table headers
	headers := []string{"Order ID", "Platform Order", "Price", "Quantity", "QR Count", "Print Cost", "Total", "Reference", "Date"}
	colWidths := []float64{22, 45, 25, 22, 22, 28, 28, 50, 32}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Table rows
	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, order := range orders {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", order.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, order.PlatformOrderID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%.2f", order.Price), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%d", order.Quantity), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, fmt.Sprintf("%d", order.QRCount), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", order.PrintCost), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, fmt.Sprintf("%.2f", order.TotalAmount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, order.Reference, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, order.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	// --- Summary Section ---
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(255, 255, 255)
	pdf.CellFormat(50, 8, "Total Orders", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%d", summary.TotalOrders), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(50, 8, "Total QRs Issued", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%d", summary.TotalQRs), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(50, 8, "Total Print Cost", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", summary.TotalPrintCost), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(50, 8, "Total Debited", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", summary.TotalDebited), "1", 0, "R", false, 0, "")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=funding_summary_%d.pdf", campaign.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Generated funding summary PDF for campaign %d", campaign.ID)
}

// DownloadQRBreakdownExcel runs the QR reconciliation for a campaign
// and streams the per-price-tier counts as an Excel sheet.
func DownloadQRBreakdownExcel(c *gin.Context) {
	utils.LogInfo("DownloadQRBreakdownExcel called")
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
	utils.LogDebug("Reconciled %d QRs over %d pages for Excel report", breakdown.MatchedCount, breakdown.PagesScanned)

	// --- Excel Generation ---
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("QR Breakdown")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("ZAPKASH - QR Breakdown")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Campaign: " + campaign.Title)
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headers := []string{"Price", "Quantity", "Active", "Redeemed"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, group := range breakdown.PriceGroups {
		row := sheet.AddRow()
		row.AddCell().SetString(group.Key)
		row.AddCell().SetInt(group.Quantity)
		row.AddCell().SetInt(group.ActiveCount)
		row.AddCell().SetInt(group.RedeemedCount)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Matched QRs", fmt.Sprintf("%d", breakdown.MatchedCount)},
		{"Expected Total", fmt.Sprintf("%d", expectedTotal)},
		{"Pages Scanned", fmt.Sprintf("%d", breakdown.PagesScanned)},
		{"Complete", fmt.Sprintf("%t", breakdown.Complete)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=qr_breakdown_%d.xlsx", campaign.ID))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Generated QR breakdown Excel for campaign %d", campaign.ID)
}
