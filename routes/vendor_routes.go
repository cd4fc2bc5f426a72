package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/zapkash/vendor-console/controllers"
	"github.com/zapkash/vendor-console/middleware"
)

// initVendorRoutes sets up the vendor console routes. Everything here
// requires a valid vendor session token.
func initVendorRoutes(api *gin.RouterGroup) {
	vendor := api.Group("")
	vendor.Use(middleware.VendorAuth())
	{
		campaigns := vendor.Group("/campaigns")
		{
			campaigns.POST("", controllers.CreateCampaign)
			campaigns.GET("", controllers.ListCampaigns)
			campaigns.GET("/:id", controllers.GetCampaign)
			campaigns.PATCH("/:id", controllers.UpdateCampaign)
			campaigns.DELETE("/:id", controllers.DeleteCampaign)

			campaigns.GET("/:id/quote", controllers.GetFundingQuote)
			campaigns.POST("/:id/fund", controllers.FundCampaign)
			campaigns.GET("/:id/qr-breakdown", controllers.GetQRBreakdown)

			campaigns.POST("/:id/export", controllers.StartCampaignExport)
			campaigns.GET("/:id/reports/funding.pdf", controllers.DownloadFundingSummaryPDF)
			campaigns.GET("/:id/reports/breakdown.xlsx", controllers.DownloadQRBreakdownExcel)
		}

		exports := vendor.Group("/exports")
		{
			exports.GET("/:id", controllers.GetExportJob)
			exports.GET("/:id/parts/:part", controllers.DownloadExportPart)
		}

		orders := vendor.Group("/orders")
		{
			orders.GET("", controllers.ListOrders)
			orders.GET("/:id", controllers.GetOrder)
		}

		wallet := vendor.Group("/wallet")
		{
			wallet.GET("/balance", controllers.GetWalletBalance)
			wallet.GET("/transactions", controllers.GetWalletTransactions)
		}
	}
}
