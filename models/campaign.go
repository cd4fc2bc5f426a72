package models

import (
	"time"

	"gorm.io/gorm"
)

// Plan type constants
const (
	PlanTypePrepaid  = "prepaid"
	PlanTypePostpaid = "postpaid"
)

// Voucher type constants
const (
	VoucherTypeNone    = "none"
	VoucherTypeDigital = "digital_voucher"
	VoucherTypePrinted = "printed_qr"
)

// Campaign status constants
const (
	CampaignStatusPending = "pending"
	CampaignStatusActive  = "active"
	CampaignStatusEnded   = "ended"
	CampaignStatusDeleted = "deleted"
)

// Campaign is the console's record of a vendor campaign. The platform
// holds the authoritative copy; PlatformID links the two.
type Campaign struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	VendorID        uint           `json:"vendor_id" gorm:"index"`
	PlatformID      string         `json:"platform_id" gorm:"index"`
	Title           string         `json:"title"`
	PlanType        string         `json:"plan_type"` // prepaid, postpaid
	VoucherType     string         `json:"voucher_type"`
	Status          string         `json:"status"`
	CashbackAmount  float64        `json:"cashback_amount"` // fallback cashback when a tier carries none
	SeriesCode      string         `json:"series_code,omitempty"`
	RequiresProduct bool           `json:"requires_product"`
	ProductID       *uint          `json:"product_id,omitempty"`
	SheetCount      int            `json:"sheet_count"`
	QRsPerSheet     int            `json:"qrs_per_sheet"`
	Subtotal        float64        `json:"subtotal"`
	TotalBudget     float64        `json:"total_budget"`
	Allocations     []Allocation   `json:"allocations" gorm:"foreignKey:CampaignID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Allocation is one saved billing tier: mint Quantity QRs worth Price each.
// Price is null for postpaid tiers, where the platform bills on redemption.
type Allocation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CampaignID  uint      `json:"campaign_id" gorm:"index"`
	Price       *float64  `json:"price"`
	Quantity    int       `json:"quantity"`
	TotalBudget float64   `json:"total_budget"`
	Position    int       `json:"position"` // insertion order of the vendor's tier rows
	CreatedAt   time.Time `json:"created_at"`
}
