package models

import (
	"time"

	"gorm.io/gorm"
)

// WalletSnapshot caches the platform wallet for a vendor. The platform
// is authoritative; the snapshot is refreshed after every funding action.
type WalletSnapshot struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	VendorID         uint           `json:"vendor_id" gorm:"uniqueIndex"`
	Balance          float64        `json:"balance"`
	LockedBalance    float64        `json:"locked_balance"`
	AvailableBalance float64        `json:"available_balance"`
	RefreshedAt      time.Time      `json:"refreshed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// WalletTransaction mirrors wallet movements the console itself caused:
// funding debits and campaign-deletion refunds.
type WalletTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VendorID    uint      `json:"vendor_id" gorm:"index"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // credit, debit
	Description string    `json:"description"`
	CampaignID  *uint     `json:"campaign_id"`
	OrderID     *uint     `json:"order_id"`
	Reference   string    `json:"reference"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionType constants
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)
