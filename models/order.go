package models

import (
	"strings"
	"time"
)

// Order records one successful tier issuance: the batch of QRs minted
// for a single (price, quantity) tier. Immutable once created.
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	VendorID        uint      `json:"vendor_id" gorm:"index"`
	CampaignID      uint      `json:"campaign_id" gorm:"index"`
	Campaign        Campaign  `json:"-" gorm:"foreignKey:CampaignID"`
	PlatformOrderID string    `json:"platform_order_id"`
	Price           float64   `json:"price"`
	Quantity        int       `json:"quantity"`
	QRCount         int       `json:"qr_count"`
	PrintCost       float64   `json:"print_cost"`
	TotalAmount     float64   `json:"total_amount"`
	SampleHashes    string    `json:"-" gorm:"type:text"` // comma separated, capped upstream
	Reference       string    `json:"reference"`
	CreatedAt       time.Time `json:"created_at"`
}

// SampleHashList splits the stored sample hashes back into a slice.
func (o *Order) SampleHashList() []string {
	if o.SampleHashes == "" {
		return nil
	}
	return strings.Split(o.SampleHashes, ",")
}
