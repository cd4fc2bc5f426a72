package platform

// Campaign is the platform's wire representation of a campaign.
type Campaign struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	PlanType       string  `json:"plan_type"`
	VoucherType    string  `json:"voucher_type"`
	Status         string  `json:"status"`
	CashbackAmount float64 `json:"cashback_amount"`
	SheetCount     int     `json:"sheet_count"`
	QRsPerSheet    int     `json:"qrs_per_sheet"`
}

// AllocationSpec is one tier in a campaign create/update request.
// Price is omitted for postpaid tiers.
type AllocationSpec struct {
	Price    *float64 `json:"price,omitempty"`
	Quantity int      `json:"quantity"`
}

// CampaignSpec is the payload for creating a campaign.
type CampaignSpec struct {
	Title          string           `json:"title"`
	PlanType       string           `json:"plan_type"`
	VoucherType    string           `json:"voucher_type"`
	CashbackAmount float64          `json:"cashback_amount,omitempty"`
	SheetCount     int              `json:"sheet_count,omitempty"`
	QRsPerSheet    int              `json:"qrs_per_sheet,omitempty"`
	Allocations    []AllocationSpec `json:"allocations,omitempty"`
}

// CampaignPatch carries the fields an update may change. Nil fields are
// left untouched by the platform.
type CampaignPatch struct {
	Title          *string          `json:"title,omitempty"`
	VoucherType    *string          `json:"voucher_type,omitempty"`
	CashbackAmount *float64         `json:"cashback_amount,omitempty"`
	Allocations    []AllocationSpec `json:"allocations,omitempty"`
}

// DeleteResult reports the wallet unlock performed when a campaign is
// deleted server-side.
type DeleteResult struct {
	RefundedAmount float64 `json:"refunded_amount"`
}

// QR is one code from the vendor's inventory.
type QR struct {
	UniqueHash     string  `json:"unique_hash"`
	Status         string  `json:"status"`
	CashbackAmount float64 `json:"cashback_amount"`
	CampaignID     string  `json:"campaign_id,omitempty"`
	CampaignTitle  string  `json:"campaign_title,omitempty"`
}

// QRPage is one page of the vendor's QR list.
type QRPage struct {
	Items        []QR           `json:"items"`
	Total        int            `json:"total"`
	StatusCounts map[string]int `json:"status_counts,omitempty"`
}

// OrderInfo identifies the platform order created by a batch issuance.
type OrderInfo struct {
	ID          string  `json:"id"`
	TotalAmount float64 `json:"total_amount"`
}

// BatchResult is the outcome of a single tier issuance call. Depending
// on platform version the minted hashes arrive either as full QR
// objects or as a bare sample list.
type BatchResult struct {
	Count        int       `json:"count"`
	Order        OrderInfo `json:"order"`
	QRs          []QR      `json:"qrs,omitempty"`
	SampleHashes []string  `json:"sample_hashes,omitempty"`
}

// Hashes returns the minted hashes regardless of which field the
// platform populated.
func (r *BatchResult) Hashes() []string {
	if len(r.SampleHashes) > 0 {
		return r.SampleHashes
	}
	hashes := make([]string, 0, len(r.QRs))
	for _, qr := range r.QRs {
		hashes = append(hashes, qr.UniqueHash)
	}
	return hashes
}

// CampaignStats is the platform's authoritative per-campaign counters.
type CampaignStats struct {
	ID               string `json:"id"`
	Campaign         string `json:"campaign"`
	TotalQRsOrdered  int    `json:"total_qrs_ordered"`
	TotalUsersJoined int    `json:"total_users_joined"`
}

// Wallet is the platform wallet state for a vendor.
type Wallet struct {
	Balance          float64 `json:"balance"`
	LockedBalance    float64 `json:"locked_balance"`
	AvailableBalance float64 `json:"available_balance"`
}

// ExportRequest parameterizes a campaign PDF export. Offset, Limit,
// Part and TotalParts are only set for chunked exports.
type ExportRequest struct {
	Fast       bool `json:"fast"`
	SkipLogo   bool `json:"skip_logo"`
	Offset     *int `json:"offset,omitempty"`
	Limit      *int `json:"limit,omitempty"`
	Part       *int `json:"part,omitempty"`
	TotalParts *int `json:"total_parts,omitempty"`
}
