package engine

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
	"github.com/zapkash/vendor-console/utils"
)

const (
	// reconcilePageSize is the fixed page size used when walking the
	// vendor's full QR inventory.
	reconcilePageSize = 100
	// reconcileMaxPages caps the walk so a misbehaving platform
	// pagination can never keep us looping.
	reconcileMaxPages = 150
)

// StopReason says why a reconciliation pass stopped paging.
type StopReason int

const (
	// StopMatchedExpected: the matched count reached the platform's
	// expected total.
	StopMatchedExpected StopReason = iota
	// StopLastPage: a short page implied the end of the inventory.
	StopLastPage
	// StopPageCap: the defensive page cap fired.
	StopPageCap
)

// Breakdown is the reconciled per-price-tier view of a campaign's QRs.
type Breakdown struct {
	PriceGroups  []PriceGroup `json:"price_groups"`
	MatchedCount int          `json:"matched_count"`
	Complete     bool         `json:"complete"`
	PagesScanned int          `json:"pages_scanned"`
	Stop         StopReason   `json:"-"`
}

// Reconciler pages over the vendor's QR inventory to compute true
// per-price-tier active/redeemed counts for one campaign.
type Reconciler struct {
	api      PlatformAPI
	pageSize int
	maxPages int
}

// NewReconciler creates a reconciler with the standard page size and
// safety cap.
func NewReconciler(api PlatformAPI) *Reconciler {
	return &Reconciler{api: api, pageSize: reconcilePageSize, maxPages: reconcileMaxPages}
}

// matchesCampaign checks whether a QR belongs to the campaign. QRs
// reference campaigns by platform id, with older inventory carrying
// only the title.
func matchesCampaign(qr platform.QR, campaign *models.Campaign) bool {
	if qr.CampaignID != "" {
		return qr.CampaignID == campaign.PlatformID
	}
	return qr.CampaignTitle != "" && strings.EqualFold(qr.CampaignTitle, campaign.Title)
}

// Reconcile walks the inventory one page at a time, bucketing matching
// QRs into price groups. Pages are fetched sequentially because each
// page's stop check depends on the counts accumulated so far.
// Termination, checked each page in order: the expected total was
// reached, a short page was seen, or the page cap fired. expectedTotal
// comes from the platform's campaign stats; zero or negative means
// nothing to converge against, in which case the result counts as
// complete.
func (r *Reconciler) Reconcile(ctx context.Context, token string, campaign *models.Campaign, expectedTotal int) (*Breakdown, error) {
	buckets := make(map[string]*PriceGroup)
	breakdown := &Breakdown{}

	for page := 1; ; page++ {
		result, err := r.api.ListQRs(ctx, token, page, r.pageSize)
		if err != nil {
			return nil, err
		}
		breakdown.PagesScanned++

		for _, qr := range result.Items {
			if !matchesCampaign(qr, campaign) {
				continue
			}
			breakdown.MatchedCount++

			price := qr.CashbackAmount
			if price == 0 {
				price = campaign.CashbackAmount
			}
			priceDec := decimal.NewFromFloat(price)
			key := priceDec.StringFixed(2)
			group, ok := buckets[key]
			if !ok {
				group = &PriceGroup{Key: key, Price: priceDec}
				buckets[key] = group
			}
			group.Quantity++
			switch models.ClassifyQRStatus(qr.Status) {
			case models.QRClassRedeemed:
				group.RedeemedCount++
			case models.QRClassActive:
				group.ActiveCount++
			}
		}

		if expectedTotal > 0 && breakdown.MatchedCount >= expectedTotal {
			breakdown.Stop = StopMatchedExpected
			break
		}
		if len(result.Items) < r.pageSize {
			breakdown.Stop = StopLastPage
			break
		}
		if page >= r.maxPages {
			utils.LogError("QR reconciliation hit the %d page cap for campaign %s", r.maxPages, campaign.PlatformID)
			breakdown.Stop = StopPageCap
			break
		}
	}

	breakdown.Complete = expectedTotal <= 0 || breakdown.MatchedCount >= expectedTotal
	breakdown.PriceGroups = sortPriceGroups(buckets)
	return breakdown, nil
}
