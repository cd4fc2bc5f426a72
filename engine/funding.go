package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
	"github.com/zapkash/vendor-console/utils"
)

// sampleHashCap bounds how many minted hashes the outcome keeps for
// display; large campaigns mint far more than anyone wants to see.
const sampleHashCap = 50

// Funding preconditions.
var (
	ErrCampaignNotActive = errors.New("campaign must be active before generating QR batches")
	ErrProductRequired   = errors.New("select a product before generating QR batches")
	ErrNoSavedTiers      = errors.New("campaign has no saved tiers")
)

// TierResult records what happened to one tier of the funding loop.
type TierResult struct {
	Price        float64  `json:"price"`
	Quantity     int      `json:"quantity"`
	QRCount      int      `json:"qr_count"`
	OrderID      string   `json:"order_id,omitempty"`
	OrderTotal   float64  `json:"order_total,omitempty"`
	SampleHashes []string `json:"sample_hashes,omitempty"`
	Err          error    `json:"-"`
}

// BatchOutcome aggregates a whole funding loop. Successes counts QRs
// actually minted; Failures counts tiers that errored and were skipped.
type BatchOutcome struct {
	Successes    int          `json:"successes"`
	Failures     int          `json:"failures"`
	SampleHashes []string     `json:"sample_hashes"`
	OrderIDs     []string     `json:"order_ids"`
	Tiers        []TierResult `json:"tiers"`
}

// Summary renders the terminal status message: total failure, partial
// success, or clean success each read differently.
func (o *BatchOutcome) Summary() string {
	switch {
	case o.Successes == 0 && o.Failures > 0:
		return "QR generation failed for all tiers"
	case o.Failures > 0:
		return fmt.Sprintf("Generated %d QR codes (%d tiers failed)", o.Successes, o.Failures)
	default:
		return fmt.Sprintf("Generated %d QR codes", o.Successes)
	}
}

// FundingOrchestrator sequences campaign activation and per-tier QR
// batch issuance against the platform.
type FundingOrchestrator struct {
	api PlatformAPI
}

// NewFundingOrchestrator creates an orchestrator over the given
// platform API.
func NewFundingOrchestrator(api PlatformAPI) *FundingOrchestrator {
	return &FundingOrchestrator{api: api}
}

// Activate funds the campaign in a single platform call. For pending
// campaigns a series code additionally draws pre-provisioned inventory
// from that named pool.
func (f *FundingOrchestrator) Activate(ctx context.Context, token, campaignID, seriesCode string) error {
	return f.api.PayCampaign(ctx, token, campaignID, seriesCode)
}

// GenerateBatches issues one QR batch per saved tier, strictly in tier
// order, never concurrently, so no two issuance calls can pass a stale
// solvency check at the same time and every error stays attributable to
// its tier. Session expiry, access denial and insufficient balance
// abort the remaining loop immediately; any other tier error is
// absorbed into the failure counter and the loop moves on. Already
// issued tiers are never rolled back: the partial outcome is returned
// alongside the aborting error.
func (f *FundingOrchestrator) GenerateBatches(ctx context.Context, token string, campaign *models.Campaign) (*BatchOutcome, error) {
	if campaign.Status != models.CampaignStatusActive {
		return nil, ErrCampaignNotActive
	}
	if campaign.RequiresProduct && campaign.ProductID == nil {
		return nil, ErrProductRequired
	}
	if len(campaign.Allocations) == 0 {
		return nil, ErrNoSavedTiers
	}

	outcome := &BatchOutcome{}
	for _, tier := range campaign.Allocations {
		cashback := campaign.CashbackAmount
		if tier.Price != nil {
			cashback = *tier.Price
		}

		result, err := f.api.IssueQRBatch(ctx, token, campaign.PlatformID, tier.Quantity, cashback, campaign.SeriesCode)
		if err != nil {
			outcome.Failures++
			outcome.Tiers = append(outcome.Tiers, TierResult{Price: cashback, Quantity: tier.Quantity, Err: err})
			if platform.IsHardAbort(err) {
				utils.LogError("Tier issuance aborted for campaign %s: %v", campaign.PlatformID, err)
				return outcome, err
			}
			utils.LogError("Tier issuance failed for campaign %s (price %.2f): %v", campaign.PlatformID, cashback, err)
			continue
		}

		count := result.Count
		if count == 0 {
			count = len(result.Hashes())
		}
		outcome.Successes += count
		outcome.OrderIDs = append(outcome.OrderIDs, result.Order.ID)
		var tierHashes []string
		for _, hash := range result.Hashes() {
			if len(outcome.SampleHashes) >= sampleHashCap {
				break
			}
			outcome.SampleHashes = append(outcome.SampleHashes, hash)
			tierHashes = append(tierHashes, hash)
		}
		outcome.Tiers = append(outcome.Tiers, TierResult{
			Price:        cashback,
			Quantity:     tier.Quantity,
			QRCount:      count,
			OrderID:      result.Order.ID,
			OrderTotal:   result.Order.TotalAmount,
			SampleHashes: tierHashes,
		})
		utils.LogInfo("Issued %d QRs for campaign %s at price %.2f (order %s)", count, campaign.PlatformID, cashback, result.Order.ID)
	}
	return outcome, nil
}
