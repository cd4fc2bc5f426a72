package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
)

func qrPage(qrs ...platform.QR) *platform.QRPage {
	return &platform.QRPage{Items: qrs, Total: len(qrs)}
}

func fullPage(campaignID string, price float64, status string, n int) *platform.QRPage {
	items := make([]platform.QR, n)
	for i := range items {
		items[i] = platform.QR{
			UniqueHash:     fmt.Sprintf("%s-%d", campaignID, i),
			Status:         status,
			CashbackAmount: price,
			CampaignID:     campaignID,
		}
	}
	return &platform.QRPage{Items: items, Total: n}
}

func TestReconcileStopsWhenExpectedReached(t *testing.T) {
	api := &fakePlatform{pages: []*platform.QRPage{
		fullPage("cmp-1", 5, "active", 100),
		fullPage("cmp-1", 5, "active", 100),
		fullPage("cmp-1", 5, "active", 100), // never fetched
	}}
	campaign := &models.Campaign{PlatformID: "cmp-1", Title: "Summer Push"}

	breakdown, err := NewReconciler(api).Reconcile(context.Background(), "tok", campaign, 200)
	require.NoError(t, err)

	assert.Equal(t, 200, breakdown.MatchedCount)
	assert.Equal(t, 2, breakdown.PagesScanned)
	assert.Equal(t, 2, api.listCall)
	assert.True(t, breakdown.Complete)
	assert.Equal(t, StopMatchedExpected, breakdown.Stop)
}

func TestReconcileStopsOnShortPage(t *testing.T) {
	api := &fakePlatform{pages: []*platform.QRPage{
		fullPage("cmp-1", 5, "active", 100),
		qrPage(platform.QR{UniqueHash: "x", Status: "active", CashbackAmount: 5, CampaignID: "cmp-1"}),
	}}
	campaign := &models.Campaign{PlatformID: "cmp-1", Title: "Summer Push"}

	breakdown, err := NewReconciler(api).Reconcile(context.Background(), "tok", campaign, 500)
	require.NoError(t, err)

	assert.Equal(t, 101, breakdown.MatchedCount)
	assert.Equal(t, 2, breakdown.PagesScanned)
	assert.False(t, breakdown.Complete, "short of the expected total")
	assert.Equal(t, StopLastPage, breakdown.Stop)
}

func TestReconcilePageCapBoundsTheWalk(t *testing.T) {
	// Page cap guards a pagination that never ends. Every call serves an
	// unrelated full page so neither the expected total nor a short page
	// can stop the loop.
	pages := make([]*platform.QRPage, reconcileMaxPages+10)
	for i := range pages {
		pages[i] = fullPage("other-campaign", 1, "active", reconcilePageSize)
	}
	api := &fakePlatform{pages: pages}
	campaign := &models.Campaign{PlatformID: "cmp-1", Title: "Summer Push"}

	breakdown, err := NewReconciler(api).Reconcile(context.Background(), "tok", campaign, 1000)
	require.NoError(t, err)

	assert.Equal(t, reconcileMaxPages, breakdown.PagesScanned)
	assert.Equal(t, 0, breakdown.MatchedCount)
	assert.False(t, breakdown.Complete)
	assert.Equal(t, StopPageCap, breakdown.Stop)
}

func TestReconcileNoExpectedTotalIsComplete(t *testing.T) {
	api := &fakePlatform{pages: []*platform.QRPage{
		qrPage(platform.QR{UniqueHash: "a", Status: "active", CashbackAmount: 5, CampaignID: "cmp-1"}),
	}}
	campaign := &models.Campaign{PlatformID: "cmp-1", Title: "Summer Push"}

	breakdown, err := NewReconciler(api).Reconcile(context.Background(), "tok", campaign, 0)
	require.NoError(t, err)
	assert.True(t, breakdown.Complete)
	assert.Equal(t, StopLastPage, breakdown.Stop)
}

func TestReconcileClassifiesAndBuckets(t *testing.T) {
	api := &fakePlatform{pages: []*platform.QRPage{qrPage(
		platform.QR{UniqueHash: "a", Status: "active", CashbackAmount: 5, CampaignID: "cmp-1"},
		platform.QR{UniqueHash: "b", Status: "Redeemed", CashbackAmount: 5, CampaignID: "cmp-1"},
		platform.QR{UniqueHash: "c", Status: "claimed by user", CashbackAmount: 5, CampaignID: "cmp-1"},
		platform.QR{UniqueHash: "d", Status: "expired", CashbackAmount: 5, CampaignID: "cmp-1"},
		platform.QR{UniqueHash: "e", Status: "live", CashbackAmount: 10, CampaignID: "cmp-1"},
		// Legacy QR: no campaign id, matched by title, priced off the
		// campaign fallback.
		platform.QR{UniqueHash: "f", Status: "active", CampaignTitle: "summer push"},
		// Different campaign entirely.
		platform.QR{UniqueHash: "g", Status: "active", CashbackAmount: 5, CampaignID: "cmp-2"},
	)}}
	campaign := &models.Campaign{PlatformID: "cmp-1", Title: "Summer Push", CashbackAmount: 2}

	breakdown, err := NewReconciler(api).Reconcile(context.Background(), "tok", campaign, 0)
	require.NoError(t, err)

	assert.Equal(t, 6, breakdown.MatchedCount)
	require.Len(t, breakdown.PriceGroups, 3)

	// Descending by price: 10.00, 5.00, 2.00
	assert.Equal(t, "10.00", breakdown.PriceGroups[0].Key)
	assert.Equal(t, 1, breakdown.PriceGroups[0].ActiveCount)

	assert.Equal(t, "5.00", breakdown.PriceGroups[1].Key)
	assert.Equal(t, 4, breakdown.PriceGroups[1].Quantity)
	assert.Equal(t, 1, breakdown.PriceGroups[1].ActiveCount)
	assert.Equal(t, 2, breakdown.PriceGroups[1].RedeemedCount)

	assert.Equal(t, "2.00", breakdown.PriceGroups[2].Key)
	assert.Equal(t, 1, breakdown.PriceGroups[2].ActiveCount)
}

func TestReconcilePropagatesListErrors(t *testing.T) {
	api := &fakePlatform{listErr: &platform.APIError{StatusCode: 401, Message: "session expired"}}
	campaign := &models.Campaign{PlatformID: "cmp-1"}

	_, err := NewReconciler(api).Reconcile(context.Background(), "tok", campaign, 100)
	assert.True(t, platform.IsSessionExpired(err))
}
