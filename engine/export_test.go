package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
)

type sinkCall struct {
	part, totalParts, offset, limit int
	size                            int
}

func collectSink(calls *[]sinkCall) ExportSink {
	return func(part, totalParts, offset, limit int, data []byte) error {
		*calls = append(*calls, sinkCall{part, totalParts, offset, limit, len(data)})
		return nil
	}
}

func TestEstimateQRVolume(t *testing.T) {
	controller := NewExportController(&fakePlatform{})

	tests := []struct {
		name     string
		campaign *models.Campaign
		stats    []platform.CampaignStats
		want     int
	}{
		{
			name:     "platform stats win",
			campaign: &models.Campaign{PlatformID: "cmp-1", SheetCount: 10, QRsPerSheet: 24},
			stats:    []platform.CampaignStats{{ID: "cmp-1", TotalQRsOrdered: 12000}},
			want:     12000,
		},
		{
			name:     "stats matched by title",
			campaign: &models.Campaign{Title: "Summer Push"},
			stats:    []platform.CampaignStats{{Campaign: "summer push", TotalQRsOrdered: 300}},
			want:     300,
		},
		{
			name:     "sheet geometry",
			campaign: &models.Campaign{SheetCount: 10, QRsPerSheet: 24},
			want:     240,
		},
		{
			name: "tier quantities",
			campaign: &models.Campaign{Allocations: []models.Allocation{
				{Quantity: 100}, {Quantity: 40},
			}},
			want: 140,
		},
		{
			name:     "nothing known",
			campaign: &models.Campaign{},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, controller.EstimateQRVolume(tt.campaign, tt.stats))
		})
	}
}

func TestPlanThreshold(t *testing.T) {
	controller := NewExportController(&fakePlatform{})

	single := controller.Plan(9999)
	assert.False(t, single.Chunked)
	assert.Equal(t, 1, single.TotalParts)

	chunked := controller.Plan(10000)
	assert.True(t, chunked.Chunked)
	assert.Equal(t, 5000, chunked.ChunkSize)
	assert.Equal(t, 2, chunked.TotalParts)

	uneven := controller.Plan(12000)
	assert.Equal(t, 3, uneven.TotalParts)
}

func TestExportSingleShot(t *testing.T) {
	api := &fakePlatform{exportData: [][]byte{[]byte("small pdf")}}
	campaign := &models.Campaign{PlatformID: "cmp-1", SheetCount: 10, QRsPerSheet: 24}

	var calls []sinkCall
	var percents []int
	parts, err := NewExportController(api).Export(context.Background(), "tok", campaign, nil,
		collectSink(&calls), func(p int) { percents = append(percents, p) })
	require.NoError(t, err)

	assert.Equal(t, 1, parts)
	require.Len(t, calls, 1)
	assert.Equal(t, sinkCall{1, 1, 0, 0, len("small pdf")}, calls[0])
	assert.Equal(t, []int{100}, percents)

	require.Len(t, api.exportReqs, 1)
	assert.True(t, api.exportReqs[0].Fast)
	assert.True(t, api.exportReqs[0].SkipLogo)
	assert.Nil(t, api.exportReqs[0].Offset)
}

func TestExportChunkedFromEstimate(t *testing.T) {
	// 12000 QRs crosses the threshold: three parts at offsets 0, 5000,
	// 10000 with no single-shot attempt first.
	api := &fakePlatform{}
	campaign := &models.Campaign{PlatformID: "cmp-1"}
	stats := []platform.CampaignStats{{ID: "cmp-1", TotalQRsOrdered: 12000}}

	var calls []sinkCall
	var percents []int
	parts, err := NewExportController(api).Export(context.Background(), "tok", campaign, stats,
		collectSink(&calls), func(p int) { percents = append(percents, p) })
	require.NoError(t, err)

	assert.Equal(t, 3, parts)
	require.Len(t, calls, 3)
	assert.Equal(t, 0, calls[0].offset)
	assert.Equal(t, 5000, calls[1].offset)
	assert.Equal(t, 10000, calls[2].offset)
	for _, call := range calls {
		assert.Equal(t, 3, call.totalParts)
		assert.Equal(t, 5000, call.limit)
	}

	assert.Equal(t, []int{33, 66, 100}, percents)
	require.Len(t, api.exportReqs, 3)
	require.NotNil(t, api.exportReqs[0].Part)
	assert.Equal(t, 1, *api.exportReqs[0].Part)
	require.NotNil(t, api.exportReqs[2].TotalParts)
	assert.Equal(t, 3, *api.exportReqs[2].TotalParts)
}

func TestExportOversizedFallbackUsesServerHints(t *testing.T) {
	// Local estimate said single-shot; the platform disagrees and its
	// sizing wins: 12000 QRs in chunks of 6000.
	api := &fakePlatform{
		exportErrs: []error{&platform.OversizedExportError{TotalQRs: 12000, RecommendedChunkSize: 6000}},
	}
	campaign := &models.Campaign{PlatformID: "cmp-1", SheetCount: 10, QRsPerSheet: 24}

	var calls []sinkCall
	parts, err := NewExportController(api).Export(context.Background(), "tok", campaign, nil,
		collectSink(&calls), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, parts)
	require.Len(t, calls, 2)
	assert.Equal(t, 0, calls[0].offset)
	assert.Equal(t, 6000, calls[1].offset)
	assert.Equal(t, 6000, calls[0].limit)
	// One failed single-shot plus two chunk downloads
	assert.Equal(t, 3, api.exportCall)
}

func TestExportOversizedFallbackWithoutHints(t *testing.T) {
	// A bare 413 falls back to the local estimate and standard chunks.
	api := &fakePlatform{
		exportErrs: []error{&platform.OversizedExportError{}},
	}
	campaign := &models.Campaign{PlatformID: "cmp-1"}
	stats := []platform.CampaignStats{{ID: "cmp-1", TotalQRsOrdered: 9000}}

	var calls []sinkCall
	parts, err := NewExportController(api).Export(context.Background(), "tok", campaign, stats,
		collectSink(&calls), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, parts)
	assert.Equal(t, 5000, calls[0].limit)
}

func TestExportNonOversizedErrorPropagates(t *testing.T) {
	api := &fakePlatform{
		exportErrs: []error{&platform.APIError{StatusCode: 403, Message: "access denied"}},
	}
	campaign := &models.Campaign{PlatformID: "cmp-1"}

	parts, err := NewExportController(api).Export(context.Background(), "tok", campaign, nil, collectSink(&[]sinkCall{}), nil)
	assert.Equal(t, 0, parts)
	assert.True(t, platform.IsAccessDenied(err))
	assert.Equal(t, 1, api.exportCall, "no retry on a non-size failure")
}

func TestExportChunkFailureReportsFinishedParts(t *testing.T) {
	api := &fakePlatform{
		exportErrs: []error{nil, &platform.APIError{StatusCode: 500, Message: "boom"}},
	}
	campaign := &models.Campaign{PlatformID: "cmp-1"}
	stats := []platform.CampaignStats{{ID: "cmp-1", TotalQRsOrdered: 10000}}

	var calls []sinkCall
	parts, err := NewExportController(api).Export(context.Background(), "tok", campaign, stats,
		collectSink(&calls), nil)
	require.Error(t, err)
	assert.Equal(t, 1, parts)
	require.Len(t, calls, 1)
}

func TestExportProgressMonotone(t *testing.T) {
	api := &fakePlatform{}
	campaign := &models.Campaign{PlatformID: "cmp-1"}
	stats := []platform.CampaignStats{{ID: "cmp-1", TotalQRsOrdered: 35000}}

	var percents []int
	parts, err := NewExportController(api).Export(context.Background(), "tok", campaign, stats,
		collectSink(&[]sinkCall{}), func(p int) { percents = append(percents, p) })
	require.NoError(t, err)
	require.Equal(t, 7, parts)

	last := 0
	for i, p := range percents {
		assert.GreaterOrEqual(t, p, last, "progress went backwards at step %d", i)
		if i < len(percents)-1 {
			assert.Less(t, p, 100, "only the final part may report 100")
		}
		last = p
	}
	assert.Equal(t, 100, percents[len(percents)-1])
}
