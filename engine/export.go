package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/platform"
	"github.com/zapkash/vendor-console/utils"
)

const (
	// chunkThreshold is the estimated QR count at which an export
	// switches from single-shot to chunked mode.
	chunkThreshold = 10000
	// exportChunkSize is the QR count per part in chunked mode, unless
	// the platform recommends otherwise.
	exportChunkSize = 5000
)

// ExportSink receives each finished part, in order.
type ExportSink func(part, totalParts, offset, limit int, data []byte) error

// ProgressFunc observes export progress as a percentage. Values are
// monotone non-decreasing and only reach 100 with the final part.
type ProgressFunc func(percent int)

// ExportPlan is the sizing decision for one export run.
type ExportPlan struct {
	Chunked    bool `json:"chunked"`
	TotalQRs   int  `json:"total_qrs"`
	ChunkSize  int  `json:"chunk_size"`
	TotalParts int  `json:"total_parts"`
}

// ExportController sizes campaign PDF exports and drives the
// part-by-part download loop.
type ExportController struct {
	api       PlatformAPI
	threshold int
	chunkSize int
}

// NewExportController creates a controller with the standard threshold
// and chunk size.
func NewExportController(api PlatformAPI) *ExportController {
	return &ExportController{api: api, threshold: chunkThreshold, chunkSize: exportChunkSize}
}

// EstimateQRVolume guesses how many QRs a campaign holds, trying in
// order: the platform's stats for this campaign, sheet count times QRs
// per sheet, the sum of saved tier quantities, then zero.
func (e *ExportController) EstimateQRVolume(campaign *models.Campaign, stats []platform.CampaignStats) int {
	for _, s := range stats {
		if s.ID == campaign.PlatformID || strings.EqualFold(s.Campaign, campaign.Title) {
			if s.TotalQRsOrdered > 0 {
				return s.TotalQRsOrdered
			}
		}
	}
	if campaign.SheetCount > 0 && campaign.QRsPerSheet > 0 {
		return campaign.SheetCount * campaign.QRsPerSheet
	}
	total := 0
	for _, tier := range campaign.Allocations {
		total += tier.Quantity
	}
	return total
}

// totalParts is max(1, ceil(totalQRs / chunkSize)).
func totalParts(totalQRs, chunkSize int) int {
	if totalQRs <= 0 || chunkSize <= 0 {
		return 1
	}
	parts := (totalQRs + chunkSize - 1) / chunkSize
	if parts < 1 {
		return 1
	}
	return parts
}

// Plan decides single-shot versus chunked for an estimated volume.
func (e *ExportController) Plan(estimate int) ExportPlan {
	if estimate >= e.threshold {
		return ExportPlan{Chunked: true, TotalQRs: estimate, ChunkSize: e.chunkSize, TotalParts: totalParts(estimate, e.chunkSize)}
	}
	return ExportPlan{TotalQRs: estimate, TotalParts: 1}
}

// Export downloads the campaign's QR sheet PDF, deciding between
// single-shot and chunked mode from the estimate. If a single-shot
// attempt bounces off the platform's size limit, the run falls back to
// chunked mode sized by the platform's hints; the server's sizing is
// authoritative whenever the two disagree. Returns the number of parts
// downloaded.
func (e *ExportController) Export(ctx context.Context, token string, campaign *models.Campaign, stats []platform.CampaignStats, sink ExportSink, progress ProgressFunc) (int, error) {
	estimate := e.EstimateQRVolume(campaign, stats)
	plan := e.Plan(estimate)

	if !plan.Chunked {
		data, err := e.api.ExportCampaignPDF(ctx, token, campaign.PlatformID, platform.ExportRequest{Fast: true, SkipLogo: true})
		if err == nil {
			if err := sink(1, 1, 0, 0, data); err != nil {
				return 0, err
			}
			if progress != nil {
				progress(100)
			}
			return 1, nil
		}

		var oversized *platform.OversizedExportError
		if !errors.As(err, &oversized) {
			return 0, err
		}
		// Size-hint fallback, applied once. Missing hints fall back to
		// the local estimate and standard chunk size.
		plan.Chunked = true
		plan.TotalQRs = oversized.TotalQRs
		if plan.TotalQRs <= 0 {
			plan.TotalQRs = estimate
			if plan.TotalQRs <= 0 {
				plan.TotalQRs = e.threshold
			}
		}
		plan.ChunkSize = oversized.RecommendedChunkSize
		if plan.ChunkSize <= 0 {
			plan.ChunkSize = e.chunkSize
		}
		plan.TotalParts = totalParts(plan.TotalQRs, plan.ChunkSize)
		utils.LogInfo("Export of campaign %s oversized, retrying in %d parts of %d", campaign.PlatformID, plan.TotalParts, plan.ChunkSize)
	}

	return e.exportChunked(ctx, token, campaign.PlatformID, plan, sink, progress)
}

// exportChunked downloads parts sequentially: part n+1 assumes part n
// completed, and progress must stay monotone.
func (e *ExportController) exportChunked(ctx context.Context, token, campaignID string, plan ExportPlan, sink ExportSink, progress ProgressFunc) (int, error) {
	for part := 1; part <= plan.TotalParts; part++ {
		offset := (part - 1) * plan.ChunkSize
		limit := plan.ChunkSize
		partNum := part
		total := plan.TotalParts

		req := platform.ExportRequest{
			Fast:       true,
			SkipLogo:   true,
			Offset:     &offset,
			Limit:      &limit,
			Part:       &partNum,
			TotalParts: &total,
		}
		data, err := e.api.ExportCampaignPDF(ctx, token, campaignID, req)
		if err != nil {
			return part - 1, err
		}
		if err := sink(part, plan.TotalParts, offset, limit, data); err != nil {
			return part - 1, err
		}
		if progress != nil {
			progress(part * 100 / plan.TotalParts)
		}
	}
	return plan.TotalParts, nil
}
