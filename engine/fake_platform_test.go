package engine

import (
	"context"

	"github.com/zapkash/vendor-console/platform"
)

// fakePlatform scripts platform responses per call, for driving the
// engine without a live backend.
type fakePlatform struct {
	payErr error

	batchResults []*platform.BatchResult
	batchErrs    []error
	issueCalls   int

	pages    []*platform.QRPage
	listErr  error
	listCall int

	stats    []platform.CampaignStats
	statsErr error

	exportData [][]byte
	exportErrs []error
	exportCall int
	exportReqs []platform.ExportRequest
}

func (f *fakePlatform) PayCampaign(ctx context.Context, token, campaignID, seriesCode string) error {
	return f.payErr
}

func (f *fakePlatform) IssueQRBatch(ctx context.Context, token, campaignID string, quantity int, cashbackAmount float64, seriesCode string) (*platform.BatchResult, error) {
	i := f.issueCalls
	f.issueCalls++
	if i < len(f.batchErrs) && f.batchErrs[i] != nil {
		return nil, f.batchErrs[i]
	}
	if i < len(f.batchResults) {
		return f.batchResults[i], nil
	}
	return &platform.BatchResult{Count: quantity, Order: platform.OrderInfo{ID: "order-fallback"}}, nil
}

func (f *fakePlatform) ListQRs(ctx context.Context, token string, page, limit int) (*platform.QRPage, error) {
	f.listCall++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if page-1 < len(f.pages) {
		return f.pages[page-1], nil
	}
	return &platform.QRPage{}, nil
}

func (f *fakePlatform) GetCampaignStats(ctx context.Context, token string) ([]platform.CampaignStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakePlatform) ExportCampaignPDF(ctx context.Context, token, campaignID string, req platform.ExportRequest) ([]byte, error) {
	i := f.exportCall
	f.exportCall++
	f.exportReqs = append(f.exportReqs, req)
	if i < len(f.exportErrs) && f.exportErrs[i] != nil {
		return nil, f.exportErrs[i]
	}
	if i < len(f.exportData) {
		return f.exportData[i], nil
	}
	return []byte("pdf"), nil
}
