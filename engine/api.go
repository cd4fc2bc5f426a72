package engine

import (
	"context"

	"github.com/zapkash/vendor-console/platform"
)

// PlatformAPI is the slice of the platform client the engine drives.
// Injected so tests can substitute a fake platform.
type PlatformAPI interface {
	PayCampaign(ctx context.Context, token, campaignID, seriesCode string) error
	IssueQRBatch(ctx context.Context, token, campaignID string, quantity int, cashbackAmount float64, seriesCode string) (*platform.BatchResult, error)
	ListQRs(ctx context.Context, token string, page, limit int) (*platform.QRPage, error)
	GetCampaignStats(ctx context.Context, token string) ([]platform.CampaignStats, error)
	ExportCampaignPDF(ctx context.Context, token, campaignID string, req platform.ExportRequest) ([]byte, error)
}
