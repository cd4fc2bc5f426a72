package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client speaks to the cashback platform REST API on behalf of a
// vendor session. All calls carry the vendor's bearer token; the API
// key identifies the console installation.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a platform API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type errorEnvelope struct {
	Error struct {
		Code                 string  `json:"code"`
		Message              string  `json:"message"`
		Required             float64 `json:"required"`
		Available            float64 `json:"available"`
		TotalQRs             int     `json:"total_qrs"`
		RecommendedChunkSize int     `json:"recommended_chunk_size"`
	} `json:"error"`
}

// parseError maps a non-2xx response onto the typed error taxonomy.
func parseError(statusCode int, body []byte) error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)

	if statusCode == http.StatusRequestEntityTooLarge || env.Error.Code == CodeOversizedExport {
		return &OversizedExportError{
			TotalQRs:             env.Error.TotalQRs,
			RecommendedChunkSize: env.Error.RecommendedChunkSize,
		}
	}
	if env.Error.Code == CodeInsufficientBalance {
		return &InsufficientBalanceError{
			Required:  env.Error.Required,
			Available: env.Error.Available,
		}
	}

	message := env.Error.Message
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Code:       env.Error.Code,
		Message:    message,
	}
}

// do executes one request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, payload, out interface{}) error {
	raw, err := c.doRaw(ctx, token, method, path, query, payload)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode platform response: %w", err)
	}
	return nil
}

// doRaw executes one request and returns the raw response body.
func (c *Client) doRaw(ctx context.Context, token, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read platform response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, raw)
	}
	return raw, nil
}

// CreateCampaign registers a new campaign with the platform. The
// campaign starts out pending and holds no funds yet.
func (c *Client) CreateCampaign(ctx context.Context, token string, spec CampaignSpec) (*Campaign, error) {
	var campaign Campaign
	if err := c.do(ctx, token, http.MethodPost, "/v1/campaigns", nil, spec, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// UpdateCampaign patches a campaign that has not been funded yet.
func (c *Client) UpdateCampaign(ctx context.Context, token, campaignID string, patch CampaignPatch) (*Campaign, error) {
	var campaign Campaign
	if err := c.do(ctx, token, http.MethodPatch, "/v1/campaigns/"+campaignID, nil, patch, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// DeleteCampaign removes a campaign; the platform unlocks any funds it
// still held and reports the refunded amount.
func (c *Client) DeleteCampaign(ctx context.Context, token, campaignID string) (*DeleteResult, error) {
	var result DeleteResult
	if err := c.do(ctx, token, http.MethodDelete, "/v1/campaigns/"+campaignID, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type payCampaignRequest struct {
	SeriesCode string `json:"series_code,omitempty"`
}

// PayCampaign activates and funds a campaign in one call. For pending
// campaigns a series code additionally requests inventory from that
// named pool. Rejections for lack of funds come back as
// InsufficientBalanceError carrying the platform's numbers.
func (c *Client) PayCampaign(ctx context.Context, token, campaignID, seriesCode string) error {
	return c.do(ctx, token, http.MethodPost, "/v1/campaigns/"+campaignID+"/pay", nil, payCampaignRequest{SeriesCode: seriesCode}, nil)
}

type issueBatchRequest struct {
	Quantity       int     `json:"quantity"`
	CashbackAmount float64 `json:"cashback_amount"`
	SeriesCode     string  `json:"series_code,omitempty"`
}

// IssueQRBatch mints one tier's worth of QRs for an active campaign.
func (c *Client) IssueQRBatch(ctx context.Context, token, campaignID string, quantity int, cashbackAmount float64, seriesCode string) (*BatchResult, error) {
	payload := issueBatchRequest{
		Quantity:       quantity,
		CashbackAmount: cashbackAmount,
		SeriesCode:     seriesCode,
	}
	var result BatchResult
	if err := c.do(ctx, token, http.MethodPost, "/v1/campaigns/"+campaignID+"/qrs", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListQRs fetches one page of the vendor's full QR inventory. A 404 is
// treated as an empty inventory, not an error.
func (c *Client) ListQRs(ctx context.Context, token string, page, limit int) (*QRPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result QRPage
	if err := c.do(ctx, token, http.MethodGet, "/v1/qrs", query, nil, &result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return &QRPage{}, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetCampaignStats fetches the platform's per-campaign counters for the
// vendor. A 404 means no stats yet.
func (c *Client) GetCampaignStats(ctx context.Context, token string) ([]CampaignStats, error) {
	var stats []CampaignStats
	if err := c.do(ctx, token, http.MethodGet, "/v1/campaigns/stats", nil, nil, &stats); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return stats, nil
}

// ExportCampaignPDF renders (part of) a campaign's QR sheet PDF and
// returns the raw bytes. Oversized single-shot requests fail with
// OversizedExportError.
func (c *Client) ExportCampaignPDF(ctx context.Context, token, campaignID string, req ExportRequest) ([]byte, error) {
	query := url.Values{}
	query.Set("fast", strconv.FormatBool(req.Fast))
	query.Set("skip_logo", strconv.FormatBool(req.SkipLogo))
	if req.Offset != nil {
		query.Set("offset", strconv.Itoa(*req.Offset))
	}
	if req.Limit != nil {
		query.Set("limit", strconv.Itoa(*req.Limit))
	}
	if req.Part != nil {
		query.Set("part", strconv.Itoa(*req.Part))
	}
	if req.TotalParts != nil {
		query.Set("total_parts", strconv.Itoa(*req.TotalParts))
	}
	return c.doRaw(ctx, token, http.MethodGet, "/v1/campaigns/"+campaignID+"/export.pdf", query, nil)
}

// GetWallet fetches the vendor's wallet state.
func (c *Client) GetWallet(ctx context.Context, token string) (*Wallet, error) {
	var wallet Wallet
	if err := c.do(ctx, token, http.MethodGet, "/v1/wallet", nil, nil, &wallet); err != nil {
		return nil, err
	}
	if wallet.AvailableBalance == 0 && wallet.Balance != 0 {
		wallet.AvailableBalance = wallet.Balance - wallet.LockedBalance
	}
	return &wallet, nil
}
