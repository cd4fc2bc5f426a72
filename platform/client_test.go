package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-api-key")
}

func TestClientSendsAuthHeaders(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer vendor-token", r.Header.Get("Authorization"))
		assert.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"balance": 100}`))
	})

	_, err := client.GetWallet(context.Background(), "vendor-token")
	require.NoError(t, err)
}

func TestParseErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 is session expiry",
			status: http.StatusUnauthorized,
			body:   `{"error": {"message": "session expired"}}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsSessionExpired(err))
				assert.True(t, IsHardAbort(err))
			},
		},
		{
			name:   "403 is access denied",
			status: http.StatusForbidden,
			body:   `{"error": {"message": "not your campaign"}}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsAccessDenied(err))
				assert.True(t, IsHardAbort(err))
			},
		},
		{
			name:   "insufficient balance carries the platform numbers",
			status: http.StatusPaymentRequired,
			body:   `{"error": {"code": "INSUFFICIENT_BALANCE", "required": 618, "available": 600}}`,
			check: func(t *testing.T, err error) {
				var insufficient *InsufficientBalanceError
				require.ErrorAs(t, err, &insufficient)
				assert.Equal(t, 618.0, insufficient.Required)
				assert.Equal(t, 600.0, insufficient.Available)
				assert.True(t, IsHardAbort(err))
			},
		},
		{
			name:   "413 maps to oversized with hints",
			status: http.StatusRequestEntityTooLarge,
			body:   `{"error": {"code": "OVERSIZED", "total_qrs": 12000, "recommended_chunk_size": 5000}}`,
			check: func(t *testing.T, err error) {
				var oversized *OversizedExportError
				require.ErrorAs(t, err, &oversized)
				assert.Equal(t, 12000, oversized.TotalQRs)
				assert.Equal(t, 5000, oversized.RecommendedChunkSize)
				assert.False(t, IsHardAbort(err))
			},
		},
		{
			name:   "oversized code without 413 status still maps",
			status: http.StatusBadRequest,
			body:   `{"error": {"code": "OVERSIZED", "total_qrs": 11000}}`,
			check: func(t *testing.T, err error) {
				var oversized *OversizedExportError
				require.ErrorAs(t, err, &oversized)
				assert.Equal(t, 11000, oversized.TotalQRs)
			},
		},
		{
			name:   "bare 413 maps to oversized without hints",
			status: http.StatusRequestEntityTooLarge,
			body:   ``,
			check: func(t *testing.T, err error) {
				var oversized *OversizedExportError
				require.ErrorAs(t, err, &oversized)
				assert.Zero(t, oversized.TotalQRs)
				assert.Zero(t, oversized.RecommendedChunkSize)
			},
		},
		{
			name:   "500 is a plain API error",
			status: http.StatusInternalServerError,
			body:   `{"error": {"message": "boom"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
				assert.Equal(t, "boom", apiErr.Message)
				assert.False(t, IsHardAbort(err))
			},
		},
		{
			name:   "non-JSON body falls back to the status text",
			status: http.StatusBadGateway,
			body:   `<html>gateway error</html>`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			err := client.PayCampaign(context.Background(), "tok", "cmp-1", "")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestListQRsTreats404AsEmpty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	page, err := client.ListQRs(context.Background(), "tok", 1, 100)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Empty(t, page.Items)
}

func TestListQRsPassesPagination(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/qrs", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"items": [{"unique_hash": "h1", "status": "active"}], "total": 201}`))
	})

	page, err := client.ListQRs(context.Background(), "tok", 3, 100)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "h1", page.Items[0].UniqueHash)
	assert.Equal(t, 201, page.Total)
}

func TestGetCampaignStatsTreats404AsNone(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	stats, err := client.GetCampaignStats(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestIssueQRBatchDecodesResult(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/campaigns/cmp-1/qrs", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"count": 100, "order": {"id": "ord-1", "total_amount": 590}, "sample_hashes": ["h1", "h2"]}`))
	})

	result, err := client.IssueQRBatch(context.Background(), "tok", "cmp-1", 100, 5, "SER-1")
	require.NoError(t, err)
	assert.Equal(t, 100, result.Count)
	assert.Equal(t, "ord-1", result.Order.ID)
	assert.Equal(t, []string{"h1", "h2"}, result.Hashes())
}

func TestExportCampaignPDFQuery(t *testing.T) {
	offset, limit, part, total := 5000, 5000, 2, 3
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("fast"))
		assert.Equal(t, "true", q.Get("skip_logo"))
		assert.Equal(t, "5000", q.Get("offset"))
		assert.Equal(t, "2", q.Get("part"))
		assert.Equal(t, "3", q.Get("total_parts"))
		w.Write([]byte("%PDF-1.4"))
	})

	data, err := client.ExportCampaignPDF(context.Background(), "tok", "cmp-1", ExportRequest{
		Fast: true, SkipLogo: true,
		Offset: &offset, Limit: &limit, Part: &part, TotalParts: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestGetWalletDerivesAvailable(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balance": 1000, "locked_balance": 400}`))
	})

	wallet, err := client.GetWallet(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 600.0, wallet.AvailableBalance)
}
