package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FundingDuration tracks the latency of whole funding runs
	FundingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "campaign_funding_duration_seconds",
			Help: "Duration of campaign funding runs in seconds",
			Buckets: []float64{
				0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0,
			},
		},
		[]string{"outcome"}, // success, partial or failure
	)

	// QRsIssued counts QR codes minted through the console
	QRsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qrs_issued_total",
			Help: "Total QR codes minted through funding runs",
		},
	)

	// ReconcilePages counts inventory pages scanned by the reconciler
	ReconcilePages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_reconcile_pages_total",
			Help: "Total inventory pages scanned during QR breakdown reconciliation",
		},
	)

	// ExportParts counts PDF export parts downloaded
	ExportParts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_export_parts_total",
			Help: "Total export parts downloaded, by mode",
		},
		[]string{"mode"}, // single or chunked
	)
)

// RecordFunding records one funding run
func RecordFunding(outcome string, seconds float64, qrsIssued int) {
	FundingDuration.WithLabelValues(outcome).Observe(seconds)
	QRsIssued.Add(float64(qrsIssued))
}
