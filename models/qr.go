package models

import "strings"

// QRStatusClass buckets the platform's many QR status strings into the
// three classes the console reports on.
type QRStatusClass int

const (
	QRClassActive QRStatusClass = iota
	QRClassRedeemed
	QRClassInactive
)

func (c QRStatusClass) String() string {
	switch c {
	case QRClassRedeemed:
		return "redeemed"
	case QRClassInactive:
		return "inactive"
	default:
		return "active"
	}
}

var (
	redeemedMarkers = []string{"redeem", "claim", "used"}
	inactiveMarkers = []string{"expire", "block", "revoke", "inactive", "cancel", "void"}
)

// ClassifyQRStatus normalizes a raw status string into a QRStatusClass.
// Matching is case-insensitive and substring based; redeemed markers
// take precedence over inactive ones.
func ClassifyQRStatus(status string) QRStatusClass {
	s := strings.ToLower(status)
	for _, m := range redeemedMarkers {
		if strings.Contains(s, m) {
			return QRClassRedeemed
		}
	}
	for _, m := range inactiveMarkers {
		if strings.Contains(s, m) {
			return QRClassInactive
		}
	}
	return QRClassActive
}
