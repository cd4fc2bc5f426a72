package utils

import (
	"fmt"
	"strings"

	"github.com/zapkash/vendor-console/models"
)

// FieldValidationErrors maps field names to their validation messages
type FieldValidationErrors map[string]string

func (e FieldValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, message := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	return strings.Join(parts, "; ")
}

// SanitizeString trims whitespace and collapses internal runs of spaces
func SanitizeString(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// ValidateCampaignTitle checks the title length bounds
func ValidateCampaignTitle(title string) (bool, string) {
	title = strings.TrimSpace(title)
	if len(title) < MinTitleLength || len(title) > MaxTitleLength {
		return false, ErrInvalidTitle
	}
	return true, ""
}

// ValidatePlanType checks for a known plan type
func ValidatePlanType(planType string) (bool, string) {
	switch planType {
	case models.PlanTypePrepaid, models.PlanTypePostpaid:
		return true, ""
	}
	return false, ErrInvalidPlanType
}

// ValidateVoucherType checks for a known voucher type
func ValidateVoucherType(voucherType string) (bool, string) {
	switch voucherType {
	case models.VoucherTypeNone, models.VoucherTypeDigital, models.VoucherTypePrinted:
		return true, ""
	}
	return false, ErrInvalidVoucher
}

// ValidateSeriesCode checks a series code label: short, no whitespace
func ValidateSeriesCode(seriesCode string) (bool, string) {
	if seriesCode == "" {
		return true, ""
	}
	if len(seriesCode) > 32 || strings.ContainsAny(seriesCode, " \t\n") {
		return false, "Series code must be at most 32 characters with no whitespace"
	}
	return true, ""
}
