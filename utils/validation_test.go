package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Summer Push", SanitizeString("  Summer   Push  "))
	assert.Equal(t, "", SanitizeString("   "))
	assert.Equal(t, "a b", SanitizeString("a\t\nb"))
}

func TestValidateCampaignTitle(t *testing.T) {
	ok, _ := ValidateCampaignTitle("Summer Push")
	assert.True(t, ok)

	ok, msg := ValidateCampaignTitle("ab")
	assert.False(t, ok)
	assert.Equal(t, ErrInvalidTitle, msg)

	ok, _ = ValidateCampaignTitle(strings.Repeat("x", 101))
	assert.False(t, ok)
}

func TestValidatePlanType(t *testing.T) {
	for _, planType := range []string{"prepaid", "postpaid"} {
		ok, _ := ValidatePlanType(planType)
		assert.True(t, ok, planType)
	}
	ok, msg := ValidatePlanType("subscription")
	assert.False(t, ok)
	assert.Equal(t, ErrInvalidPlanType, msg)
}

func TestValidateVoucherType(t *testing.T) {
	for _, voucherType := range []string{"none", "digital_voucher", "printed_qr"} {
		ok, _ := ValidateVoucherType(voucherType)
		assert.True(t, ok, voucherType)
	}
	ok, _ := ValidateVoucherType("hologram")
	assert.False(t, ok)
}

func TestValidateSeriesCode(t *testing.T) {
	ok, _ := ValidateSeriesCode("")
	assert.True(t, ok, "empty series code is optional")

	ok, _ = ValidateSeriesCode("SER-2026-01")
	assert.True(t, ok)

	ok, _ = ValidateSeriesCode("has space")
	assert.False(t, ok)

	ok, _ = ValidateSeriesCode(strings.Repeat("A", 33))
	assert.False(t, ok)
}
