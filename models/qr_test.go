package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyQRStatus(t *testing.T) {
	tests := []struct {
		status string
		want   QRStatusClass
	}{
		{"active", QRClassActive},
		{"Active", QRClassActive},
		{"live", QRClassActive},
		{"printed", QRClassActive},
		{"", QRClassActive},

		{"redeemed", QRClassRedeemed},
		{"Redeemed", QRClassRedeemed},
		{"claimed", QRClassRedeemed},
		{"claimed by user", QRClassRedeemed},
		{"used", QRClassRedeemed},

		{"expired", QRClassInactive},
		{"blocked", QRClassInactive},
		{"revoked", QRClassInactive},
		{"inactive", QRClassInactive},
		{"cancelled", QRClassInactive},
		{"void", QRClassInactive},

		// A status carrying both markers reads as redeemed.
		{"redeemed but expired", QRClassRedeemed},
		{"claim window expired", QRClassRedeemed},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyQRStatus(tt.status))
		})
	}
}

func TestQRStatusClassString(t *testing.T) {
	assert.Equal(t, "active", QRClassActive.String())
	assert.Equal(t, "redeemed", QRClassRedeemed.String())
	assert.Equal(t, "inactive", QRClassInactive.String())
}

func TestOrderSampleHashList(t *testing.T) {
	order := Order{SampleHashes: "a,b,c"}
	assert.Equal(t, []string{"a", "b", "c"}, order.SampleHashList())

	empty := Order{}
	assert.Nil(t, empty.SampleHashList())
}
