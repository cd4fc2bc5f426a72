package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapkash/vendor-console/models"
)

func TestNormalizeAllocationsPrepaid(t *testing.T) {
	rows := []RawAllocationRow{
		{Cashback: "5", Quantity: "100"},
		{Cashback: "", Quantity: ""}, // blank rows are skipped
		{Cashback: " 2.50 ", Quantity: "40"},
	}

	allocations, err := NormalizeAllocations(rows, models.PlanTypePrepaid)
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	assert.True(t, allocations[0].Cashback.Valid)
	assert.Equal(t, "5", allocations[0].Cashback.Decimal.String())
	assert.Equal(t, 100, allocations[0].Quantity)
	assert.Equal(t, "500", allocations[0].TotalBudget.String())

	assert.Equal(t, "2.5", allocations[1].Cashback.Decimal.String())
	assert.Equal(t, 40, allocations[1].Quantity)
	assert.Equal(t, "100", allocations[1].TotalBudget.String())
}

func TestNormalizeAllocationsPostpaid(t *testing.T) {
	rows := []RawAllocationRow{
		{Cashback: "", Quantity: "250"},
		{Cashback: "", Quantity: "50.9"}, // fractional counts floor
	}

	allocations, err := NormalizeAllocations(rows, models.PlanTypePostpaid)
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	for _, alloc := range allocations {
		assert.False(t, alloc.Cashback.Valid)
		assert.True(t, alloc.TotalBudget.IsZero())
	}
	assert.Equal(t, 250, allocations[0].Quantity)
	assert.Equal(t, 50, allocations[1].Quantity)
}

func TestNormalizeAllocationsRejectsBadRows(t *testing.T) {
	tests := []struct {
		name     string
		rows     []RawAllocationRow
		planType string
		wantErr  error
	}{
		{
			name:     "no rows",
			rows:     nil,
			planType: models.PlanTypePrepaid,
			wantErr:  ErrNoTierRows,
		},
		{
			name:     "only blank rows",
			rows:     []RawAllocationRow{{}, {}},
			planType: models.PlanTypePrepaid,
			wantErr:  ErrNoTierRows,
		},
		{
			name:     "zero quantity",
			rows:     []RawAllocationRow{{Cashback: "5", Quantity: "0"}},
			planType: models.PlanTypePrepaid,
			wantErr:  ErrInvalidTierRows,
		},
		{
			name:     "negative quantity clamps to zero",
			rows:     []RawAllocationRow{{Cashback: "5", Quantity: "-10"}},
			planType: models.PlanTypePrepaid,
			wantErr:  ErrInvalidTierRows,
		},
		{
			name:     "unparseable quantity",
			rows:     []RawAllocationRow{{Cashback: "5", Quantity: "ten"}},
			planType: models.PlanTypePrepaid,
			wantErr:  ErrInvalidTierRows,
		},
		{
			name:     "prepaid missing cashback",
			rows:     []RawAllocationRow{{Cashback: "", Quantity: "10"}},
			planType: models.PlanTypePrepaid,
			wantErr:  ErrInvalidTierRows,
		},
		{
			name:     "prepaid zero cashback",
			rows:     []RawAllocationRow{{Cashback: "0", Quantity: "10"}},
			planType: models.PlanTypePrepaid,
			wantErr:  ErrInvalidTierRows,
		},
		{
			name:     "prepaid negative cashback",
			rows:     []RawAllocationRow{{Cashback: "-5", Quantity: "10"}},
			planType: models.PlanTypePrepaid,
			wantErr:  ErrInvalidTierRows,
		},
		{
			name:     "one bad row fails the set",
			rows:     []RawAllocationRow{{Cashback: "5", Quantity: "10"}, {Cashback: "x", Quantity: "10"}},
			planType: models.PlanTypePrepaid,
			wantErr:  ErrInvalidTierRows,
		},
		{
			name:     "unknown plan type",
			rows:     []RawAllocationRow{{Cashback: "5", Quantity: "10"}},
			planType: "subscription",
			wantErr:  ErrUnknownPlanType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeAllocations(tt.rows, tt.planType)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeAllocationsPreservesOrder(t *testing.T) {
	rows := []RawAllocationRow{
		{Cashback: "1", Quantity: "10"},
		{Cashback: "3", Quantity: "30"},
		{Cashback: "2", Quantity: "20"},
	}

	allocations, err := NormalizeAllocations(rows, models.PlanTypePrepaid)
	require.NoError(t, err)
	require.Len(t, allocations, 3)
	assert.Equal(t, "1", allocations[0].Cashback.Decimal.String())
	assert.Equal(t, "3", allocations[1].Cashback.Decimal.String())
	assert.Equal(t, "2", allocations[2].Cashback.Decimal.String())
}

func TestGroupAllocationsByPrice(t *testing.T) {
	allocations := []Allocation{
		{Cashback: decimal.NullDecimal{Decimal: decimal.NewFromInt(5), Valid: true}, Quantity: 100},
		{Cashback: decimal.NullDecimal{Decimal: decimal.NewFromInt(10), Valid: true}, Quantity: 20},
		{Cashback: decimal.NullDecimal{Decimal: decimal.NewFromInt(5), Valid: true}, Quantity: 50},
		{Quantity: 30}, // postpaid tier lands in the 0.00 bucket
	}

	groups := GroupAllocationsByPrice(allocations)
	require.Len(t, groups, 3)

	// Descending by price
	assert.Equal(t, "10.00", groups[0].Key)
	assert.Equal(t, 20, groups[0].Quantity)
	assert.Equal(t, "5.00", groups[1].Key)
	assert.Equal(t, 150, groups[1].Quantity)
	assert.Equal(t, "0.00", groups[2].Key)
	assert.Equal(t, 30, groups[2].Quantity)
}

func TestFromSavedRoundTrip(t *testing.T) {
	price := 7.5
	saved := []models.Allocation{
		{Price: &price, Quantity: 10, TotalBudget: 75},
		{Price: nil, Quantity: 20, TotalBudget: 0},
	}

	allocations := FromSaved(saved)
	require.Len(t, allocations, 2)
	assert.True(t, allocations[0].Cashback.Valid)
	assert.Equal(t, "7.5", allocations[0].Cashback.Decimal.String())
	assert.False(t, allocations[1].Cashback.Valid)
	assert.Equal(t, 30, TotalQuantity(allocations))
	assert.Equal(t, "75", Subtotal(allocations).String())
}
