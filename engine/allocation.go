package engine

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zapkash/vendor-console/models"
)

// Allocation validation errors. A single bad row fails the whole set;
// the dashboard reports one categorical message, not per-row errors.
var (
	ErrNoTierRows      = errors.New("at least one tier row is required")
	ErrInvalidTierRows = errors.New("every tier needs a quantity above zero and, for prepaid plans, a cashback above zero")
	ErrUnknownPlanType = errors.New("unknown plan type")
)

// RawAllocationRow is one tier row exactly as the vendor typed it. The
// dashboard sends both fields as free-form text.
type RawAllocationRow struct {
	Cashback string `json:"cashback"`
	Quantity string `json:"quantity"`
}

func (r RawAllocationRow) populated() bool {
	return strings.TrimSpace(r.Cashback) != "" || strings.TrimSpace(r.Quantity) != ""
}

// Allocation is a canonical billing tier. Cashback is invalid for
// postpaid tiers, where the platform bills on redemption and
// TotalBudget stays zero.
type Allocation struct {
	Cashback    decimal.NullDecimal
	Quantity    int
	TotalBudget decimal.Decimal
}

// parseAmount coerces free-form text into a money amount. Empty or
// unparseable input yields an invalid amount; NaN and infinities never
// survive the decimal parse.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// parseWholeNumber coerces free-form text into a whole count, floored
// and clamped to zero.
func parseWholeNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := int(math.Floor(f))
	if n < 0 {
		return 0
	}
	return n
}

// NormalizeAllocations turns raw tier rows into canonical allocations.
// Rows with no populated field are skipped. For postpaid plans a row
// only needs quantity > 0 and its cashback is forced to null; for
// prepaid plans cashback > 0 is also required and the tier budget is
// cashback x quantity. Output preserves the input row order.
func NormalizeAllocations(rows []RawAllocationRow, planType string) ([]Allocation, error) {
	if planType != models.PlanTypePrepaid && planType != models.PlanTypePostpaid {
		return nil, ErrUnknownPlanType
	}

	allocations := make([]Allocation, 0, len(rows))
	for _, row := range rows {
		if !row.populated() {
			continue
		}
		quantity := parseWholeNumber(row.Quantity)
		if quantity <= 0 {
			return nil, ErrInvalidTierRows
		}

		if planType == models.PlanTypePostpaid {
			allocations = append(allocations, Allocation{
				Quantity:    quantity,
				TotalBudget: decimal.Zero,
			})
			continue
		}

		cashback, ok := parseAmount(row.Cashback)
		if !ok || cashback.Sign() <= 0 {
			return nil, ErrInvalidTierRows
		}
		allocations = append(allocations, Allocation{
			Cashback:    decimal.NullDecimal{Decimal: cashback, Valid: true},
			Quantity:    quantity,
			TotalBudget: cashback.Mul(decimal.NewFromInt(int64(quantity))),
		})
	}

	if len(allocations) == 0 {
		return nil, ErrNoTierRows
	}
	return allocations, nil
}

// FromSaved rebuilds engine allocations from tiers persisted with a
// campaign.
func FromSaved(saved []models.Allocation) []Allocation {
	allocations := make([]Allocation, 0, len(saved))
	for _, tier := range saved {
		alloc := Allocation{
			Quantity:    tier.Quantity,
			TotalBudget: decimal.NewFromFloat(tier.TotalBudget),
		}
		if tier.Price != nil {
			alloc.Cashback = decimal.NullDecimal{Decimal: decimal.NewFromFloat(*tier.Price), Valid: true}
		}
		allocations = append(allocations, alloc)
	}
	return allocations
}

// Subtotal sums the tier budgets.
func Subtotal(allocations []Allocation) decimal.Decimal {
	subtotal := decimal.Zero
	for _, alloc := range allocations {
		subtotal = subtotal.Add(alloc.TotalBudget)
	}
	return subtotal
}

// TotalQuantity sums the tier quantities.
func TotalQuantity(allocations []Allocation) int {
	total := 0
	for _, alloc := range allocations {
		total += alloc.Quantity
	}
	return total
}

// PriceGroup aggregates allocations or QRs sharing a price. Key is the
// price fixed to two decimals, which is also the grouping key.
type PriceGroup struct {
	Key           string          `json:"price"`
	Price         decimal.Decimal `json:"-"`
	Quantity      int             `json:"quantity"`
	ActiveCount   int             `json:"active_count"`
	RedeemedCount int             `json:"redeemed_count"`
}

// GroupAllocationsByPrice buckets allocations by price for display,
// sorted by price descending. Postpaid tiers fall into the 0.00 bucket.
func GroupAllocationsByPrice(allocations []Allocation) []PriceGroup {
	buckets := make(map[string]*PriceGroup)
	for _, alloc := range allocations {
		price := decimal.Zero
		if alloc.Cashback.Valid {
			price = alloc.Cashback.Decimal
		}
		key := price.StringFixed(2)
		group, ok := buckets[key]
		if !ok {
			group = &PriceGroup{Key: key, Price: price}
			buckets[key] = group
		}
		group.Quantity += alloc.Quantity
	}
	return sortPriceGroups(buckets)
}

// sortPriceGroups flattens a bucket map into a slice ordered by price
// descending.
func sortPriceGroups(buckets map[string]*PriceGroup) []PriceGroup {
	groups := make([]PriceGroup, 0, len(buckets))
	for _, group := range buckets {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Price.GreaterThan(groups[j].Price)
	})
	return groups
}
