package engine

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/zapkash/vendor-console/models"
)

// ErrUnknownVoucherType rejects quotes for voucher types the console
// does not know how to price.
var ErrUnknownVoucherType = errors.New("unknown voucher type")

// gstMultiplier applies to fees only (QR generation and voucher fees),
// never to the cashback budget itself.
var gstMultiplier = decimal.NewFromFloat(1.18)

// voucherUnitCosts is the per-unit voucher fee before tax, in currency
// units.
var voucherUnitCosts = map[string]decimal.Decimal{
	models.VoucherTypeNone:    decimal.Zero,
	models.VoucherTypeDigital: decimal.NewFromFloat(0.20),
	models.VoucherTypePrinted: decimal.NewFromFloat(0.50),
}

// VoucherUnitCost looks up the pre-tax per-unit fee for a voucher type.
func VoucherUnitCost(voucherType string) (decimal.Decimal, error) {
	cost, ok := voucherUnitCosts[voucherType]
	if !ok {
		return decimal.Zero, ErrUnknownVoucherType
	}
	return cost, nil
}

// Quote is the payable breakdown for funding a set of allocations. The
// same inputs always produce the same decimals, since this number is
// what gets checked against the wallet and against the platform's own
// charge.
type Quote struct {
	TotalQuantity int             `json:"total_quantity"`
	BaseBudget    decimal.Decimal `json:"base_budget"`
	PrintCost     decimal.Decimal `json:"print_cost"`
	VoucherCost   decimal.Decimal `json:"voucher_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// BuildQuote prices a funding action: the cashback budget untaxed, plus
// the QR generation fee and voucher fee with GST applied per unit.
func BuildQuote(allocations []Allocation, qrUnitRate decimal.Decimal, voucherType string) (*Quote, error) {
	voucherUnit, err := VoucherUnitCost(voucherType)
	if err != nil {
		return nil, err
	}

	totalQty := decimal.NewFromInt(int64(TotalQuantity(allocations)))
	printFeePerUnit := qrUnitRate.Mul(gstMultiplier)
	voucherFeePerUnit := voucherUnit.Mul(gstMultiplier)

	quote := &Quote{
		TotalQuantity: TotalQuantity(allocations),
		BaseBudget:    Subtotal(allocations),
		PrintCost:     totalQty.Mul(printFeePerUnit),
		VoucherCost:   totalQty.Mul(voucherFeePerUnit),
	}
	quote.TotalCost = quote.BaseBudget.Add(quote.PrintCost).Add(quote.VoucherCost)
	return quote, nil
}
