package engine

import "github.com/shopspring/decimal"

// Authorization is the outcome of a solvency check. Shortfall is zero
// exactly when the funding is authorized.
type Authorization struct {
	Authorized bool            `json:"authorized"`
	Shortfall  decimal.Decimal `json:"shortfall"`
}

// Authorize compares a payable total against the wallet's available
// balance. Pure; the platform re-validates on payment and its numbers
// win if the two disagree.
func Authorize(totalCost, availableBalance decimal.Decimal) Authorization {
	shortfall := totalCost.Sub(availableBalance)
	if shortfall.Sign() <= 0 {
		return Authorization{Authorized: true, Shortfall: decimal.Zero}
	}
	return Authorization{Authorized: false, Shortfall: shortfall}
}
