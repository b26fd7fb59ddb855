package domain

import "github.com/shopspring/decimal"

// PortfolioSnapshot is a derived valuation of the demo account. It is
// recomputed from two provider calls on every request and never cached.
type PortfolioSnapshot struct {
	BTCBalance      decimal.Decimal
	BTCPrice        decimal.Decimal
	BTCValueUSDT    decimal.Decimal
	USDTBalance     decimal.Decimal
	TotalValueUSDT  decimal.Decimal
	BTCAllocation   decimal.Decimal
	USDTAllocation  decimal.Decimal
}

// BuyingPower describes how much BTC the quote balance can purchase.
type BuyingPower struct {
	USDTBalance   decimal.Decimal
	BTCPrice      decimal.Decimal
	UsableUSDT    decimal.Decimal
	MaxBTCBuyable decimal.Decimal
}
