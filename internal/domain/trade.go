package domain

import "github.com/shopspring/decimal"

// TradeStatusSimulated is the only status the trader ever reports: orders
// never touch a real book.
const TradeStatusSimulated = "simulated"

// TradeResult is the outcome of a simulated order.
type TradeResult struct {
	Status   string
	Message  string
	Symbol   string
	Side     string
	Quantity decimal.Decimal
	OrderID  string
}
