// Package wallet computes demo account balances and derived valuations.
// No private exchange keys are wired in anywhere, so balances are a fixed
// demo allocation; valuations are recomputed from the pricer every request.
package wallet

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

// demo balances, matching the public-API-only account
var (
	demoBTCBalance  = decimal.NewFromFloat(0.001)
	demoUSDTBalance = decimal.NewFromInt(1000)

	// feeReserve keeps 0.1% of the quote balance aside for trading fees
	feeReserve = decimal.NewFromFloat(0.999)

	hundred = decimal.NewFromInt(100)
)

type pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

// Service exposes balances and the valuations derived from them.
type Service struct {
	pricer pricer
	pair   domain.Pair
}

// NewService creates a wallet service for the pair.
func NewService(pricer pricer, pair domain.Pair) *Service {
	return &Service{pricer: pricer, pair: pair}
}

// BTCBalance returns the demo base-currency balance.
func (s *Service) BTCBalance(ctx context.Context) (decimal.Decimal, error) {
	return demoBTCBalance, nil
}

// USDTBalance returns the demo quote-currency balance.
func (s *Service) USDTBalance(ctx context.Context) (decimal.Decimal, error) {
	return demoUSDTBalance, nil
}

// Portfolio computes the full portfolio valuation from current balances and
// the spot price. Never cached.
func (s *Service) Portfolio(ctx context.Context) (*domain.PortfolioSnapshot, error) {
	price, err := s.pricer.GetPrice(ctx, s.pair)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get price for portfolio valuation")
	}

	btcValue := demoBTCBalance.Mul(price)
	total := btcValue.Add(demoUSDTBalance)

	btcAllocation := decimal.Zero
	usdtAllocation := decimal.Zero
	if total.GreaterThan(decimal.Zero) {
		btcAllocation = btcValue.Div(total).Mul(hundred)
		usdtAllocation = demoUSDTBalance.Div(total).Mul(hundred)
	}

	return &domain.PortfolioSnapshot{
		BTCBalance:     demoBTCBalance,
		BTCPrice:       price,
		BTCValueUSDT:   btcValue,
		USDTBalance:    demoUSDTBalance,
		TotalValueUSDT: total,
		BTCAllocation:  btcAllocation,
		USDTAllocation: usdtAllocation,
	}, nil
}

// BuyingPower computes how much BTC the quote balance can purchase after
// the fee reserve.
func (s *Service) BuyingPower(ctx context.Context) (*domain.BuyingPower, error) {
	price, err := s.pricer.GetPrice(ctx, s.pair)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get price for buying power")
	}

	usable := demoUSDTBalance.Mul(feeReserve)
	maxBuyable := decimal.Zero
	if price.GreaterThan(decimal.Zero) {
		maxBuyable = usable.Div(price)
	}

	return &domain.BuyingPower{
		USDTBalance:   demoUSDTBalance,
		BTCPrice:      price,
		UsableUSDT:    usable,
		MaxBTCBuyable: maxBuyable,
	}, nil
}
