// Package portfolio derives per-investor summary figures from recorded
// investments.
package portfolio

import (
	"context"

	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
)

// Estimator computes the returns figures for a set of investments. It is a
// deliberate placeholder for a real financial model; swapping the model
// means swapping this function.
type Estimator func(investments []domain.Investment) (roi, upcoming decimal.Decimal)

var twelve = decimal.NewFromInt(12)

// FlatRate estimates returns as a flat annual rate on the total invested,
// with upcoming payments as one month of that figure.
func FlatRate(rate decimal.Decimal) Estimator {
	return func(investments []domain.Investment) (decimal.Decimal, decimal.Decimal) {
		total := decimal.Zero
		for _, inv := range investments {
			total = total.Add(inv.Amount)
		}
		roi := total.Mul(rate).Round(2)
		return roi, roi.Div(twelve).Round(2)
	}
}

// Aggregator recomputes summaries on demand; nothing is cached or
// persisted.
type Aggregator struct {
	investments domain.InvestmentRepository
	estimate    Estimator
}

func NewAggregator(investments domain.InvestmentRepository, estimate Estimator) *Aggregator {
	return &Aggregator{investments: investments, estimate: estimate}
}

// Summarize folds the investor's investments into a summary. An investor
// with no investments gets an all-zero summary, not an error.
func (a *Aggregator) Summarize(ctx context.Context, investorID string) (*domain.PortfolioSummary, []domain.Investment, error) {
	investments, err := a.investments.ListByInvestor(ctx, investorID)
	if err != nil {
		return nil, nil, err
	}

	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.Amount)
	}
	roi, upcoming := a.estimate(investments)

	return &domain.PortfolioSummary{
		TotalInvested:     total,
		ROI:               roi,
		UpcomingPayments:  upcoming,
		ActiveInvestments: len(investments),
	}, investments, nil
}
