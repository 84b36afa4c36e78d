package domain

import "github.com/shopspring/decimal"

// PortfolioSummary is derived on demand from an investor's investments and
// never persisted. ROI and UpcomingPayments come from a pluggable estimator.
type PortfolioSummary struct {
	TotalInvested     decimal.Decimal
	ROI               decimal.Decimal
	UpcomingPayments  decimal.Decimal
	ActiveInvestments int
}
