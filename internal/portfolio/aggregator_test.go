package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
)

type fakeInvestments struct {
	items []domain.Investment
}

func (f *fakeInvestments) CommitInvestment(context.Context, *domain.Investment, []domain.NotificationEvent) error {
	return nil
}

func (f *fakeInvestments) ListByInvestor(_ context.Context, investorID string) ([]domain.Investment, error) {
	var out []domain.Investment
	for _, inv := range f.items {
		if inv.InvestorID == investorID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func investment(investorID string, amount int64) domain.Investment {
	return domain.Investment{
		ID:         "inv",
		InvestorID: investorID,
		LearnerID:  "l1",
		Amount:     decimal.NewFromInt(amount),
		Model:      domain.ModelIncomeShare,
		CreatedAt:  time.Now(),
	}
}

func TestSummarizeEmptyPortfolio(t *testing.T) {
	agg := NewAggregator(&fakeInvestments{}, FlatRate(decimal.NewFromFloat(0.08)))

	summary, investments, err := agg.Summarize(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if len(investments) != 0 {
		t.Fatalf("expected no investments, got %d", len(investments))
	}
	if !summary.TotalInvested.IsZero() || !summary.ROI.IsZero() || !summary.UpcomingPayments.IsZero() || summary.ActiveInvestments != 0 {
		t.Fatalf("expected all-zero summary, got %+v", summary)
	}
}

func TestSummarizeFoldsInvestments(t *testing.T) {
	store := &fakeInvestments{items: []domain.Investment{
		investment("a", 100),
		investment("a", 250),
		investment("b", 999),
	}}
	agg := NewAggregator(store, FlatRate(decimal.NewFromFloat(0.10)))

	summary, investments, err := agg.Summarize(context.Background(), "a")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if len(investments) != 2 || summary.ActiveInvestments != 2 {
		t.Fatalf("expected 2 investments, got %d (%d active)", len(investments), summary.ActiveInvestments)
	}
	if !summary.TotalInvested.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("TotalInvested = %s, want 350", summary.TotalInvested)
	}
	if !summary.ROI.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("ROI = %s, want 35", summary.ROI)
	}
	want := decimal.NewFromInt(35).Div(decimal.NewFromInt(12)).Round(2)
	if !summary.UpcomingPayments.Equal(want) {
		t.Fatalf("UpcomingPayments = %s, want %s", summary.UpcomingPayments, want)
	}
}

func TestSummarizeUsesInjectedEstimator(t *testing.T) {
	store := &fakeInvestments{items: []domain.Investment{investment("a", 100)}}
	fixed := decimal.NewFromInt(42)
	agg := NewAggregator(store, func([]domain.Investment) (decimal.Decimal, decimal.Decimal) {
		return fixed, fixed
	})

	summary, _, err := agg.Summarize(context.Background(), "a")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if !summary.ROI.Equal(fixed) || !summary.UpcomingPayments.Equal(fixed) {
		t.Fatalf("estimator not applied: %+v", summary)
	}
}
