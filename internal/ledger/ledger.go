// Package ledger owns the funding arithmetic for learner records: how much
// of a request remains fundable, the display percentage, and the single
// mutating path that commits an investment against it.
package ledger

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Ledger serializes commitments per learner so that the check against the
// remaining amount and the funded-amount update form one atomic unit.
type Ledger struct {
	learners    domain.LearnerRepository
	investments domain.InvestmentRepository

	muMap map[string]*sync.Mutex
	mapMu sync.Mutex
}

func New(learners domain.LearnerRepository, investments domain.InvestmentRepository) *Ledger {
	return &Ledger{
		learners:    learners,
		investments: investments,
		muMap:       make(map[string]*sync.Mutex),
	}
}

// RemainingOf returns max(0, requested - funded) for a loaded record.
func RemainingOf(learner *domain.Learner) decimal.Decimal {
	remaining := learner.RequestedFunding.Sub(learner.FundedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// PercentOf returns min(100, round(funded / requested * 100)) with the
// requested amount floored at 1 to avoid dividing by zero. This is the only
// place the formula lives; views must not recompute it.
func PercentOf(learner *domain.Learner) int {
	requested := learner.RequestedFunding
	if requested.LessThan(one) {
		requested = one
	}
	pct := learner.FundedAmount.Div(requested).Mul(hundred).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// Learner loads a funding record by id.
func (l *Ledger) Learner(ctx context.Context, learnerID string) (*domain.Learner, error) {
	return l.learners.GetByID(ctx, learnerID)
}

// Remaining reports how much of the learner's request is still fundable.
func (l *Ledger) Remaining(ctx context.Context, learnerID string) (decimal.Decimal, error) {
	learner, err := l.learners.GetByID(ctx, learnerID)
	if err != nil {
		return decimal.Zero, err
	}
	return RemainingOf(learner), nil
}

// FundedPercent reports the 0..100 display percentage for the learner.
func (l *Ledger) FundedPercent(ctx context.Context, learnerID string) (int, error) {
	learner, err := l.learners.GetByID(ctx, learnerID)
	if err != nil {
		return 0, err
	}
	return PercentOf(learner), nil
}

// ApplyCommitment records the investment and its notifications after
// verifying, under the learner's lock, that the amount still fits the
// remaining request. Returns domain.ErrNotFound for an unknown learner and
// domain.ErrOverCommitment when the amount exceeds what is left; in both
// cases nothing is written.
func (l *Ledger) ApplyCommitment(ctx context.Context, inv *domain.Investment, events []domain.NotificationEvent) error {
	mu := l.learnerLock(inv.LearnerID)
	mu.Lock()
	defer mu.Unlock()

	learner, err := l.learners.GetByID(ctx, inv.LearnerID)
	if err != nil {
		return err
	}
	if inv.Amount.GreaterThan(RemainingOf(learner)) {
		return domain.ErrOverCommitment
	}

	return l.investments.CommitInvestment(ctx, inv, events)
}

func (l *Ledger) learnerLock(learnerID string) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	mu, ok := l.muMap[learnerID]
	if !ok {
		mu = &sync.Mutex{}
		l.muMap[learnerID] = mu
	}
	return mu
}
