package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Publisher emits domain events for downstream consumers. Publishing is
// best-effort; a failure never rolls back the commit that produced it.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// InvestmentRecorded is emitted after an investment commits.
type InvestmentRecorded struct {
	InvestmentID string          `json:"investment_id"`
	InvestorID   string          `json:"investor_id"`
	LearnerID    string          `json:"learner_id"`
	Amount       decimal.Decimal `json:"amount"`
	Model        string          `json:"model"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// Noop discards events; used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, any) error { return nil }
