package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a single committed stake against a learner's funding
// request. Immutable once recorded; there is no pending state.
type Investment struct {
	ID         string
	InvestorID string
	LearnerID  string
	Amount     decimal.Decimal
	Model      ReturnModel
	CreatedAt  time.Time
}
