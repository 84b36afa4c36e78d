// Package invest validates and records investment submissions against the
// funding ledger.
package invest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
	"skillfund/internal/events"
	"skillfund/internal/ledger"
)

// Recorder is the sole writer of investments. A failed submission leaves no
// partial state and is terminal for that attempt; the caller re-reads the
// remaining capacity and decides again.
type Recorder struct {
	ledger    *ledger.Ledger
	publisher events.Publisher
	logger    zerolog.Logger
}

func NewRecorder(fundingLedger *ledger.Ledger, publisher events.Publisher, logger zerolog.Logger) *Recorder {
	return &Recorder{ledger: fundingLedger, publisher: publisher, logger: logger}
}

// Submit validates the request, commits it atomically through the ledger
// and appends notifications for the investor and the learner. Errors:
// domain.ErrInvalidAmount, domain.ErrValidation, domain.ErrNotFound,
// domain.ErrOverCommitment.
func (r *Recorder) Submit(ctx context.Context, investorID, learnerID string, amount decimal.Decimal, model domain.ReturnModel) (*domain.Investment, error) {
	if investorID == "" {
		return nil, fmt.Errorf("%w: investor_id is required", domain.ErrValidation)
	}
	if learnerID == "" {
		return nil, fmt.Errorf("%w: learner_id is required", domain.ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := domain.ParseReturnModel(string(model)); err != nil {
		return nil, err
	}

	learner, err := r.ledger.Learner(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	inv := &domain.Investment{
		ID:         uuid.NewString(),
		InvestorID: investorID,
		LearnerID:  learnerID,
		Amount:     amount,
		Model:      model,
		CreatedAt:  time.Now().UTC(),
	}

	notes := []domain.NotificationEvent{{
		ID:        uuid.NewString(),
		UserID:    investorID,
		Title:     "Investment recorded",
		Message:   fmt.Sprintf("Your investment of $%s in %s was recorded.", amount.StringFixed(2), learner.Name),
		CreatedAt: inv.CreatedAt,
	}}
	if learner.UserID != "" && learner.UserID != investorID {
		notes = append(notes, domain.NotificationEvent{
			ID:        uuid.NewString(),
			UserID:    learner.UserID,
			Title:     "New investment received",
			Message:   fmt.Sprintf("%s received a new investment of $%s.", learner.Name, amount.StringFixed(2)),
			CreatedAt: inv.CreatedAt,
		})
	}

	if err := r.ledger.ApplyCommitment(ctx, inv, notes); err != nil {
		return nil, err
	}

	if err := r.publisher.Publish(ctx, events.InvestmentRecorded{
		InvestmentID: inv.ID,
		InvestorID:   inv.InvestorID,
		LearnerID:    inv.LearnerID,
		Amount:       inv.Amount,
		Model:        string(inv.Model),
		OccurredAt:   inv.CreatedAt,
	}); err != nil {
		r.logger.Warn().Err(err).Str("investment_id", inv.ID).Msg("publish investment event failed")
	}

	return inv, nil
}
