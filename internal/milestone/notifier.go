// Package milestone reacts to recorded-investment events, notifying the
// learner when an event pushes the funded amount to the requested total.
package milestone

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
	"skillfund/internal/events"
)

// Notifier appends a funding-goal-reached notification for the learner.
// Safe to replay: the notification id is derived from the learner id and
// Append treats an already-present id as a no-op.
type Notifier struct {
	learners      domain.LearnerRepository
	notifications domain.NotificationRepository
	logger        zerolog.Logger
}

func NewNotifier(learners domain.LearnerRepository, notifications domain.NotificationRepository, logger zerolog.Logger) *Notifier {
	return &Notifier{learners: learners, notifications: notifications, logger: logger}
}

// HandleInvestmentRecorded inspects the learner's current funding and
// appends the goal notification when this event's amount is the one that
// crossed the requested total. Events that land before the goal, or
// learners without a linked user, stay silent.
func (n *Notifier) HandleInvestmentRecorded(ctx context.Context, event *events.InvestmentRecorded) error {
	n.logger.Debug().
		Str("investment_id", event.InvestmentID).
		Str("learner_id", event.LearnerID).
		Str("amount", event.Amount.String()).
		Msg("investment recorded")

	learner, err := n.learners.GetByID(ctx, event.LearnerID)
	if err != nil {
		return err
	}
	if learner.UserID == "" {
		return nil
	}
	if !crossedGoal(learner, event.Amount) {
		return nil
	}

	note := &domain.NotificationEvent{
		ID:        goalNotificationID(learner.ID),
		UserID:    learner.UserID,
		Title:     "Funding goal reached",
		Message:   fmt.Sprintf("%s is fully funded at $%s.", learner.Name, learner.RequestedFunding.StringFixed(2)),
		CreatedAt: event.OccurredAt,
	}
	if err := n.notifications.Append(ctx, note); err != nil {
		return err
	}
	n.logger.Info().Str("learner_id", learner.ID).Msg("funding goal notification sent")
	return nil
}

// crossedGoal reports whether this event's amount pushed the funded amount
// past the requested total, i.e. funding was below the goal before it and
// at or above it after.
func crossedGoal(learner *domain.Learner, amount decimal.Decimal) bool {
	return learner.FundedAmount.GreaterThanOrEqual(learner.RequestedFunding) &&
		learner.FundedAmount.Sub(amount).LessThan(learner.RequestedFunding)
}

// goalNotificationID is stable per learner so a replayed crossing event
// cannot append a second notification.
func goalNotificationID(learnerID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("funding-goal/"+learnerID)).String()
}
