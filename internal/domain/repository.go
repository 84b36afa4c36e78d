package domain

import "context"

// LearnerRepository defines access to learner funding records.
type LearnerRepository interface {
	Create(ctx context.Context, learner *Learner) error
	GetByID(ctx context.Context, id string) (*Learner, error)
	List(ctx context.Context) ([]Learner, error)
}

// InvestmentRepository persists investments. CommitInvestment applies the
// learner's funded-amount increase, the investment row and the notification
// rows as one atomic unit, or none of them; it returns ErrNotFound for an
// unknown learner and ErrOverCommitment when the amount no longer fits.
type InvestmentRepository interface {
	CommitInvestment(ctx context.Context, inv *Investment, events []NotificationEvent) error
	ListByInvestor(ctx context.Context, investorID string) ([]Investment, error)
}

// NotificationRepository handles the append-only per-user event feed.
// Append leaves an event whose ID is already present untouched, so callers
// can use deterministic ids as idempotency keys.
type NotificationRepository interface {
	Append(ctx context.Context, event *NotificationEvent) error
	ListByUser(ctx context.Context, userID string) ([]NotificationEvent, error)
}

// ForumRepository handles forum post persistence.
type ForumRepository interface {
	Create(ctx context.Context, post *ForumPost) error
	List(ctx context.Context) ([]ForumPost, error)
	Like(ctx context.Context, postID, userID string) error
	Delete(ctx context.Context, postID string) error
}
