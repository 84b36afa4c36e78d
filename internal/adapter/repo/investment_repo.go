package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
)

// InvestmentRepositoryPG implements InvestmentRepository using PostgreSQL.
type InvestmentRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepository creates a new investment repo.
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepositoryPG {
	return &InvestmentRepositoryPG{pool: pool}
}

// CommitInvestment applies the funded-amount update, the investment row and
// the notification rows in one transaction. The UPDATE carries the
// remaining-capacity condition so the invariant holds even across
// processes that do not share the ledger's in-process locks.
func (r *InvestmentRepositoryPG) CommitInvestment(ctx context.Context, inv *domain.Investment, events []domain.NotificationEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
UPDATE learners
SET funded_amount = funded_amount + $2::numeric
WHERE id = $1 AND funded_amount + $2::numeric <= requested_funding;
`, inv.LearnerID, inv.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT true FROM learners WHERE id = $1;`, inv.LearnerID).Scan(&exists)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		return domain.ErrOverCommitment
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO investments (id, investor_id, learner_id, amount, model, created_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6);
`, inv.ID, inv.InvestorID, inv.LearnerID, inv.Amount, string(inv.Model), inv.CreatedAt); err != nil {
		return err
	}

	for _, event := range events {
		if _, err := tx.Exec(ctx, `
INSERT INTO notifications (id, user_id, title, message, created_at)
VALUES ($1, $2, $3, $4, $5);
`, event.ID, event.UserID, event.Title, event.Message, event.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListByInvestor returns the investor's investments, newest first.
func (r *InvestmentRepositoryPG) ListByInvestor(ctx context.Context, investorID string) ([]domain.Investment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, investor_id, learner_id, amount::text, model, created_at
FROM investments
WHERE investor_id = $1
ORDER BY created_at DESC;
`, investorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Investment
	for rows.Next() {
		var inv domain.Investment
		var amount, model string
		if err := rows.Scan(&inv.ID, &inv.InvestorID, &inv.LearnerID, &amount, &model, &inv.CreatedAt); err != nil {
			return nil, err
		}
		if inv.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		inv.Model = domain.ReturnModel(model)
		items = append(items, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
