package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
)

// LearnerRepositoryPG implements LearnerRepository using PostgreSQL.
type LearnerRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewLearnerRepository creates a new learner repo.
func NewLearnerRepository(pool *pgxpool.Pool) *LearnerRepositoryPG {
	return &LearnerRepositoryPG{pool: pool}
}

// Create inserts a new learner funding record.
func (r *LearnerRepositoryPG) Create(ctx context.Context, learner *domain.Learner) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO learners (id, user_id, name, age, skills, field_of_study, project_description,
                      investment_terms, requested_funding, funded_amount, return_model,
                      payment_setup_done, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10::numeric, $11, $12, $13);
`, learner.ID, learner.UserID, learner.Name, learner.Age, learner.Skills, learner.FieldOfStudy,
		learner.ProjectDescription, learner.InvestmentTerms, learner.RequestedFunding,
		learner.FundedAmount, string(learner.ReturnModel), learner.PaymentSetupDone, learner.CreatedAt)
	return err
}

// GetByID loads one learner record or domain.ErrNotFound.
func (r *LearnerRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Learner, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, name, age, skills, field_of_study, project_description,
       investment_terms, requested_funding::text, funded_amount::text, return_model,
       payment_setup_done, created_at
FROM learners
WHERE id = $1;
`, id)
	learner, err := scanLearner(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return learner, nil
}

// List returns all learner records, newest first.
func (r *LearnerRepositoryPG) List(ctx context.Context) ([]domain.Learner, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, name, age, skills, field_of_study, project_description,
       investment_terms, requested_funding::text, funded_amount::text, return_model,
       payment_setup_done, created_at
FROM learners
ORDER BY created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Learner
	for rows.Next() {
		learner, err := scanLearner(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *learner)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanLearner(row pgx.Row) (*domain.Learner, error) {
	var learner domain.Learner
	var requested, funded, model string
	if err := row.Scan(&learner.ID, &learner.UserID, &learner.Name, &learner.Age, &learner.Skills,
		&learner.FieldOfStudy, &learner.ProjectDescription, &learner.InvestmentTerms,
		&requested, &funded, &model, &learner.PaymentSetupDone, &learner.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if learner.RequestedFunding, err = decimal.NewFromString(requested); err != nil {
		return nil, err
	}
	if learner.FundedAmount, err = decimal.NewFromString(funded); err != nil {
		return nil, err
	}
	learner.ReturnModel = domain.ReturnModel(model)
	return &learner, nil
}
