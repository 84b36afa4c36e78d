// Package directory exposes read-only learner views for discovery UIs.
package directory

import (
	"context"
	"strings"
	"time"

	"skillfund/internal/domain"
	"skillfund/internal/ledger"
)

// LearnerView is the wire shape of a learner record. Clients recompute the
// percentage from requested/funded, so those two fields are load-bearing;
// the derived figures are included so server-side consumers share the
// ledger's rounding policy instead of repeating the formula.
type LearnerView struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Skills             []string  `json:"skills"`
	FieldOfStudy       string    `json:"field_of_study"`
	ProjectDescription string    `json:"project_description"`
	RequestedFunding   float64   `json:"requested_funding"`
	FundedAmount       float64   `json:"funded_amount"`
	ReturnModel        string    `json:"return_model"`
	FundedPercent      int       `json:"funded_percent"`
	Remaining          float64   `json:"remaining"`
	CreatedAt          time.Time `json:"created_at"`
}

// Service is a filtered read-only view over learner records. Never mutates.
type Service struct {
	learners domain.LearnerRepository
}

func NewService(learners domain.LearnerRepository) *Service {
	return &Service{learners: learners}
}

// List returns learner views whose name or skill tags contain the query as
// a case-insensitive substring. An empty query returns everything; no match
// returns an empty slice.
func (s *Service) List(ctx context.Context, query string) ([]LearnerView, error) {
	learners, err := s.learners.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	views := make([]LearnerView, 0, len(learners))
	for i := range learners {
		if needle != "" && !matches(&learners[i], needle) {
			continue
		}
		views = append(views, ViewOf(&learners[i]))
	}
	return views, nil
}

// Get returns a single learner view or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*LearnerView, error) {
	learner, err := s.learners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := ViewOf(learner)
	return &view, nil
}

// ViewOf projects a learner record onto its wire shape using the ledger's
// derivations.
func ViewOf(learner *domain.Learner) LearnerView {
	return LearnerView{
		ID:                 learner.ID,
		Name:               learner.Name,
		Skills:             learner.Skills,
		FieldOfStudy:       learner.FieldOfStudy,
		ProjectDescription: learner.ProjectDescription,
		RequestedFunding:   learner.RequestedFunding.InexactFloat64(),
		FundedAmount:       learner.FundedAmount.InexactFloat64(),
		ReturnModel:        string(learner.ReturnModel),
		FundedPercent:      ledger.PercentOf(learner),
		Remaining:          ledger.RemainingOf(learner).InexactFloat64(),
		CreatedAt:          learner.CreatedAt,
	}
}

func matches(learner *domain.Learner, needle string) bool {
	if strings.Contains(strings.ToLower(learner.Name), needle) {
		return true
	}
	for _, skill := range learner.Skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}
	return false
}
