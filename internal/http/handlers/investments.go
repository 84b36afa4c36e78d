package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
)

type investmentRequest struct {
	InvestorID string          `json:"investor_id"`
	LearnerID  string          `json:"learner_id"`
	Amount     decimal.Decimal `json:"amount"`
	Model      string          `json:"model"`
}

type investmentDTO struct {
	ID         string    `json:"id"`
	InvestorID string    `json:"investor_id"`
	LearnerID  string    `json:"learner_id"`
	Amount     float64   `json:"amount"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
}

func investmentView(inv *domain.Investment) investmentDTO {
	return investmentDTO{
		ID:         inv.ID,
		InvestorID: inv.InvestorID,
		LearnerID:  inv.LearnerID,
		Amount:     inv.Amount.InexactFloat64(),
		Model:      string(inv.Model),
		CreatedAt:  inv.CreatedAt,
	}
}

// InvestmentsCreate submits one investment. An over-commitment response
// means the funding changed since the client last read it; the client
// re-reads and lets the user decide again.
func (a *App) InvestmentsCreate(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	inv, err := a.Recorder.Submit(r.Context(), req.InvestorID, req.LearnerID, req.Amount, domain.ReturnModel(req.Model))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, investmentView(inv))
}

// InvestmentsPortfolio returns the investor's derived summary and the
// investments it was folded from.
func (a *App) InvestmentsPortfolio(w http.ResponseWriter, r *http.Request) {
	summary, investments, err := a.Portfolio.Summarize(r.Context(), chi.URLParam(r, "investor_id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	items := make([]investmentDTO, 0, len(investments))
	for i := range investments {
		items = append(items, investmentView(&investments[i]))
	}
	a.json(w, http.StatusOK, map[string]any{
		"summary": map[string]any{
			"total_invested":     summary.TotalInvested.InexactFloat64(),
			"roi":                summary.ROI.InexactFloat64(),
			"upcoming_payments":  summary.UpcomingPayments.InexactFloat64(),
			"active_investments": summary.ActiveInvestments,
		},
		"investments": items,
	})
}
