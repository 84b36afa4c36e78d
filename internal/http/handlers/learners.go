package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"skillfund/internal/directory"
	"skillfund/internal/domain"
)

type applyRequest struct {
	UserID             string          `json:"user_id"`
	Name               string          `json:"name"`
	Age                int             `json:"age"`
	Skills             []string        `json:"skills"`
	FieldOfStudy       string          `json:"field_of_study"`
	ProjectDescription string          `json:"project_description"`
	InvestmentTerms    string          `json:"investment_terms"`
	RequestedFunding   decimal.Decimal `json:"requested_funding"`
	ReturnModel        string          `json:"return_model"`
	PaymentSetupDone   bool            `json:"payment_setup_done"`
}

var fieldCaser = cases.Title(language.English)

// LearnersExplore lists learner views, optionally filtered by ?q=.
func (a *App) LearnersExplore(w http.ResponseWriter, r *http.Request) {
	views, err := a.Directory.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"learners": views})
}

// LearnersGet returns one learner view or 404.
func (a *App) LearnersGet(w http.ResponseWriter, r *http.Request) {
	view, err := a.Directory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"learner": view})
}

// LearnersApply creates a learner funding record from an application.
func (a *App) LearnersApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		a.detail(w, http.StatusBadRequest, "name is required")
		return
	}
	if !req.RequestedFunding.IsPositive() {
		a.detail(w, http.StatusBadRequest, "requested_funding must be positive")
		return
	}
	model, err := domain.ParseReturnModel(req.ReturnModel)
	if err != nil {
		a.domainError(w, err)
		return
	}

	learner := &domain.Learner{
		ID:                 uuid.NewString(),
		UserID:             req.UserID,
		Name:               req.Name,
		Age:                req.Age,
		Skills:             normalizeSkills(req.Skills),
		FieldOfStudy:       fieldCaser.String(strings.TrimSpace(req.FieldOfStudy)),
		ProjectDescription: strings.TrimSpace(req.ProjectDescription),
		InvestmentTerms:    strings.TrimSpace(req.InvestmentTerms),
		RequestedFunding:   req.RequestedFunding,
		FundedAmount:       decimal.Zero,
		ReturnModel:        model,
		PaymentSetupDone:   req.PaymentSetupDone,
		CreatedAt:          time.Now().UTC(),
	}
	if err := a.Learners.Create(r.Context(), learner); err != nil {
		a.domainError(w, err)
		return
	}

	if learner.UserID != "" {
		event := &domain.NotificationEvent{
			ID:        uuid.NewString(),
			UserID:    learner.UserID,
			Title:     "Application received",
			Message:   fmt.Sprintf("Your funding request for $%s is live on Explore.", learner.RequestedFunding.StringFixed(2)),
			CreatedAt: learner.CreatedAt,
		}
		if err := a.Notifications.Append(r.Context(), event); err != nil {
			a.Logger.Warn().Err(err).Str("learner_id", learner.ID).Msg("append application notification failed")
		}
	}

	a.json(w, http.StatusCreated, map[string]any{"learner": directory.ViewOf(learner)})
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
