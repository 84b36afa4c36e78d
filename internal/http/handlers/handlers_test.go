package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"skillfund/internal/directory"
	"skillfund/internal/domain"
	"skillfund/internal/events"
	"skillfund/internal/invest"
	"skillfund/internal/ledger"
	"skillfund/internal/portfolio"
	"skillfund/internal/session"
	"skillfund/internal/storage/memory"
)

func newTestApp(t *testing.T) (*App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	fundingLedger := ledger.New(store, store)
	app := &App{
		Directory:     directory.NewService(store),
		Recorder:      invest.NewRecorder(fundingLedger, events.Noop{}, zerolog.Nop()),
		Portfolio:     portfolio.NewAggregator(store, portfolio.FlatRate(decimal.NewFromFloat(0.08))),
		Learners:      store,
		Notifications: store,
		Forum:         memory.Forum{Store: store},
		Sessions:      session.NewStore(),
		Logger:        zerolog.Nop(),
	}
	return app, store
}

func seedLearner(t *testing.T, store *memory.Store, id, userID string, requested, funded int64) {
	t.Helper()
	err := store.Create(context.Background(), &domain.Learner{
		ID:               id,
		UserID:           userID,
		Name:             "Learner " + id,
		Skills:           []string{"Go", "Design"},
		FieldOfStudy:     "Computer Science",
		RequestedFunding: decimal.NewFromInt(requested),
		FundedAmount:     decimal.NewFromInt(funded),
		ReturnModel:      domain.ModelIncomeShare,
		CreatedAt:        time.Now(),
	})
	if err != nil {
		t.Fatalf("seed learner: %v", err)
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
