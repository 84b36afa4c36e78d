package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"skillfund/internal/directory"
	"skillfund/internal/domain"
	"skillfund/internal/invest"
	"skillfund/internal/portfolio"
	"skillfund/internal/session"
)

// App is the handler container; everything it needs is injected at wiring
// time, including the session store (no ambient logged-in user).
type App struct {
	Directory     *directory.Service
	Recorder      *invest.Recorder
	Portfolio     *portfolio.Aggregator
	Learners      domain.LearnerRepository
	Notifications domain.NotificationRepository
	Forum         domain.ForumRepository
	Sessions      *session.Store
	Logger        zerolog.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// detail writes the error payload shape the clients read: {"detail": "..."}.
func (a *App) detail(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"detail": msg})
}

// domainError maps domain sentinels onto HTTP statuses. Every failure path
// produces a distinguishable payload; nothing is swallowed.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrValidation):
		a.detail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.detail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrOverCommitment):
		a.detail(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.detail(w, http.StatusUnauthorized, err.Error())
	default:
		a.Logger.Error().Err(err).Msg("request failed")
		a.detail(w, http.StatusInternalServerError, "internal error")
	}
}
