package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type notificationDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationsList returns the user's feed, newest first.
func (a *App) NotificationsList(w http.ResponseWriter, r *http.Request) {
	events, err := a.Notifications.ListByUser(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	items := make([]notificationDTO, 0, len(events))
	for _, event := range events {
		items = append(items, notificationDTO{
			ID:        event.ID,
			UserID:    event.UserID,
			Title:     event.Title,
			Message:   event.Message,
			CreatedAt: event.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"notifications": items})
}
