package domain

import "time"

// NotificationEvent is one entry in a user's append-only feed.
type NotificationEvent struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	CreatedAt time.Time
}
