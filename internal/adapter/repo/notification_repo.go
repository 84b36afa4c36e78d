package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"skillfund/internal/domain"
)

// NotificationRepositoryPG implements NotificationRepository using PostgreSQL.
type NotificationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repo.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepositoryPG {
	return &NotificationRepositoryPG{pool: pool}
}

// Append inserts one feed event; an existing id is left untouched.
func (r *NotificationRepositoryPG) Append(ctx context.Context, event *domain.NotificationEvent) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO notifications (id, user_id, title, message, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING;
`, event.ID, event.UserID, event.Title, event.Message, event.CreatedAt)
	return err
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.NotificationEvent, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, title, message, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.NotificationEvent
	for rows.Next() {
		var event domain.NotificationEvent
		if err := rows.Scan(&event.ID, &event.UserID, &event.Title, &event.Message, &event.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
