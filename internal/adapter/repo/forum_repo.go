package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillfund/internal/domain"
)

// forumDB is the subset of *pgxpool.Pool the forum repo uses.
type forumDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ForumRepositoryPG implements ForumRepository using PostgreSQL.
type ForumRepositoryPG struct {
	db forumDB
}

// NewForumRepository creates a new forum repo.
func NewForumRepository(pool *pgxpool.Pool) *ForumRepositoryPG {
	return &ForumRepositoryPG{db: pool}
}

// Create inserts a new post.
func (r *ForumRepositoryPG) Create(ctx context.Context, post *domain.ForumPost) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO forum_posts (id, author_id, title, content, like_count, views, created_at)
VALUES ($1, $2, $3, $4, 0, 0, $5);
`, post.ID, post.AuthorID, post.Title, post.Content, post.CreatedAt)
	return err
}

// List returns all posts, newest first, bumping view counters.
func (r *ForumRepositoryPG) List(ctx context.Context) ([]domain.ForumPost, error) {
	rows, err := r.db.Query(ctx, `
WITH bumped AS (
    UPDATE forum_posts
    SET views = views + 1
    RETURNING id, author_id, title, content, like_count, views, created_at
)
SELECT id, author_id, title, content, like_count, views, created_at
FROM bumped
ORDER BY created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ForumPost
	for rows.Next() {
		var post domain.ForumPost
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Content,
			&post.LikeCount, &post.Views, &post.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Like records at most one like per user per post. The existence check and
// both writes run in one transaction so a missing post leaves no like row
// behind.
func (r *ForumRepositoryPG) Like(ctx context.Context, postID, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT true FROM forum_posts WHERE id = $1;`, postID).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	tag, err := tx.Exec(ctx, `
INSERT INTO forum_likes (post_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING;
`, postID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		if _, err := tx.Exec(ctx, `
UPDATE forum_posts SET like_count = like_count + 1 WHERE id = $1;
`, postID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete removes a post.
func (r *ForumRepositoryPG) Delete(ctx context.Context, postID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM forum_posts WHERE id = $1;`, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var (
	_ domain.LearnerRepository      = (*LearnerRepositoryPG)(nil)
	_ domain.InvestmentRepository   = (*InvestmentRepositoryPG)(nil)
	_ domain.NotificationRepository = (*NotificationRepositoryPG)(nil)
	_ domain.ForumRepository        = (*ForumRepositoryPG)(nil)
)
