package domain

import "time"

// ForumPost is a community post. Plain CRUD record with per-user like
// deduplication; no further invariants.
type ForumPost struct {
	ID        string
	AuthorID  string
	Title     string
	Content   string
	LikeCount int
	Views     int
	CreatedAt time.Time
}
