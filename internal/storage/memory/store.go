// Package memory provides an in-memory implementation of the domain
// repositories. It backs tests and local development when no DATABASE_URL
// is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"skillfund/internal/domain"
)

// Store keeps all records behind a single mutex and hands out copies so
// callers can never mutate internal state.
type Store struct {
	mu            sync.Mutex
	learners      map[string]*domain.Learner
	investments   []domain.Investment
	notifications map[string][]domain.NotificationEvent
	posts         []*domain.ForumPost
	postLikes     map[string]map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		learners:      make(map[string]*domain.Learner),
		notifications: make(map[string][]domain.NotificationEvent),
		postLikes:     make(map[string]map[string]struct{}),
	}
}

// Create stores a new learner funding record.
func (s *Store) Create(ctx context.Context, learner *domain.Learner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := copyLearner(learner)
	s.learners[learner.ID] = &copied
	return nil
}

// GetByID returns a copy of the learner record or domain.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Learner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	learner, ok := s.learners[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := copyLearner(learner)
	return &copied, nil
}

// List returns copies of all learner records, newest first.
func (s *Store) List(ctx context.Context) ([]domain.Learner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.Learner, 0, len(s.learners))
	for _, learner := range s.learners {
		items = append(items, copyLearner(learner))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

// CommitInvestment applies the funded-amount increase, the investment and
// the notifications under one lock. The remaining-capacity check is
// repeated here so the store upholds the funding invariant on its own even
// if a caller skips the ledger.
func (s *Store) CommitInvestment(ctx context.Context, inv *domain.Investment, events []domain.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	learner, ok := s.learners[inv.LearnerID]
	if !ok {
		return domain.ErrNotFound
	}
	next := learner.FundedAmount.Add(inv.Amount)
	if next.GreaterThan(learner.RequestedFunding) {
		return domain.ErrOverCommitment
	}

	learner.FundedAmount = next
	s.investments = append(s.investments, *inv)
	for _, event := range events {
		s.notifications[event.UserID] = append(s.notifications[event.UserID], event)
	}
	return nil
}

// ListByInvestor returns the investor's investments, newest first.
func (s *Store) ListByInvestor(ctx context.Context, investorID string) ([]domain.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.Investment
	for i := len(s.investments) - 1; i >= 0; i-- {
		if s.investments[i].InvestorID == investorID {
			items = append(items, s.investments[i])
		}
	}
	return items, nil
}

// Append adds one event to the owning user's feed. An id already in the
// feed is a no-op.
func (s *Store) Append(ctx context.Context, event *domain.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.notifications[event.UserID] {
		if existing.ID == event.ID {
			return nil
		}
	}
	s.notifications[event.UserID] = append(s.notifications[event.UserID], *event)
	return nil
}

// ListByUser returns the user's notifications, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.NotificationEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	feed := s.notifications[userID]
	items := make([]domain.NotificationEvent, 0, len(feed))
	for i := len(feed) - 1; i >= 0; i-- {
		items = append(items, feed[i])
	}
	return items, nil
}

// CreatePost stores a forum post.
func (s *Store) CreatePost(ctx context.Context, post *domain.ForumPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *post
	s.posts = append(s.posts, &copied)
	return nil
}

// ListPosts returns all forum posts, newest first, counting a view on each.
func (s *Store) ListPosts(ctx context.Context) ([]domain.ForumPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.ForumPost, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		s.posts[i].Views++
		items = append(items, *s.posts[i])
	}
	return items, nil
}

// LikePost records a like once per user per post.
func (s *Store) LikePost(ctx context.Context, postID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.findPost(postID)
	if post == nil {
		return domain.ErrNotFound
	}
	likes, ok := s.postLikes[postID]
	if !ok {
		likes = make(map[string]struct{})
		s.postLikes[postID] = likes
	}
	if _, seen := likes[userID]; seen {
		return nil
	}
	likes[userID] = struct{}{}
	post.LikeCount++
	return nil
}

// DeletePost removes a post or returns domain.ErrNotFound.
func (s *Store) DeletePost(ctx context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, post := range s.posts {
		if post.ID == postID {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			delete(s.postLikes, postID)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) findPost(postID string) *domain.ForumPost {
	for _, post := range s.posts {
		if post.ID == postID {
			return post
		}
	}
	return nil
}

func copyLearner(learner *domain.Learner) domain.Learner {
	copied := *learner
	copied.Skills = append([]string(nil), learner.Skills...)
	return copied
}

// Forum adapts the Store to domain.ForumRepository, whose method names
// differ from the learner repository's.
type Forum struct{ *Store }

func (f Forum) Create(ctx context.Context, post *domain.ForumPost) error {
	return f.CreatePost(ctx, post)
}

func (f Forum) List(ctx context.Context) ([]domain.ForumPost, error) {
	return f.ListPosts(ctx)
}

func (f Forum) Like(ctx context.Context, postID, userID string) error {
	return f.LikePost(ctx, postID, userID)
}

func (f Forum) Delete(ctx context.Context, postID string) error {
	return f.DeletePost(ctx, postID)
}

var (
	_ domain.LearnerRepository      = (*Store)(nil)
	_ domain.InvestmentRepository   = (*Store)(nil)
	_ domain.NotificationRepository = (*Store)(nil)
	_ domain.ForumRepository        = Forum{}
)
