package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
)

func seedLearner(t *testing.T, store *Store, id string, requested, funded int64) {
	t.Helper()
	err := store.Create(context.Background(), &domain.Learner{
		ID:               id,
		UserID:           "user-" + id,
		Name:             "Learner " + id,
		Skills:           []string{"Go"},
		RequestedFunding: decimal.NewFromInt(requested),
		FundedAmount:     decimal.NewFromInt(funded),
		ReturnModel:      domain.ModelIncomeShare,
		CreatedAt:        time.Now(),
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
}

func TestGetByIDReturnsCopies(t *testing.T) {
	store := NewStore()
	seedLearner(t, store, "l1", 1000, 0)

	first, err := store.GetByID(context.Background(), "l1")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	first.FundedAmount = decimal.NewFromInt(999)
	first.Skills[0] = "mutated"

	second, _ := store.GetByID(context.Background(), "l1")
	if !second.FundedAmount.IsZero() {
		t.Fatalf("store state mutated through returned copy")
	}
	if second.Skills[0] != "Go" {
		t.Fatalf("skills mutated through returned copy")
	}
}

func TestCommitInvestmentAllOrNothing(t *testing.T) {
	store := NewStore()
	seedLearner(t, store, "l1", 100, 95)

	inv := &domain.Investment{
		ID:         "i1",
		InvestorID: "investor-1",
		LearnerID:  "l1",
		Amount:     decimal.NewFromInt(10),
		CreatedAt:  time.Now(),
	}
	notes := []domain.NotificationEvent{{ID: "n1", UserID: "investor-1", Title: "t", CreatedAt: time.Now()}}

	err := store.CommitInvestment(context.Background(), inv, notes)
	if !errors.Is(err, domain.ErrOverCommitment) {
		t.Fatalf("CommitInvestment() error = %v, want ErrOverCommitment", err)
	}
	if items, _ := store.ListByInvestor(context.Background(), "investor-1"); len(items) != 0 {
		t.Fatalf("investment persisted despite rejection")
	}
	if feed, _ := store.ListByUser(context.Background(), "investor-1"); len(feed) != 0 {
		t.Fatalf("notification persisted despite rejection")
	}

	inv.Amount = decimal.NewFromInt(5)
	if err := store.CommitInvestment(context.Background(), inv, notes); err != nil {
		t.Fatalf("CommitInvestment() error: %v", err)
	}
	learner, _ := store.GetByID(context.Background(), "l1")
	if !learner.FundedAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("funded amount = %s, want 100", learner.FundedAmount)
	}
	if feed, _ := store.ListByUser(context.Background(), "investor-1"); len(feed) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(feed))
	}
}

func TestCommitInvestmentUnknownLearner(t *testing.T) {
	store := NewStore()
	err := store.CommitInvestment(context.Background(), &domain.Investment{LearnerID: "missing", Amount: decimal.NewFromInt(1)}, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("CommitInvestment() error = %v, want ErrNotFound", err)
	}
}

func TestNotificationsNewestFirst(t *testing.T) {
	store := NewStore()
	for i, title := range []string{"first", "second", "third"} {
		err := store.Append(context.Background(), &domain.NotificationEvent{
			ID:        title,
			UserID:    "u1",
			Title:     title,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	feed, err := store.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser() error: %v", err)
	}
	if len(feed) != 3 || feed[0].Title != "third" || feed[2].Title != "first" {
		t.Fatalf("unexpected feed order: %+v", feed)
	}
}

func TestAppendIgnoresDuplicateID(t *testing.T) {
	store := NewStore()
	event := &domain.NotificationEvent{ID: "n1", UserID: "u1", Title: "once", CreatedAt: time.Now()}
	for i := 0; i < 3; i++ {
		if err := store.Append(context.Background(), event); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	feed, err := store.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser() error: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("expected 1 event after duplicate appends, got %d", len(feed))
	}
}

func TestForumLikeIsIdempotentPerUser(t *testing.T) {
	store := NewStore()
	forum := Forum{store}
	post := &domain.ForumPost{ID: "p1", AuthorID: "u1", Title: "t", Content: "c", CreatedAt: time.Now()}
	if err := forum.Create(context.Background(), post); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := forum.Like(context.Background(), "p1", "u2"); err != nil {
			t.Fatalf("Like() error: %v", err)
		}
	}
	if err := forum.Like(context.Background(), "p1", "u3"); err != nil {
		t.Fatalf("Like() error: %v", err)
	}

	posts, _ := forum.List(context.Background())
	if len(posts) != 1 || posts[0].LikeCount != 2 {
		t.Fatalf("like count = %d, want 2", posts[0].LikeCount)
	}

	if err := forum.Like(context.Background(), "missing", "u2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Like(missing) error = %v, want ErrNotFound", err)
	}
}

func TestForumDelete(t *testing.T) {
	store := NewStore()
	forum := Forum{store}
	post := &domain.ForumPost{ID: "p1", Title: "t", Content: "c", CreatedAt: time.Now()}
	if err := forum.Create(context.Background(), post); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := forum.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := forum.Delete(context.Background(), "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete() twice error = %v, want ErrNotFound", err)
	}
}
