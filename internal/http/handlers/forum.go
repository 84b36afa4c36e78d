package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"skillfund/internal/domain"
)

type forumPostRequest struct {
	AuthorID string `json:"author_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type forumPostDTO struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	LikeCount int       `json:"like_count"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"created_at"`
}

// ForumList returns all posts, newest first.
func (a *App) ForumList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Forum.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]forumPostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, forumPostDTO{
			ID:        post.ID,
			AuthorID:  post.AuthorID,
			Title:     post.Title,
			Content:   post.Content,
			LikeCount: post.LikeCount,
			Views:     post.Views,
			CreatedAt: post.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"posts": items})
}

// ForumCreate adds a post.
func (a *App) ForumCreate(w http.ResponseWriter, r *http.Request) {
	var req forumPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		a.detail(w, http.StatusBadRequest, "title and content are required")
		return
	}

	post := &domain.ForumPost{
		ID:        uuid.NewString(),
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Forum.Create(r.Context(), post); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": post.ID})
}

// ForumLike records a like, once per user per post.
func (a *App) ForumLike(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		a.detail(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if err := a.Forum.Like(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ForumDelete removes a post.
func (a *App) ForumDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Forum.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "deleted"})
}
