package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"skillfund/internal/session"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionDTO struct {
	Token    string    `json:"token"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

func sessionView(sess *session.Session) sessionDTO {
	return sessionDTO{
		Token:    sess.Token,
		UserID:   sess.UserID,
		Name:     sess.Name,
		Email:    sess.Email,
		IssuedAt: sess.IssuedAt,
	}
}

// AuthRegister creates a user and issues the first session.
func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	sess, err := a.Sessions.Register(req.Name, req.Email, req.Password)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"session": sessionView(sess)})
}

// AuthLogin issues a session for valid credentials.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	sess, err := a.Sessions.Login(req.Email, req.Password)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"session": sessionView(sess)})
}

// AuthLogout clears the bearer session.
func (a *App) AuthLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token != "" {
		a.Sessions.Logout(token)
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
