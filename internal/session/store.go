// Package session issues explicit session objects at login and clears them
// at logout. Components that need the caller's identity receive a Session;
// there is no ambient global user.
package session

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"skillfund/internal/domain"
)

// Session is a logged-in identity bound to an opaque token.
type Session struct {
	Token    string
	UserID   string
	Name     string
	Email    string
	IssuedAt time.Time
}

type user struct {
	id           string
	name         string
	email        string
	passwordHash [sha256.Size]byte
}

// Store keeps users and live sessions in memory.
type Store struct {
	mu       sync.Mutex
	users    map[string]*user
	sessions map[string]Session
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*user),
		sessions: make(map[string]Session),
	}
}

// Register creates a user and issues their first session.
func (s *Store) Register(name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrValidation)
	}
	u := &user{
		id:           uuid.NewString(),
		name:         name,
		email:        email,
		passwordHash: sha256.Sum256([]byte(password)),
	}
	s.users[email] = u
	return s.issue(u), nil
}

// Login issues a session for valid credentials.
func (s *Store) Login(email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	hash := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(hash[:], u.passwordHash[:]) != 1 {
		return nil, domain.ErrUnauthorized
	}
	return s.issue(u), nil
}

// Logout clears the session; unknown tokens are a no-op.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Get resolves a live session by token.
func (s *Store) Get(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	return &sess, true
}

func (s *Store) issue(u *user) *Session {
	sess := Session{
		Token:    uuid.NewString(),
		UserID:   u.id,
		Name:     u.name,
		Email:    u.email,
		IssuedAt: time.Now().UTC(),
	}
	s.sessions[sess.Token] = sess
	return &sess
}
