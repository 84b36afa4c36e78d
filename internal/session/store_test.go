package session

import (
	"errors"
	"testing"

	"skillfund/internal/domain"
)

func TestRegisterIssuesSession(t *testing.T) {
	s := NewStore()

	sess, err := s.Register("Ada", " Ada@Example.com ", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.Token == "" || sess.UserID == "" {
		t.Fatalf("incomplete session: %+v", sess)
	}
	if sess.Email != "ada@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", sess.Email)
	}
	if got, ok := s.Get(sess.Token); !ok || got.UserID != sess.UserID {
		t.Fatal("issued token does not resolve")
	}
}

func TestRegisterValidation(t *testing.T) {
	s := NewStore()

	for _, tc := range []struct {
		name, user, email, password string
	}{
		{"blank name", "  ", "a@b.com", "pw"},
		{"blank email", "Ada", "", "pw"},
		{"blank password", "Ada", "a@b.com", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Register(tc.user, tc.email, tc.password); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}

	if _, err := s.Register("Ada", "a@b.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := s.Register("Ada Again", "A@B.com", "pw2"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("duplicate email err = %v, want ErrValidation", err)
	}
}

func TestLogin(t *testing.T) {
	s := NewStore()
	first, err := s.Register("Ada", "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	sess, err := s.Login("ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.UserID != first.UserID {
		t.Fatal("login resolved a different user")
	}
	if sess.Token == first.Token {
		t.Fatal("login reused the registration token")
	}

	if _, err := s.Login("ada@example.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("bad password err = %v, want ErrUnauthorized", err)
	}
	if _, err := s.Login("nobody@example.com", "hunter2"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown email err = %v, want ErrUnauthorized", err)
	}
}

func TestLogout(t *testing.T) {
	s := NewStore()
	sess, err := s.Register("Ada", "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	s.Logout(sess.Token)
	if _, ok := s.Get(sess.Token); ok {
		t.Fatal("token still resolves after logout")
	}
	s.Logout(sess.Token) // unknown token is a no-op
}
