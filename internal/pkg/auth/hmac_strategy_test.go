package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	s := NewHMACStrategy("secret", Options{TTL: time.Hour})

	token, err := s.IssueToken(42, RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	id, role, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if id != 42 || role != RoleUser {
		t.Fatalf("unexpected claims: %d %s", id, role)
	}
}

func TestHMACStrategyAdminRole(t *testing.T) {
	s := NewHMACStrategy("secret", Options{TTL: time.Hour})

	token, err := s.IssueToken(7, RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	id, role, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if id != 7 || role != RoleAdmin {
		t.Fatalf("unexpected claims: %d %s", id, role)
	}
}

func TestHMACStrategyRejectsTamperedRole(t *testing.T) {
	s := NewHMACStrategy("secret", Options{TTL: time.Hour})

	token, err := s.IssueToken(42, RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(token)
	forged := strings.Replace(string(raw), ":user:", ":admin:", 1)
	if _, _, err := s.ParseToken(base64.StdEncoding.EncodeToString([]byte(forged))); err != ErrInvalidToken {
		t.Fatalf("expected invalid token error for role tampering, got %v", err)
	}
}

func TestHMACStrategyRejectsExpiredToken(t *testing.T) {
	s := NewHMACStrategy("secret", Options{TTL: -time.Minute})

	token, err := s.IssueToken(42, RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, _, err := s.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected invalid token error for expired token, got %v", err)
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	s := NewHMACStrategy("secret", Options{})
	for _, token := range []string{"", "not-base64!!", base64.StdEncoding.EncodeToString([]byte("a:b"))} {
		if _, _, err := s.ParseToken(token); err != ErrInvalidToken {
			t.Fatalf("expected invalid token error for %q, got %v", token, err)
		}
	}
}
