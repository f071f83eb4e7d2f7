package service

import (
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)

	token, err := s.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	userID, err := s.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if userID != 42 {
		t.Errorf("Parse returned user %d, want 42", userID)
	}
}

func TestSessionExpired(t *testing.T) {
	s := NewSessions("test-secret", -time.Minute)

	token, err := s.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := s.Parse(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestSessionWrongSecret(t *testing.T) {
	token, err := NewSessions("secret-a", time.Hour).Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := NewSessions("secret-b", time.Hour).Parse(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestSessionGarbage(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := s.Parse(token); err == nil {
			t.Errorf("Parse(%q) accepted a malformed token", token)
		}
	}
}
