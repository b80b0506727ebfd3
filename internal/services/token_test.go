package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/promptops/platform-api/internal/platform/apierr"
)

func TestTokenIssueVerifyRoundTrip(t *testing.T) {
	log := newTestLogger(t)
	ts := NewTokenService(log, "test-secret", time.Hour)

	userID := uuid.New()
	token, err := ts.Issue(userID, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	gotID, gotUsername, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if gotID != userID {
		t.Fatalf("user id: want=%s got=%s", userID, gotID)
	}
	if gotUsername != "alice" {
		t.Fatalf("username: want=%q got=%q", "alice", gotUsername)
	}
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	log := newTestLogger(t)
	ts := NewTokenService(log, "test-secret", -time.Minute)

	token, err := ts.Issue(uuid.New(), "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := ts.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	log := newTestLogger(t)
	issuer := NewTokenService(log, "secret-a", time.Hour)
	verifier := NewTokenService(log, "secret-b", time.Hour)

	token, err := issuer.Issue(uuid.New(), "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, _, err = verifier.Verify(token)
	if err == nil {
		t.Fatalf("expected signature mismatch to be rejected")
	}
	if !apierr.IsStatus(err, 401) {
		t.Fatalf("status: want=401 got=%d", apierr.StatusOf(err))
	}
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	log := newTestLogger(t)
	ts := NewTokenService(log, "test-secret", time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		if _, _, err := ts.Verify(tokenString); err == nil {
			t.Fatalf("expected %q to be rejected", tokenString)
		}
	}
}
