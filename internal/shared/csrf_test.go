package shared

import (
	"context"
	"errors"
	"testing"
)

func TestCSRFEnsureAndVerify(t *testing.T) {
	m := NewCSRFManager("csrfsecret")
	sess := &Session{ID: "abc"}

	token, err := m.EnsureToken(context.Background(), sess)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	again, err := m.EnsureToken(context.Background(), sess)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if again != token {
		t.Fatalf("token must be stable per session")
	}

	if err := m.VerifyToken(context.Background(), sess, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestCSRFVerifyFailures(t *testing.T) {
	m := NewCSRFManager("csrfsecret")
	sess := &Session{ID: "abc"}

	if err := m.VerifyToken(context.Background(), sess, "anything"); !errors.Is(err, ErrCSRFTokenMissing) {
		t.Fatalf("no token in session: got %v", err)
	}

	token, _ := m.EnsureToken(context.Background(), sess)
	if err := m.VerifyToken(context.Background(), sess, ""); !errors.Is(err, ErrCSRFTokenMissing) {
		t.Fatalf("empty submitted token: got %v", err)
	}
	if err := m.VerifyToken(context.Background(), sess, token+"x"); !errors.Is(err, ErrCSRFTokenMismatch) {
		t.Fatalf("mismatching token: got %v", err)
	}
	if err := m.VerifyToken(context.Background(), nil, token); !errors.Is(err, ErrCSRFTokenMissing) {
		t.Fatalf("nil session: got %v", err)
	}
}
