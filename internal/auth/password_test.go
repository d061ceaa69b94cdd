package auth

import "testing"

func TestVerifyPasswordMatch(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatalf("expected matching password to verify")
	}
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if VerifyPassword("wrong", hash) {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	// A stored hash that is not bcrypt output must read as a non-match,
	// never a panic.
	for _, stored := range []string{"", "not-a-hash", "$2a$garbage"} {
		if VerifyPassword("anything", stored) {
			t.Fatalf("expected malformed hash %q to fail verification", stored)
		}
	}
}

func TestVerifyPasswordDeterministic(t *testing.T) {
	hash, err := HashPassword("stable")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !VerifyPassword("stable", hash) {
			t.Fatalf("comparison should be deterministic, failed on attempt %d", i)
		}
	}
}
