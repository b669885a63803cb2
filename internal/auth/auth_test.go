package auth

import (
	"testing"
	"time"
)

func TestHashAndCheckSecret(t *testing.T) {
	hash, err := HashSecret("change-me-in-production")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckSecret(hash, "change-me-in-production") {
		t.Fatalf("expected the original secret to verify against its hash")
	}
	if CheckSecret(hash, "wrong-secret") {
		t.Fatalf("expected a mismatched secret to fail verification")
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	token, err := IssueToken("test-secret", "scanner-service", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ValidateToken("test-secret", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "scanner-service" {
		t.Fatalf("expected subject %q, got %q", "scanner-service", claims.Subject)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken("test-secret", "scanner-service", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Fatalf("expected validation to fail against the wrong secret")
	}
}

func TestValidateTokenRejectsExpiredToken(t *testing.T) {
	token, err := IssueToken("test-secret", "scanner-service", -time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ValidateToken("test-secret", token); err == nil {
		t.Fatalf("expected validation to fail for an expired token")
	}
}
