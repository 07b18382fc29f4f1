package common

import (
	"testing"
	"time"
)

func TestShareSigner_RoundTrip(t *testing.T) {
	signer := NewShareSignerService([]byte("test-secret"), NewCacheService(60, 120))

	token, expiresAt, err := signer.GenerateShareToken("Delhi", "Mumbai", 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateShareToken: %v", err)
	}
	if token == "" || time.Until(expiresAt) < 14*time.Minute {
		t.Fatalf("unexpected token/expiry: %q / %v", token, expiresAt)
	}

	route, err := signer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if route.SourceCity != "Delhi" || route.DestinationCity != "Mumbai" {
		t.Errorf("unexpected route: %+v", route)
	}
}

func TestShareSigner_SingleUse(t *testing.T) {
	signer := NewShareSignerService([]byte("test-secret"), NewCacheService(60, 120))

	token, expiresAt, err := signer.GenerateShareToken("Delhi", "Mumbai", 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateShareToken: %v", err)
	}

	route, err := signer.ValidateToken(token)
	if err != nil {
		t.Fatalf("first validation: %v", err)
	}

	signer.MarkTokenAsUsed(route.TokenID, expiresAt)

	if _, err := signer.ValidateToken(token); err == nil {
		t.Fatal("expected second validation to fail")
	}
}

func TestShareSigner_RejectsWrongKey(t *testing.T) {
	cache := NewCacheService(60, 120)
	signer := NewShareSignerService([]byte("key-a"), cache)
	other := NewShareSignerService([]byte("key-b"), cache)

	token, _, err := signer.GenerateShareToken("Delhi", "Mumbai", time.Minute)
	if err != nil {
		t.Fatalf("GenerateShareToken: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation with wrong key to fail")
	}
}
