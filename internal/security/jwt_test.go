package security_test

import (
	"testing"
	"time"

	"github.com/mfieldsdev/chatwire/internal/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	manager := security.NewTokenManager("test-secret-key-with-32-chars!!", 7*24*time.Hour)

	userID := primitive.NewObjectID()

	token, err := manager.Issue(userID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if token == "" {
		t.Error("token is empty")
	}

	got, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	if got != userID {
		t.Errorf("user ID mismatch: got %v, want %v", got, userID)
	}
}

func TestTokenManager_InvalidToken(t *testing.T) {
	manager := security.NewTokenManager("test-secret-key-with-32-chars!!", 7*24*time.Hour)

	// Invalid token format
	if _, err := manager.Verify("invalid-token"); err == nil {
		t.Error("expected error for invalid token, got nil")
	}

	// Empty token
	if _, err := manager.Verify(""); err == nil {
		t.Error("expected error for empty token, got nil")
	}

	// Token signed with a different secret
	otherManager := security.NewTokenManager("different-secret-key-32-chars!!", 7*24*time.Hour)
	token, _ := otherManager.Issue(primitive.NewObjectID())

	if _, err := manager.Verify(token); err == nil {
		t.Error("expected error for token signed with different secret, got nil")
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	manager := security.NewTokenManager("test-secret-key-with-32-chars!!", -time.Minute)

	token, err := manager.Issue(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := manager.Verify(token); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

func TestTokenManager_TokenTTL(t *testing.T) {
	ttl := 7 * 24 * time.Hour
	manager := security.NewTokenManager("test-secret-key-with-32-chars!!", ttl)

	if manager.TokenTTL() != ttl {
		t.Errorf("token TTL mismatch: got %v, want %v", manager.TokenTTL(), ttl)
	}
}
