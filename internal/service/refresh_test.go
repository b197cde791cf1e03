package service

import (
	"testing"

	"github.com/mybookshelf/backend/internal/db"
)

// The refresh-token flow is not wired to any endpoint yet; this pins
// the store contract so db.Postgres keeps satisfying it.
var _ RefreshTokenStore = (*db.Postgres)(nil)

func TestNewRefreshTokenIsOpaqueAndUnique(t *testing.T) {
	t.Parallel()

	first, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	second, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}

	if first == "" || second == "" {
		t.Fatal("expected non-empty tokens")
	}
	if first == second {
		t.Fatal("expected distinct tokens")
	}
}
