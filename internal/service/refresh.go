package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/mybookshelf/backend/internal/model"
)

// RefreshTokenStore is the extension point for a future refresh-token
// flow: issue on login, rotate on use, revoke on logout. The refresh
// table and these operations exist (db.Postgres implements them), but
// no endpoint issues or consumes refresh tokens yet; the rotation
// policy is undecided, so the core deliberately does not call this.
type RefreshTokenStore interface {
	InsertRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldToken string, userID int64, newToken string, newExpiresAt time.Time) error
	RevokeRefreshToken(ctx context.Context, token string) error
}

// NewRefreshToken returns an opaque random token for the store above.
func NewRefreshToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
