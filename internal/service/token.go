package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mybookshelf/backend/internal/config"
	"github.com/mybookshelf/backend/internal/model"
)

// Tolerated clock drift between the issuing and verifying process.
const tokenLeeway = 30 * time.Second

// TokenManager issues and validates the signed session tokens that stand
// in for server-side sessions. A token is valid while its signature
// holds and its expiry has not passed; there is no revocation.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: signing secret is empty", ErrMisconfigured)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}

	return &TokenManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
	}, nil
}

type sessionClaims struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue signs a session token for the user: subject is the user id,
// name carries the email, expiry is now plus the configured lifetime.
func (m *TokenManager) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name:     user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies signature, issuer, audience, and expiry. Any failure
// collapses to ErrInvalidToken: a caller with a bad token is simply
// unauthenticated, whatever the reason.
func (m *TokenManager) Parse(tokenStr string) (*model.AuthUser, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(tokenLeeway),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &model.AuthUser{
		ID:       userID,
		Email:    claims.Name,
		Username: claims.Username,
	}, nil
}

// TTL reports the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}
