package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/mybookshelf/backend/internal/db"
	"github.com/mybookshelf/backend/internal/model"
)

var (
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrMisconfigured      = errors.New("auth config invalid")
)

// ValidationError carries a reason safe to show to the client.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// CredentialStore is the persistence boundary for user identities.
// Implemented by db.Postgres.
type CredentialStore interface {
	CreateUser(ctx context.Context, email, username, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	store  CredentialStore
	tokens *TokenManager
	logger *slog.Logger
}

func NewAuthService(store CredentialStore, tokens *TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, logger: logger}
}

// Register validates the request, hashes the password, and inserts the
// user. It returns nothing sensitive on success: no token, no hash.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return validationError("Email, password and password confirmation are required.")
	}
	if req.Password != req.ConfirmPassword {
		return validationError("Passwords do not match.")
	}
	local, ok := splitEmail(email)
	if !ok {
		return validationError("Invalid email address.")
	}

	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return s.internal("register", email, err)
	}
	if exists {
		return ErrEmailExists
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = local
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return s.internal("register", email, err)
	}

	if _, err := s.store.CreateUser(ctx, email, username, string(hash)); err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index decides, and the loser sees a plain conflict.
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return s.internal("register", email, err)
	}

	return nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password take the same path out.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrInvalidCredentials
		}
		return "", s.internal("login", email, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", s.internal("login", email, err)
	}

	return token, nil
}

// internal logs the underlying cause with the attempted email for
// diagnostics and returns a wrapped error; the plaintext password never
// reaches the log or the caller.
func (s *AuthService) internal(op, email string, err error) error {
	s.logger.Error("auth operation failed", "op", op, "email", email, "error", err)
	return fmt.Errorf("auth %s: %w", op, err)
}

// splitEmail performs the minimal syntactic check: exactly one @ with
// non-empty local and domain parts. It returns the local part for
// username defaulting.
func splitEmail(email string) (string, bool) {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") {
		return "", false
	}
	return local, true
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
