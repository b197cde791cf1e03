package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mybookshelf/backend/internal/config"
	"github.com/mybookshelf/backend/internal/model"
)

type stubStore struct {
	users       map[string]*model.User
	createErr   error
	existsErr   error
	lastCreated *model.User
	nextID      int64
}

func newStubStore() *stubStore {
	return &stubStore{users: map[string]*model.User{}}
}

func (s *stubStore) CreateUser(ctx context.Context, email, username, passwordHash string) (*model.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, ok := s.users[email]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	s.nextID++
	user := &model.User{
		ID:           s.nextID,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[email] = user
	s.lastCreated = user
	return user, nil
}

func (s *stubStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *stubStore) EmailExists(ctx context.Context, email string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.users[email]
	return ok, nil
}

func newTestAuthService(t *testing.T, store CredentialStore) *AuthService {
	t.Helper()
	tokens, err := NewTokenManager(config.JWTConfig{
		Secret:   "test-secret",
		Issuer:   "mybookshelf-api",
		Audience: "mybookshelf-client",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(store, tokens, logger)
}

func registerReq(email, password string) model.RegisterRequest {
	return model.RegisterRequest{Email: email, Password: password, ConfirmPassword: password}
}

func TestRegisterValidationOrder(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	cases := []struct {
		name string
		req  model.RegisterRequest
		msg  string
	}{
		{"blank email", model.RegisterRequest{Password: "Secret1", ConfirmPassword: "Secret1"}, "Email, password and password confirmation are required."},
		{"blank password", model.RegisterRequest{Email: "a@x.com", ConfirmPassword: "Secret1"}, "Email, password and password confirmation are required."},
		{"blank confirmation", model.RegisterRequest{Email: "a@x.com", Password: "Secret1"}, "Email, password and password confirmation are required."},
		{"mismatch", model.RegisterRequest{Email: "a@x.com", Password: "Secret1", ConfirmPassword: "other"}, "Passwords do not match."},
		{"no at sign", registerReq("ax.com", "Secret1"), "Invalid email address."},
		{"empty local part", registerReq("@x.com", "Secret1"), "Invalid email address."},
		{"empty domain", registerReq("a@", "Secret1"), "Invalid email address."},
		{"two at signs", registerReq("a@x@y.com", "Secret1"), "Invalid email address."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Register(ctx, tc.req)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.msg, validationErr.Reason)
		})
	}

	assert.Nil(t, store.lastCreated, "no user row may exist after failed registrations")
}

func TestRegisterDefaultsUsernameToLocalPart(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(t, store)

	require.NoError(t, svc.Register(context.Background(), registerReq("a@x.com", "Secret1")))

	require.NotNil(t, store.lastCreated)
	assert.Equal(t, "a", store.lastCreated.Username)
	assert.Equal(t, "a@x.com", store.lastCreated.Email)
	assert.NotEmpty(t, store.lastCreated.PasswordHash)
	assert.NotContains(t, store.lastCreated.PasswordHash, "Secret1")
}

func TestRegisterKeepsSuppliedUsername(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(t, store)

	req := registerReq("a@x.com", "Secret1")
	req.Username = " reader "
	require.NoError(t, svc.Register(context.Background(), req))
	assert.Equal(t, "reader", store.lastCreated.Username)
}

func TestRegisterNormalizesEmailCase(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registerReq("Reader@X.com", "Secret1")))
	assert.Equal(t, "reader@x.com", store.lastCreated.Email)

	// Same address in different case is the same account.
	err := svc.Register(ctx, registerReq("READER@x.COM", "Secret1"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registerReq("a@x.com", "Secret1")))
	err := svc.Register(ctx, registerReq("a@x.com", "Other2"))
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Len(t, store.users, 1)
}

func TestRegisterConflictRaceTranslated(t *testing.T) {
	// The pre-check passes but the insert loses the race on the unique
	// index; the caller still sees a plain conflict.
	store := newStubStore()
	store.createErr = &pgconn.PgError{Code: "23505"}
	svc := newTestAuthService(t, store)

	err := svc.Register(context.Background(), registerReq("a@x.com", "Secret1"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterStoreFailureIsInternal(t *testing.T) {
	store := newStubStore()
	store.existsErr = context.DeadlineExceeded
	svc := newTestAuthService(t, store)

	err := svc.Register(context.Background(), registerReq("a@x.com", "Secret1"))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
	assert.NotErrorIs(t, err, ErrEmailExists)
}

func TestLoginSuccess(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registerReq("a@x.com", "Secret1")))

	token, err := svc.Login(ctx, "a@x.com", "Secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := svc.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, store.lastCreated.ID, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "a", user.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registerReq("a@x.com", "Secret1")))

	_, errUnknown := svc.Login(ctx, "nobody@x.com", "Secret1")
	_, errWrongPass := svc.Login(ctx, "a@x.com", "wrong")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestBcryptHashIsSalted(t *testing.T) {
	h1, err := bcrypt.GenerateFromPassword([]byte("Secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	h2, err := bcrypt.GenerateFromPassword([]byte("Secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	assert.NotEqual(t, string(h1), string(h2))
	assert.NoError(t, bcrypt.CompareHashAndPassword(h1, []byte("Secret1")))
	assert.NoError(t, bcrypt.CompareHashAndPassword(h2, []byte("Secret1")))
	assert.Error(t, bcrypt.CompareHashAndPassword(h1, []byte("other")))
}
