// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"time"

	"linkboard/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountExists indicates that setup was attempted while an account already exists.
	ErrAccountExists = errors.New("account already exists")
	// ErrNoAccount indicates that login was attempted before any account was created.
	ErrNoAccount = errors.New("no account exists")
	// ErrInvalidInput indicates an empty username or password.
	ErrInvalidInput = errors.New("username and password must not be empty")
)

// AuthService handles account setup, login, and session verification. It
// is the only entry point the HTTP layer uses to turn a request cookie
// into an authenticated/unauthenticated verdict.
type AuthService struct {
	creds    domain.CredentialStore
	sessions domain.SessionStore
	secrets  domain.SecretStore

	now func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(creds domain.CredentialStore, sessions domain.SessionStore, secrets domain.SecretStore) *AuthService {
	return &AuthService{
		creds:    creds,
		sessions: sessions,
		secrets:  secrets,
		now:      time.Now,
	}
}

// HasAccount reports whether the single account has been created.
func (s *AuthService) HasAccount(ctx context.Context) (bool, error) {
	user, err := s.creds.User(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// CreateAccount creates the single account. At most one account exists
// system-wide; a second call fails with ErrAccountExists and leaves the
// original untouched.
func (s *AuthService) CreateAccount(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidInput
	}

	user, err := s.creds.User(ctx)
	if err != nil {
		return err
	}
	if user != nil {
		return ErrAccountExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	return s.creds.SetUser(ctx, &domain.User{Username: username, PasswordHash: hash})
}

// Login verifies the credentials, persists a new session, and returns the
// signed cookie value for the caller to transmit. Wrong username and wrong
// password collapse to the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.creds.User(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNoAccount
	}
	if user.Username != username || !verifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	sessions, err := s.sessions.Sessions(ctx)
	if err != nil {
		return "", err
	}
	sessions[token] = newSession(s.now())
	if err := s.sessions.SaveSessions(ctx, sessions); err != nil {
		return "", err
	}

	secret, err := s.secrets.Secret(ctx)
	if err != nil {
		return "", err
	}
	return SignToken(token, secret), nil
}

// Logout removes the cookie's session from the table. A cookie that does
// not verify, or names an unknown token, is a no-op: the caller clears the
// client cookie either way.
func (s *AuthService) Logout(ctx context.Context, cookie string) error {
	secret, err := s.secrets.Secret(ctx)
	if err != nil {
		return err
	}
	token, ok := VerifyToken(cookie, secret)
	if !ok {
		return nil
	}

	sessions, err := s.sessions.Sessions(ctx)
	if err != nil {
		return err
	}
	if _, exists := sessions[token]; !exists {
		return nil
	}
	delete(sessions, token)
	return s.sessions.SaveSessions(ctx, sessions)
}

// ResetCredentials clears every session and then the account, so the
// setup flow can run again. These are two separate document writes, in
// that order: a crash in between leaves an account with no sessions,
// which only forces a fresh login, never an open dashboard.
func (s *AuthService) ResetCredentials(ctx context.Context) error {
	if err := s.sessions.SaveSessions(ctx, map[string]domain.Session{}); err != nil {
		return err
	}
	return s.creds.SetUser(ctx, nil)
}

// Authenticate turns a request cookie into a verdict. It is total and
// fails closed: a missing cookie, bad signature, unknown token, expired
// session, or any storage error all report unauthenticated, with no
// distinction exposed to the caller. Expired entries are not deleted here;
// this is a pure read.
func (s *AuthService) Authenticate(ctx context.Context, cookie string) bool {
	if cookie == "" {
		return false
	}

	secret, err := s.secrets.Secret(ctx)
	if err != nil {
		return false
	}
	token, ok := VerifyToken(cookie, secret)
	if !ok {
		return false
	}

	sessions, err := s.sessions.Sessions(ctx)
	if err != nil {
		return false
	}
	sess, exists := sessions[token]
	if !exists {
		return false
	}
	return sessionValid(sess, s.now())
}
