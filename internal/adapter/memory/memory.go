// Package memory implements an in-memory document store for development
// and testing.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"linkboard/internal/domain"
)

// Store holds the document in memory. Reads hand out deep copies so
// callers see snapshot semantics, matching the on-disk adapter.
type Store struct {
	mu  sync.Mutex
	doc *domain.Document
}

// Ensure interfaces are met.
var _ domain.DocumentStore = (*Store)(nil)
var _ domain.CredentialStore = (*Store)(nil)
var _ domain.SessionStore = (*Store)(nil)
var _ domain.SecretStore = (*Store)(nil)
var _ domain.LinkStore = (*Store)(nil)
var _ domain.PreferenceStore = (*Store)(nil)

// New creates an empty in-memory store. Initialize must run before the
// first read or write.
func New() *Store {
	return &Store{}
}

// Initialize creates the in-memory document with a fresh secret.
// Idempotent: an existing document is left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc != nil {
		return nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return err
	}
	s.doc = domain.NewDocument(hex.EncodeToString(b))
	return nil
}

// Read returns a deep copy of the current document.
func (s *Store) Read(ctx context.Context) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, errors.New("read document: not initialized")
	}
	return s.doc.Clone(), nil
}

// Write replaces the current document with a copy of doc.
func (s *Store) Write(ctx context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc.Clone()
	return nil
}

// --- CredentialStore ---

// User returns the single account, or nil when none exists.
func (s *Store) User(ctx context.Context) (*domain.User, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.User, nil
}

// SetUser replaces the account; nil clears it.
func (s *Store) SetUser(ctx context.Context, user *domain.User) error {
	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}
	doc.User = user
	return s.Write(ctx, doc)
}

// --- SessionStore ---

// Sessions returns the full session table.
func (s *Store) Sessions(ctx context.Context) (map[string]domain.Session, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Sessions, nil
}

// SaveSessions replaces the full session table.
func (s *Store) SaveSessions(ctx context.Context, sessions map[string]domain.Session) error {
	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}
	doc.Sessions = sessions
	return s.Write(ctx, doc)
}

// --- SecretStore ---

// Secret returns the cookie-signing secret.
func (s *Store) Secret(ctx context.Context) (string, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return "", err
	}
	return doc.Secret, nil
}

// --- LinkStore ---

// Links returns all stored links.
func (s *Store) Links(ctx context.Context) ([]domain.Link, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Links, nil
}

// SaveLinks replaces all stored links.
func (s *Store) SaveLinks(ctx context.Context, links []domain.Link) error {
	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}
	doc.Links = links
	return s.Write(ctx, doc)
}

// --- PreferenceStore ---

// Preferences returns the stored preferences.
func (s *Store) Preferences(ctx context.Context) (domain.Preferences, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return domain.Preferences{}, err
	}
	return doc.Preferences, nil
}

// SavePreferences replaces the stored preferences.
func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}
	doc.Preferences = prefs
	return s.Write(ctx, doc)
}
