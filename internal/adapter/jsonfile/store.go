// Package jsonfile implements the domain stores on a single JSON document
// on disk. Writes build the new content in a temporary file and rename it
// over the canonical path, so a reader sees either the fully-old or the
// fully-new document, never a partial one.
package jsonfile

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"linkboard/internal/domain"
)

// DocumentFile is the name of the document inside the data directory.
const DocumentFile = "linkboard.json"

// Store persists the whole document at a fixed path. It keeps no state
// beyond the path: every accessor is a read-entire-document, mutate,
// write-entire-document cycle, with no locking in between. Two
// overlapping accessors can therefore interleave and the later write
// overwrites the earlier one's unrelated changes; the single-user
// assumption accepts this lost-update hazard (covered by a test).
type Store struct {
	path string
}

// Ensure interfaces are met.
var _ domain.DocumentStore = (*Store)(nil)
var _ domain.CredentialStore = (*Store)(nil)
var _ domain.SessionStore = (*Store)(nil)
var _ domain.SecretStore = (*Store)(nil)
var _ domain.LinkStore = (*Store)(nil)
var _ domain.PreferenceStore = (*Store)(nil)

// New creates a Store keeping its document inside dataDir.
func New(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, DocumentFile)}
}

// Path returns the canonical document path.
func (s *Store) Path() string {
	return s.path
}

// Initialize creates the document on first run: nil user, empty sessions
// and links, default preferences, and a freshly generated 256-bit secret.
// Idempotent: an existing document is left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat document: %w", err)
	}

	secret, err := generateSecret()
	if err != nil {
		return err
	}
	return s.Write(ctx, domain.NewDocument(secret))
}

// Read loads and parses the document. A missing, unreadable, or
// unparsable file is a storage error.
func (s *Store) Read(ctx context.Context) (*domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if doc.Sessions == nil {
		doc.Sessions = map[string]domain.Session{}
	}
	if doc.Links == nil {
		doc.Links = []domain.Link{}
	}
	return &doc, nil
}

// Write durably replaces the stored document. The new content lands in a
// temp file in the same directory and a single rename moves it into
// place; on any failure the prior document remains intact.
func (s *Store) Write(ctx context.Context, doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, DocumentFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp document: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("commit document: %w", err)
	}
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

// Secret returns the cookie-signing secret. It is generated once at
// Initialize and never rotated afterward.
func (s *Store) Secret(ctx context.Context) (string, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return "", err
	}
	return doc.Secret, nil
}

// --- LinkStore ---

// Links returns all persisted links.
func (s *Store) Links(ctx context.Context) ([]domain.Link, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Links, nil
}

// SaveLinks replaces all persisted links.
func (s *Store) SaveLinks(ctx context.Context, links []domain.Link) error {
	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}
	doc.Links = links
	return s.Write(ctx, doc)
}

// --- PreferenceStore ---

// Preferences returns the persisted preferences.
func (s *Store) Preferences(ctx context.Context) (domain.Preferences, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return domain.Preferences{}, err
	}
	return doc.Preferences, nil
}

// SavePreferences replaces the persisted preferences.
func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}
	doc.Preferences = prefs
	return s.Write(ctx, doc)
}

// generateSecret returns 32 random bytes hex encoded. The secret is the
// HMAC key for every signed cookie for the lifetime of the deployment;
// changing it invalidates all outstanding sessions.
func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
