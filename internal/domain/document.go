// Package domain contains the core business entities and interfaces.
package domain

import "context"

// Document is the single persisted aggregate. It holds everything the
// application knows: the signing secret, the one account, active sessions,
// and the dashboard payload (links and preferences).
type Document struct {
	Secret      string             `json:"secret"`
	User        *User              `json:"user"`
	Preferences Preferences        `json:"preferences"`
	Links       []Link             `json:"links"`
	Sessions    map[string]Session `json:"sessions"`
}

// User is the single account. A nil *User means no account exists yet.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Session is one authenticated session, keyed in Document.Sessions by its
// opaque token. Timestamps are epoch milliseconds; ExpiresAt is fixed at
// creation and never extended.
type Session struct {
	CreatedAt int64 `json:"createdAt"`
	ExpiresAt int64 `json:"expiresAt"`
}

// Link is one curated dashboard entry.
type Link struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Icon     string `json:"icon,omitempty"`
	Position int    `json:"position"`
}

// Preferences holds dashboard display settings.
type Preferences struct {
	Title        string `json:"title"`
	Theme        string `json:"theme"`
	OpenInNewTab bool   `json:"openInNewTab"`
}

// DefaultPreferences are written when the document is first created.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:        "Linkboard",
		Theme:        "dark",
		OpenInNewTab: true,
	}
}

// NewDocument returns a fresh document around the given signing secret.
func NewDocument(secret string) *Document {
	return &Document{
		Secret:      secret,
		Preferences: DefaultPreferences(),
		Links:       []Link{},
		Sessions:    map[string]Session{},
	}
}

// Clone returns a deep copy of the document so callers can mutate a
// snapshot without aliasing the original.
func (d *Document) Clone() *Document {
	c := &Document{
		Secret:      d.Secret,
		Preferences: d.Preferences,
		Links:       make([]Link, len(d.Links)),
		Sessions:    make(map[string]Session, len(d.Sessions)),
	}
	copy(c.Links, d.Links)
	for token, sess := range d.Sessions {
		c.Sessions[token] = sess
	}
	if d.User != nil {
		u := *d.User
		c.User = &u
	}
	return c
}

// DocumentStore defines the port for whole-document persistence. A write
// either fully lands or not at all; a reader never observes a partial
// document.
type DocumentStore interface {
	Initialize(ctx context.Context) error
	Read(ctx context.Context) (*Document, error)
	Write(ctx context.Context, doc *Document) error
}

// CredentialStore defines the port for account persistence. User returns
// nil when no account exists; SetUser(nil) clears the account.
type CredentialStore interface {
	User(ctx context.Context) (*User, error)
	SetUser(ctx context.Context, user *User) error
}

// SessionStore defines the port for the session table.
type SessionStore interface {
	Sessions(ctx context.Context) (map[string]Session, error)
	SaveSessions(ctx context.Context, sessions map[string]Session) error
}

// SecretStore exposes the cookie-signing secret.
type SecretStore interface {
	Secret(ctx context.Context) (string, error)
}

// LinkStore defines the port for link persistence.
type LinkStore interface {
	Links(ctx context.Context) ([]Link, error)
	SaveLinks(ctx context.Context, links []Link) error
}

// PreferenceStore defines the port for preference persistence.
type PreferenceStore interface {
	Preferences(ctx context.Context) (Preferences, error)
	SavePreferences(ctx context.Context, prefs Preferences) error
}
