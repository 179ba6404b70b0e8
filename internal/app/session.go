package app

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"linkboard/internal/domain"
)

// sessionLifetime is fixed at creation; sessions are never extended.
const sessionLifetime = 7 * 24 * time.Hour

// generateToken produces an opaque 64-hex-character session identifier
// from a cryptographically strong random source.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// newSession returns a session created at now, expiring after the fixed
// lifetime. The value carries no user reference; the single account is
// implicit.
func newSession(now time.Time) domain.Session {
	created := now.UnixMilli()
	return domain.Session{
		CreatedAt: created,
		ExpiresAt: created + sessionLifetime.Milliseconds(),
	}
}

// sessionValid reports whether the session is still live at now. The
// boundary is strict: a check at exactly ExpiresAt is invalid.
func sessionValid(sess domain.Session, now time.Time) bool {
	return now.UnixMilli() < sess.ExpiresAt
}
