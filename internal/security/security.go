// Package security provides the signed-cookie plumbing the handlers
// depend on: sessions identifying the current user, one-time flash
// messages, and intention-bound CSRF tokens. All three share the same
// securecookie signing keys.
package security

import (
	"time"
)

// Security bundles the cookie codecs built from one key pair.
type Security struct {
	Sessions *Sessions
	CSRF     *CSRF
	Flashes  *Flashes
}

// New creates all codecs. blockKey may be empty to disable encryption.
func New(hashKey, blockKey string, csrfTTL time.Duration) *Security {
	hk := []byte(hashKey)
	var bk []byte
	if blockKey != "" {
		bk = []byte(blockKey)
	}
	return &Security{
		Sessions: NewSessions(hk, bk),
		CSRF:     NewCSRF(hk, bk, csrfTTL),
		Flashes:  NewFlashes(hk, bk),
	}
}
