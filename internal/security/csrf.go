package security

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// Token intentions used across the app. Comment submissions (both the
// structured form and the inline reply form) share the fixed "submit"
// id; the challenge create/edit form has its own fixed id; destructive
// actions use a per-entity id built with ActionTokenID.
const (
	TokenSubmit    = "submit"
	TokenChallenge = "challenge"
)

// csrfToken is the signed payload behind an issued token.
type csrfToken struct {
	ID       string
	Nonce    string
	IssuedAt int64
}

// CSRF issues and verifies signed, intention-bound tokens.
type CSRF struct {
	codec *securecookie.SecureCookie
	ttl   time.Duration
}

// NewCSRF creates a CSRF service. blockKey may be nil, in which case
// tokens are signed but not encrypted.
func NewCSRF(hashKey, blockKey []byte, ttl time.Duration) *CSRF {
	return &CSRF{
		codec: securecookie.New(hashKey, blockKey),
		ttl:   ttl,
	}
}

// Generate mints a token bound to the given token id.
func (c *CSRF) Generate(tokenID string) (string, error) {
	return c.codec.Encode("csrf", csrfToken{
		ID:       tokenID,
		Nonce:    uuid.New().String(),
		IssuedAt: time.Now().Unix(),
	})
}

// IsValid reports whether the submitted token was minted for tokenID
// and has not expired. Any decode failure is a mismatch.
func (c *CSRF) IsValid(tokenID, submitted string) bool {
	if submitted == "" {
		return false
	}
	var tok csrfToken
	if err := c.codec.Decode("csrf", submitted, &tok); err != nil {
		return false
	}
	if tok.ID != tokenID {
		return false
	}
	if c.ttl > 0 && time.Since(time.Unix(tok.IssuedAt, 0)) > c.ttl {
		return false
	}
	return true
}

// ActionTokenID builds a per-entity token id such as
// "delete_challenge_42".
func ActionTokenID(action string, id int64) string {
	return fmt.Sprintf("%s_%d", action, id)
}
