package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const sessionCookie = "creativehub_session"

// Session is the signed payload carried by the session cookie. It only
// identifies the user; credentials never touch this layer.
type Session struct {
	ID     string
	UserID int64
}

// Sessions encodes and decodes the signed session cookie.
type Sessions struct {
	codec *securecookie.SecureCookie
}

// NewSessions creates a session codec with the given signing keys.
func NewSessions(hashKey, blockKey []byte) *Sessions {
	return &Sessions{codec: securecookie.New(hashKey, blockKey)}
}

// Issue writes a session cookie for the given user.
func (s *Sessions) Issue(w http.ResponseWriter, userID int64) error {
	value, err := s.codec.Encode(sessionCookie, Session{
		ID:     uuid.New().String(),
		UserID: userID,
	})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return nil
}

// Read decodes the session cookie from the request. Returns nil when
// there is no valid session.
func (s *Sessions) Read(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	var sess Session
	if err := s.codec.Decode(sessionCookie, cookie.Value, &sess); err != nil {
		return nil
	}
	return &sess
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
